package components

import (
	"context"

	"github.com/dguo/make-a-readme/internal/view"
)

// Layout is the document skeleton every page fills in. Pages define the
// "head" and "body" blocks.
type Layout struct {
	// Stylesheet is linked from every page when set.
	Stylesheet string
}

func (l Layout) Templates(_ context.Context) []string {
	return []string{l.BaseTemplate()}
}

func (Layout) BaseTemplate() string {
	return "layouts/base.html.tmpl"
}

func (l Layout) Stylesheets(_ context.Context) []view.Stylesheet {
	if l.Stylesheet == "" {
		return nil
	}
	return []view.Stylesheet{
		{Href: l.Stylesheet},
	}
}
