package components

import (
	"context"

	"github.com/dguo/make-a-readme/internal/view"
)

// GitHubCorner is the corner banner linking to the project's repository.
type GitHubCorner struct {
	Href        string
	BannerColor string
	OctoColor   string
}

func (GitHubCorner) Templates(_ context.Context) []string {
	return []string{"components/github_corner.html.tmpl"}
}

func (GitHubCorner) Stylesheets(_ context.Context) []view.Stylesheet {
	return []view.Stylesheet{
		{TemplatePath: "styles/github_corner.css.tmpl"},
	}
}
