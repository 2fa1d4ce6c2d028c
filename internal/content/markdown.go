package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders CommonMark with the GitHub extensions to HTML. Raw HTML in
// the source is left out of the output.
func Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil // #nosec G203
}
