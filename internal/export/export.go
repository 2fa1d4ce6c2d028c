// Package export writes the site out as static files.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/pages"
	"github.com/dguo/make-a-readme/internal/site"
	"github.com/dguo/make-a-readme/internal/view"
)

const (
	// IndexFile is the name the home page is written to.
	IndexFile = "index.html"

	// ReadmeFile is the name the README template is written to.
	ReadmeFile = "template.md"
)

// Export renders the home page and writes it, along with the README template,
// into dir. dir is created if it doesn't exist. Nothing is written if the
// page fails to render.
func Export(ctx context.Context, dir string, s *site.Site, home pages.HomePage, readme content.Readme) error {
	var page bytes.Buffer
	if err := view.RenderE(ctx, &page, s, home); err != nil {
		return fmt.Errorf("render home page: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	files := []struct {
		name     string
		contents []byte
	}{
		{IndexFile, page.Bytes()},
		{ReadmeFile, []byte(readme.Markdown)},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if err := os.WriteFile(path, file.contents, 0o644); err != nil { // #nosec G306
			return fmt.Errorf("write %s: %w", path, err)
		}
		view.Logger(ctx).InfoContext(ctx, "wrote file", "path", path, "bytes", len(file.contents))
	}
	return nil
}
