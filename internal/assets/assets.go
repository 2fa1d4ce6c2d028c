// Package assets holds the templates and content compiled into the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFiles embed.FS

//go:embed content
var contentFiles embed.FS

// Templates holds every template the site renders, rooted at the templates
// directory.
var Templates = mustSub(templateFiles, "templates")

// Content holds the guide and the README template, rooted at the content
// directory.
var Content = mustSub(contentFiles, "content")

const (
	// GuidePath is the path of the guide within Content.
	GuidePath = "guide.yaml"

	// ReadmePath is the path of the README template within Content.
	ReadmePath = "template.md"
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
