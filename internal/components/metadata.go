package components

import (
	"context"
)

// Image describes the picture shown when the page is shared.
type Image struct {
	URL    string
	Type   string
	Width  int
	Height int
}

// Metadata is the document head: encoding, viewport, title, the search
// engine description and the social sharing fields.
type Metadata struct {
	Title       string
	Description string

	// URL is the canonical address of the page.
	URL      string
	SiteName string

	// Type is the Open Graph content type.
	Type  string
	Image Image

	// TwitterCard is the card layout, usually "summary".
	TwitterCard    string
	TwitterCreator string

	// Favicon is the path of the icon, resolved with the site's asset
	// function.
	Favicon string
}

func (Metadata) Templates(_ context.Context) []string {
	return []string{"components/metadata.html.tmpl"}
}
