// Package components holds the pieces the pages of the site are built from.
//
// Each component is a plain struct with the data its template needs. The
// templates live in the assets package under components/ and are included
// by name, so a page lists the components it renders in UseComponents and
// calls {{ template "<name>" }} with the struct.
package components

import (
	"context"
	"html/template"

	"github.com/dguo/make-a-readme/internal/view"
)

// Section wraps content in a titled, centered block.
type Section struct {
	Heading string
	Content template.HTML

	// Items are rendered after Content, in order.
	Items []SectionItem

	// Editor, when set, is rendered after the items.
	Editor *Editor
}

func (Section) Templates(_ context.Context) []string {
	return []string{"components/section.html.tmpl"}
}

func (Section) UseComponents(_ context.Context) []view.Component {
	return []view.Component{SectionItem{}, Editor{}}
}

// ItemVariant is the visual treatment of a SectionItem.
type ItemVariant int

const (
	// ItemPlain renders the heading and content with no extra wrapper.
	ItemPlain ItemVariant = iota

	// ItemHighlighted renders the heading and content in highlighted
	// wrappers, for frequently asked questions.
	ItemHighlighted
)

func (v ItemVariant) String() string {
	switch v {
	case ItemHighlighted:
		return "highlighted"
	default:
		return "plain"
	}
}

// SectionItem wraps content in a sub-titled block.
type SectionItem struct {
	Heading string

	// IsFAQ selects the highlighted variant.
	IsFAQ bool

	Content template.HTML
}

func (SectionItem) Templates(_ context.Context) []string {
	return []string{"components/section_item.html.tmpl"}
}

// Variant returns which of the two visual treatments the item gets.
func (i SectionItem) Variant() ItemVariant {
	if i.IsFAQ {
		return ItemHighlighted
	}
	return ItemPlain
}

// Highlighted reports whether the item renders in the highlighted variant.
func (i SectionItem) Highlighted() bool {
	return i.Variant() == ItemHighlighted
}
