package view

import (
	"context"
	"errors"
	"html"
	"html/template"
	"slices"
	"strings"
)

// ErrInvalidResource is returned when a Script or Stylesheet sets both or
// neither of its URL and its TemplatePath.
var ErrInvalidResource = errors.New("resource needs exactly one of a URL or a template path")

// ResourceRelationship controls the relationship between two resources. It's
// used to control the order in which stylesheets and scripts are rendered to
// the page.
type ResourceRelationship string

const (
	// ResourceRelationshipAfter indicates that the resource should be
	// rendered after the resource it's being compared to.
	ResourceRelationshipAfter ResourceRelationship = "after"

	// ResourceRelationshipBefore indicates that the resource should be
	// rendered before the resource it's being compared to.
	ResourceRelationshipBefore ResourceRelationship = "before"

	// ResourceRelationshipNeutral indicates that the resource has no
	// restrictions about where it's rendered in relation to the resource
	// it's being compared to.
	ResourceRelationshipNeutral ResourceRelationship = "neutral"
)

// Strategy controls when a script loads relative to the page becoming
// interactive.
type Strategy string

const (
	// StrategyAfterInteractive places the script at the end of the body.
	// It is the default.
	StrategyAfterInteractive Strategy = "afterInteractive"

	// StrategyBeforeInteractive places the script in the document head,
	// so it loads and runs before the page becomes interactive.
	StrategyBeforeInteractive Strategy = "beforeInteractive"
)

// Script is a script-loading directive. Exactly one of Src and TemplatePath
// must be set: Src links to an external file, TemplatePath names a template
// in the Site's fs.FS whose output is embedded in a <script> element.
type Script struct {
	// Src is the URL of the script.
	Src string

	// TemplatePath is the path to the inline script body. It's executed
	// in a JavaScript context with the same .Site and .Page as the page.
	TemplatePath string

	// Type is written as the type attribute when set.
	Type string

	// Strategy decides whether the script goes in the head or the footer.
	Strategy Strategy

	Async bool
	Defer bool

	// Attrs are extra attributes, usually data-* attributes the script
	// reads its configuration from. They're written sorted by name.
	Attrs map[string]string

	// OnLoad is run when a linked script finishes loading. It's ignored
	// for inline scripts.
	OnLoad template.JS

	// DisableImplicitOrdering stops this script from being ordered after
	// the script declared before it by the same Component.
	DisableImplicitOrdering bool

	// RelationCalculator, when set, is called with every other script in
	// the same part of the document and disables implicit ordering.
	RelationCalculator func(context.Context, Script) ResourceRelationship
}

// ScriptProvider is an interface that Components can fulfill to have scripts
// loaded with the page. Scripts from every Component on the page are
// deduplicated and ordered, then made available to the template as .HeaderJS
// and .FooterJS.
type ScriptProvider interface {
	Scripts(context.Context) []Script
}

// Stylesheet is a stylesheet to load with the page. Exactly one of Href and
// TemplatePath must be set: Href links to an external file, TemplatePath
// names a template in the Site's fs.FS whose output is embedded in a <style>
// element.
type Stylesheet struct {
	Href         string
	TemplatePath string

	// Media is written as the media attribute of linked stylesheets.
	Media string

	// DisableImplicitOrdering stops this stylesheet from being ordered
	// after the stylesheet declared before it by the same Component.
	DisableImplicitOrdering bool

	// RelationCalculator, when set, is called with every other stylesheet
	// on the page and disables implicit ordering.
	RelationCalculator func(context.Context, Stylesheet) ResourceRelationship
}

// StylesheetProvider is an interface that Components can fulfill to have
// stylesheets loaded with the page. They're made available to the template
// as .CSS.
type StylesheetProvider interface {
	Stylesheets(context.Context) []Stylesheet
}

func (s Script) key() string {
	if s.Src != "" {
		return "JSLink(" + s.Src + ")"
	}
	return "JSInline(" + s.TemplatePath + ")"
}

func (s Script) linked() bool {
	return s.Src != ""
}

func (s Script) implicitlyOrdered() bool {
	return s.RelationCalculator == nil && !s.DisableImplicitOrdering
}

func (s Script) relation(ctx context.Context, other Script) ResourceRelationship {
	if s.RelationCalculator == nil {
		return ResourceRelationshipNeutral
	}
	return s.RelationCalculator(ctx, other)
}

func (s Script) validate() error {
	if (s.Src == "") == (s.TemplatePath == "") {
		return ErrInvalidResource
	}
	return nil
}

func (s Script) inHead() bool {
	return s.Strategy == StrategyBeforeInteractive
}

// tag renders a linked script element. Attribute order is fixed so the
// output is stable between renders.
func (s Script) tag() string {
	var b strings.Builder
	b.WriteString(`<script src="`)
	b.WriteString(html.EscapeString(s.Src))
	b.WriteString(`"`)
	if s.Type != "" {
		writeAttr(&b, "type", s.Type)
	}
	names := make([]string, 0, len(s.Attrs))
	for name := range s.Attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		writeAttr(&b, name, s.Attrs[name])
	}
	if s.Async {
		b.WriteString(" async")
	}
	if s.Defer {
		b.WriteString(" defer")
	}
	if s.OnLoad != "" {
		writeAttr(&b, "onload", string(s.OnLoad))
	}
	b.WriteString("></script>\n")
	return b.String()
}

func (s Stylesheet) key() string {
	if s.Href != "" {
		return "CSSLink(" + s.Href + ")"
	}
	return "CSSInline(" + s.TemplatePath + ")"
}

func (s Stylesheet) linked() bool {
	return s.Href != ""
}

func (s Stylesheet) implicitlyOrdered() bool {
	return s.RelationCalculator == nil && !s.DisableImplicitOrdering
}

func (s Stylesheet) relation(ctx context.Context, other Stylesheet) ResourceRelationship {
	if s.RelationCalculator == nil {
		return ResourceRelationshipNeutral
	}
	return s.RelationCalculator(ctx, other)
}

func (s Stylesheet) validate() error {
	if (s.Href == "") == (s.TemplatePath == "") {
		return ErrInvalidResource
	}
	return nil
}

func (s Stylesheet) tag() string {
	var b strings.Builder
	b.WriteString(`<link rel="stylesheet" href="`)
	b.WriteString(html.EscapeString(s.Href))
	b.WriteString(`"`)
	if s.Media != "" {
		writeAttr(&b, "media", s.Media)
	}
	b.WriteString(">\n")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
