// Package content loads the guide and the README template shown on the page.
//
// The guide is a YAML document listing the page's sections in order. Section
// intros and item bodies are markdown, rendered to HTML when the guide is
// loaded so rendering the page never has to parse markdown.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingHeading is returned when a section or item in the guide has no
// heading.
var ErrMissingHeading = errors.New("heading is required")

// Guide is the loaded guide, with its markdown rendered.
type Guide struct {
	Title    string
	Tagline  string
	Sections []Section
}

// Section is one titled section of the guide.
type Section struct {
	Heading string
	Intro   template.HTML

	// Editor marks the section the README editor is shown in.
	Editor bool

	Items []Item
}

// Item is one sub-titled entry of a section.
type Item struct {
	Heading string
	FAQ     bool
	Body    template.HTML
}

// Readme is the README template offered in the editor.
type Readme struct {
	// Markdown is the template's source.
	Markdown string

	// Preview is Markdown rendered to HTML.
	Preview template.HTML
}

type guideFile struct {
	Title    string        `yaml:"title"`
	Tagline  string        `yaml:"tagline"`
	Sections []sectionFile `yaml:"sections"`
}

type sectionFile struct {
	Heading string     `yaml:"heading"`
	Intro   string     `yaml:"intro"`
	Editor  bool       `yaml:"editor"`
	Items   []itemFile `yaml:"items"`
}

type itemFile struct {
	Heading string `yaml:"heading"`
	FAQ     bool   `yaml:"faq"`
	Body    string `yaml:"body"`
}

// LoadGuide reads the guide at path from fsys and renders its markdown.
func LoadGuide(fsys fs.FS, path string) (Guide, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Guide{}, fmt.Errorf("error reading guide %q: %w", path, err)
	}
	return ParseGuide(raw)
}

// ParseGuide decodes a YAML guide and renders its markdown.
func ParseGuide(raw []byte) (Guide, error) {
	var file guideFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Guide{}, fmt.Errorf("error decoding guide: %w", err)
	}
	guide := Guide{
		Title:    strings.TrimSpace(file.Title),
		Tagline:  strings.TrimSpace(file.Tagline),
		Sections: make([]Section, 0, len(file.Sections)),
	}
	for sectionPos, sf := range file.Sections {
		heading := strings.TrimSpace(sf.Heading)
		if heading == "" {
			return Guide{}, fmt.Errorf("section %d: %w", sectionPos, ErrMissingHeading)
		}
		section := Section{
			Heading: heading,
			Editor:  sf.Editor,
		}
		if strings.TrimSpace(sf.Intro) != "" {
			intro, err := Markdown(sf.Intro)
			if err != nil {
				return Guide{}, fmt.Errorf("section %q: %w", heading, err)
			}
			section.Intro = intro
		}
		for itemPos, itf := range sf.Items {
			itemHeading := strings.TrimSpace(itf.Heading)
			if itemHeading == "" {
				return Guide{}, fmt.Errorf("section %q item %d: %w", heading, itemPos, ErrMissingHeading)
			}
			body, err := Markdown(itf.Body)
			if err != nil {
				return Guide{}, fmt.Errorf("section %q item %q: %w", heading, itemHeading, err)
			}
			section.Items = append(section.Items, Item{
				Heading: itemHeading,
				FAQ:     itf.FAQ,
				Body:    body,
			})
		}
		guide.Sections = append(guide.Sections, section)
	}
	return guide, nil
}

// LoadReadme reads the README template at path from fsys and renders its
// preview.
func LoadReadme(fsys fs.FS, path string) (Readme, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Readme{}, fmt.Errorf("error reading README template %q: %w", path, err)
	}
	preview, err := Markdown(string(raw))
	if err != nil {
		return Readme{}, fmt.Errorf("README template %q: %w", path, err)
	}
	return Readme{
		Markdown: string(raw),
		Preview:  preview,
	}, nil
}
