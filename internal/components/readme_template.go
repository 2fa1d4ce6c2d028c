package components

import (
	"context"
	"html/template"

	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/view"
)

// Editor shows the README template's markdown next to its rendered preview.
type Editor struct {
	Label    string
	Markdown string
	Preview  template.HTML
}

func (Editor) Templates(_ context.Context) []string {
	return []string{"components/editor.html.tmpl"}
}

// ReadmeTemplate is the guide and the editable README template.
type ReadmeTemplate struct {
	Title    string
	Tagline  string
	Sections []Section
}

// NewReadmeTemplate lays the guide out in sections, placing the editor in the
// section the guide marks for it.
func NewReadmeTemplate(guide content.Guide, readme content.Readme) ReadmeTemplate {
	res := ReadmeTemplate{
		Title:    guide.Title,
		Tagline:  guide.Tagline,
		Sections: make([]Section, 0, len(guide.Sections)),
	}
	for _, gs := range guide.Sections {
		section := Section{
			Heading: gs.Heading,
			Content: gs.Intro,
		}
		for _, item := range gs.Items {
			section.Items = append(section.Items, SectionItem{
				Heading: item.Heading,
				IsFAQ:   item.FAQ,
				Content: item.Body,
			})
		}
		if gs.Editor {
			section.Editor = &Editor{
				Label:    "README template",
				Markdown: readme.Markdown,
				Preview:  readme.Preview,
			}
		}
		res.Sections = append(res.Sections, section)
	}
	return res
}

func (ReadmeTemplate) Templates(_ context.Context) []string {
	return []string{"components/readme_template.html.tmpl"}
}

func (ReadmeTemplate) UseComponents(_ context.Context) []view.Component {
	return []view.Component{Section{}}
}
