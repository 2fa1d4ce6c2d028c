package components_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dguo/make-a-readme/internal/assets"
	"github.com/dguo/make-a-readme/internal/components"
	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/site"
	"github.com/dguo/make-a-readme/internal/view"
)

// fragmentPage renders a single named component template with Data.
type fragmentPage struct {
	Name string
	Data any
	Uses []view.Component
}

func (p fragmentPage) path() string {
	return "test/" + p.Name + ".html.tmpl"
}

func (p fragmentPage) Templates(_ context.Context) []string {
	return []string{p.path()}
}

func (p fragmentPage) UseComponents(_ context.Context) []view.Component {
	return p.Uses
}

func (p fragmentPage) Key(_ context.Context) string {
	return p.path()
}

func (p fragmentPage) ExecutedTemplate(_ context.Context) string {
	return p.path()
}

// fragmentFS copies the embedded templates and adds a test/<name>.html.tmpl
// that executes each named template with .Page.Data.
func fragmentFS(t *testing.T, names ...string) fstest.MapFS {
	t.Helper()

	fsys := fstest.MapFS{}
	err := fs.WalkDir(assets.Templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets.Templates, path)
		if err != nil {
			return err
		}
		fsys[path] = &fstest.MapFile{Data: data, Mode: 0o444}
		return nil
	})
	require.NoError(t, err)
	for _, name := range names {
		fsys["test/"+name+".html.tmpl"] = &fstest.MapFile{
			Data: []byte(`{{ template "` + name + `" .Page.Data }}`),
			Mode: 0o444,
		}
	}
	return fsys
}

func render(t *testing.T, page fragmentPage) string {
	t.Helper()

	s := site.New(fragmentFS(t, page.Name), config.Site{})
	var out bytes.Buffer
	require.NoError(t, view.RenderE(context.Background(), &out, s, page))
	return out.String()
}

func TestSectionItemHighlighted(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "section_item",
		Data: components.SectionItem{
			Heading: "What is a README?",
			IsFAQ:   true,
			Content: "A README explains your project.",
		},
		Uses: []view.Component{components.SectionItem{}},
	})
	assert.Equal(t, `<div class="mb-8 mx-4">`+
		`<h3 class="bg-yellow-300 px-6 py-3 mb-0 rounded-t-md text-lg">What is a README?</h3>`+
		`<div class="bg-yellow-50 px-6 pt-2 pb-4 rounded-b-md">A README explains your project.</div>`+
		`</div>`, got)
}

func TestSectionItemPlain(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "section_item",
		Data: components.SectionItem{
			Heading: "What is a README?",
			Content: "A README explains your project.",
		},
		Uses: []view.Component{components.SectionItem{}},
	})
	assert.Equal(t, `<div class="mb-8 mx-4"><h3>What is a README?</h3>A README explains your project.</div>`, got)
	assert.NotContains(t, got, "bg-yellow")
}

func TestSectionItemEscapesHeading(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "section_item",
		Data: components.SectionItem{Heading: "<b>bold</b>"},
		Uses: []view.Component{components.SectionItem{}},
	})
	assert.Contains(t, got, "<h3>&lt;b&gt;bold&lt;/b&gt;</h3>")
}

func TestItemVariant(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		item        components.SectionItem
		variant     components.ItemVariant
		highlighted bool
	}{
		"plain":       {item: components.SectionItem{}, variant: components.ItemPlain},
		"highlighted": {item: components.SectionItem{IsFAQ: true}, variant: components.ItemHighlighted, highlighted: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.variant, tc.item.Variant())
			assert.Equal(t, tc.highlighted, tc.item.Highlighted())
			assert.Equal(t, name, tc.item.Variant().String())
		})
	}
}

func TestSection(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "section",
		Data: components.Section{
			Heading: "FAQ",
			Content: "<p>Questions people ask.</p>",
			Items: []components.SectionItem{
				{Heading: "What is a README?", IsFAQ: true, Content: "A README explains your project."},
				{Heading: "Why?", Content: "Because."},
			},
		},
		Uses: []view.Component{components.Section{}},
	})
	assert.Equal(t, `<section class="flex justify-center pt-10 pb-6"><div class="max-w-prose">`+
		`<h2>FAQ</h2><p>Questions people ask.</p>`+
		`<div class="mb-8 mx-4">`+
		`<h3 class="bg-yellow-300 px-6 py-3 mb-0 rounded-t-md text-lg">What is a README?</h3>`+
		`<div class="bg-yellow-50 px-6 pt-2 pb-4 rounded-b-md">A README explains your project.</div>`+
		`</div>`+
		`<div class="mb-8 mx-4"><h3>Why?</h3>Because.</div>`+
		`</div></section>`, got)
}

func TestSectionWithEditor(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "section",
		Data: components.Section{
			Heading: "Template",
			Editor: &components.Editor{
				Label:    "README template",
				Markdown: "# Foobar <3",
				Preview:  "<h1>Foobar &lt;3</h1>",
			},
		},
		Uses: []view.Component{components.Section{}},
	})
	assert.Contains(t, got, `<textarea id="editor" aria-label="README template" spellcheck="false"># Foobar &lt;3</textarea>`)
	assert.Contains(t, got, `<div id="preview" class="markdown-body"><h1>Foobar &lt;3</h1></div>`)
}

func TestAdSlot(t *testing.T) {
	t.Parallel()

	slot := components.AdSlot{
		ElementID: "ethicalads-section",
		Publisher: "makeareadmecom",
		AdType:    "image",
	}
	got := render(t, fragmentPage{
		Name: "ad_slot",
		Data: slot,
		Uses: []view.Component{slot},
	})
	assert.Equal(t, `<aside id="ethicalads-section" class="flex justify-center">`+"\n\t"+
		`<div class="horizontal" data-ea-publisher="makeareadmecom" data-ea-type="image"></div>`+"\n"+
		`</aside>`, got)

	assert.Equal(t,
		`document.getElementById("ethicalads-section").classList.add("border-b-2", "pt-2")`,
		string(slot.OnLoad("border-b-2", "pt-2")))
}

func TestGitHubCorner(t *testing.T) {
	t.Parallel()

	corner := components.GitHubCorner{
		Href:        "https://github.com/dguo/make-a-readme",
		BannerColor: "#fff",
		OctoColor:   "#404040",
	}
	got := render(t, fragmentPage{
		Name: "github_corner",
		Data: corner,
		Uses: []view.Component{corner},
	})
	assert.Contains(t, got, `<a href="https://github.com/dguo/make-a-readme" class="github-corner" aria-label="View source on GitHub">`)
	assert.Contains(t, got, `width="80" height="80"`)
	assert.Contains(t, got, `fill="#fff" color="#404040"`)

	sheets := corner.Stylesheets(context.Background())
	require.Len(t, sheets, 1)
	assert.Equal(t, "styles/github_corner.css.tmpl", sheets[0].TemplatePath)
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	got := render(t, fragmentPage{
		Name: "metadata",
		Data: components.Metadata{
			Title:       "Make a README",
			Description: "Learn how to make a great README.",
			URL:         "https://www.makeareadme.com",
			Image:       components.Image{URL: "https://example.com/card.png", Width: 1200, Height: 630},
			Favicon:     "images/favicon.ico",
		},
		Uses: []view.Component{components.Metadata{}},
	})
	assert.Contains(t, got, `<title>Make a README</title>`)
	assert.Contains(t, got, `<meta property="og:url" content="https://www.makeareadme.com">`)
	assert.Contains(t, got, `<meta property="og:image:width" content="1200">`)
	assert.Contains(t, got, `<link rel="icon" type="image/x-icon" href="images/favicon.ico">`)
}

func TestNewReadmeTemplate(t *testing.T) {
	t.Parallel()

	guide := content.Guide{
		Title:   "Make a README",
		Tagline: "Because no one can read your mind (yet)",
		Sections: []content.Section{
			{Heading: "README 101", Intro: "<p>Intro</p>"},
			{Heading: "Template", Editor: true},
			{Heading: "FAQ", Items: []content.Item{
				{Heading: "What is a README?", FAQ: true, Body: "<p>A README explains your project.</p>"},
			}},
		},
	}
	readme := content.Readme{Markdown: "# Foobar", Preview: "<h1>Foobar</h1>"}

	tmpl := components.NewReadmeTemplate(guide, readme)
	assert.Equal(t, "Make a README", tmpl.Title)
	require.Len(t, tmpl.Sections, 3)

	assert.Equal(t, "README 101", tmpl.Sections[0].Heading)
	assert.Nil(t, tmpl.Sections[0].Editor)

	require.NotNil(t, tmpl.Sections[1].Editor)
	assert.Equal(t, "# Foobar", tmpl.Sections[1].Editor.Markdown)
	assert.Equal(t, "README template", tmpl.Sections[1].Editor.Label)

	require.Len(t, tmpl.Sections[2].Items, 1)
	assert.True(t, tmpl.Sections[2].Items[0].Highlighted())

	got := render(t, fragmentPage{
		Name: "readme_template",
		Data: tmpl,
		Uses: []view.Component{tmpl},
	})
	assert.Contains(t, got, "<h1>Make a README</h1>")
	assert.Contains(t, got, `<p class="italic">Because no one can read your mind (yet)</p>`)
	assert.Contains(t, got, `id="editor"`)
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	page := fragmentPage{
		Name: "section_item",
		Data: components.SectionItem{Heading: "What is a README?", IsFAQ: true, Content: "A README explains your project."},
		Uses: []view.Component{components.SectionItem{}},
	}
	s := site.New(fragmentFS(t, page.Name), config.Site{})
	var first, second bytes.Buffer
	require.NoError(t, view.RenderE(context.Background(), &first, s, page))
	require.NoError(t, view.RenderE(context.Background(), &second, s, page))
	assert.Equal(t, first.String(), second.String())
}
