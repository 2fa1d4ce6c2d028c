// Package site is the Site every page of Make a README renders with.
package site

import (
	"context"
	"html/template"
	"io/fs"
	"strconv"
	"strings"

	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/view"
)

var _ view.Site = &Site{}
var _ view.FuncMapExtender = &Site{}
var _ view.ServerErrorPager = &Site{}

// Site holds the template cache and the page configuration.
type Site struct {
	// anonymously embedding a *CachedSite makes Site a view.Site
	*view.CachedSite

	Config config.Site
}

// New returns a Site rendering the templates in templates.
func New(templates fs.FS, cfg config.Site) *Site {
	return &Site{
		CachedSite: view.NewCachedSite(templates),
		Config:     cfg,
	}
}

// FuncMap makes the site's helpers available to every template.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"asset": s.Asset,
		"jsInt": jsInt,
	}
}

// Asset resolves a path to a static asset against the configured asset base
// URL. Absolute URLs and paths are returned unchanged when there's no base.
func (s *Site) Asset(path string) string {
	if s.Config.AssetBaseURL == "" || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimSuffix(s.Config.AssetBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// ServerErrorPage is rendered when a page fails to render.
func (s *Site) ServerErrorPage(_ context.Context) view.Page {
	return ServerErrorPage{}
}

// jsInt writes an integer into a script as a bare number literal.
func jsInt(i int) template.JS {
	return template.JS(strconv.Itoa(i)) // #nosec G203
}

// ServerErrorPage is a static page apologizing for a failed render.
type ServerErrorPage struct{}

func (ServerErrorPage) Templates(_ context.Context) []string {
	return []string{"pages/server_error.html.tmpl"}
}

func (ServerErrorPage) Key(_ context.Context) string {
	return "pages/server_error.html.tmpl"
}

func (ServerErrorPage) ExecutedTemplate(_ context.Context) string {
	return "pages/server_error.html.tmpl"
}
