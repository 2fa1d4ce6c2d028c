package view

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
)

// Site is what every Page renders against. It is available to templates as
// .Site and owns the fs.FS the templates, inline scripts and inline
// stylesheets are read from.
type Site interface {
	// TemplateDir returns the fs.FS that the paths from Templates,
	// Script.TemplatePath and Stylesheet.TemplatePath are resolved in.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher lets a Site keep parsed templates between renders, keyed by
// Page.Key. A key must always stand for the same template set: Pages whose
// template lists differ need different keys.
type TemplateCacher interface {
	// GetCachedTemplate returns nil when nothing is stored under key.
	GetCachedTemplate(ctx context.Context, key string) *template.Template
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

// ResourceCacher lets a Site keep the unparsed bodies of inline scripts and
// stylesheets between renders. Keys are derived from the resource's template
// path.
type ResourceCacher interface {
	// GetCachedResource returns nil when nothing is stored under key.
	GetCachedResource(ctx context.Context, key string) *string
	SetCachedResource(ctx context.Context, key, resource string)
}

// ServerErrorPager is implemented by Sites that have a page to show when
// Render fails.
type ServerErrorPager interface {
	ServerErrorPage(ctx context.Context) Page
}

var _ Site = &CachedSite{}
var _ TemplateCacher = &CachedSite{}
var _ ResourceCacher = &CachedSite{}

// CachedSite is a Site with in-memory template and resource caches. Embed a
// *CachedSite from NewCachedSite in a Site type to get both caches; the zero
// value has no maps and can't store anything.
//
// All methods are safe for concurrent use, so one CachedSite can serve every
// request while a file watcher calls Reset.
type CachedSite struct {
	templatesMu sync.RWMutex
	templates   map[string]*template.Template

	resourcesMu sync.RWMutex
	resources   map[string]string

	dir fs.FS
}

// NewCachedSite returns an empty CachedSite reading from dir.
func NewCachedSite(dir fs.FS) *CachedSite {
	return &CachedSite{
		templates: map[string]*template.Template{},
		resources: map[string]string{},
		dir:       dir,
	}
}

func (s *CachedSite) GetCachedTemplate(_ context.Context, key string) *template.Template {
	s.templatesMu.RLock()
	defer s.templatesMu.RUnlock()
	return s.templates[key]
}

func (s *CachedSite) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	s.templatesMu.Lock()
	defer s.templatesMu.Unlock()
	s.templates[key] = tmpl
}

func (s *CachedSite) GetCachedResource(_ context.Context, key string) *string {
	s.resourcesMu.RLock()
	defer s.resourcesMu.RUnlock()
	body, ok := s.resources[key]
	if !ok {
		return nil
	}
	return &body
}

func (s *CachedSite) SetCachedResource(_ context.Context, key, resource string) {
	s.resourcesMu.Lock()
	defer s.resourcesMu.Unlock()
	s.resources[key] = resource
}

// Reset empties both caches. Renders already in progress finish with what
// they loaded; the next one reads and parses from TemplateDir again.
func (s *CachedSite) Reset() {
	s.templatesMu.Lock()
	s.templates = map[string]*template.Template{}
	s.templatesMu.Unlock()

	s.resourcesMu.Lock()
	s.resources = map[string]string{}
	s.resourcesMu.Unlock()
}

func (s *CachedSite) TemplateDir(_ context.Context) fs.FS {
	return s.dir
}
