package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dguo/make-a-readme/internal/view"

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of paths or glob patterns of html/template
	// files that need to be parsed before the component can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. These Components will
// automatically have their templates parsed, their template functions added
// and their stylesheets and scripts loaded.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the map of functions available when rendering.
type FuncMapExtender interface {
	// FuncMap returns the functions being added to the FuncMap.
	FuncMap(context.Context) template.FuncMap
}

// Page is a Component that can be passed to Render. It defines a single
// logical page of the application and contains all the information needed to
// render its Components to HTML.
type Page interface {
	Component

	// Key is a unique key to use when caching this page so it doesn't need
	// to be re-parsed. A good key is consistent, but unique per Page.
	Key(context.Context) string

	// ExecutedTemplate is the template that needs to actually be executed
	// when rendering the page. This is usually the base layout the page's
	// own templates fill blocks in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to a page when rendering it.
type RenderData[SiteType Site, PageType Page] struct {
	// Site holds the configuration shared by every page.
	Site SiteType

	// Page is the page being rendered.
	Page PageType

	// CSS holds the rendered <link> and <style> elements for every
	// stylesheet the page's Components need.
	CSS template.HTML

	// HeaderJS holds the rendered <script> elements that load before the
	// page becomes interactive.
	HeaderJS template.HTML

	// FooterJS holds the rendered <script> elements that belong at the end
	// of the body.
	FooterJS template.HTML
}

// Render renders the passed Page to the Writer. If it can't, a server error
// page is written instead. If the Site implements ServerErrorPager, that will
// be rendered; if not, a simple text page indicating a server error will be
// written.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) {
	defer func() {
		// if the ResponseWriter can be closed, let's try to close it
		if closer, ok := out.(io.Closer); ok {
			err := closer.Close()
			// if there's an error closing it, logging it's about all we can do
			if err != nil {
				logger(ctx).ErrorContext(ctx, "error closing response writer", "error", err)
			}
		}
	}()

	// render into a buffer so a failure halfway through doesn't leave a
	// partial page in front of the error page
	var buf bytes.Buffer
	err := RenderE(ctx, &buf, site, page)
	if err == nil {
		_, err = buf.WriteTo(out)
		if err != nil {
			logger(ctx).ErrorContext(ctx, "error writing page", "error", err)
		}
		return
	}

	logger(ctx).ErrorContext(ctx, "error rendering page", "error", err, "page", fmt.Sprintf("%T", page))

	if pager, ok := Site(site).(ServerErrorPager); ok {
		buf.Reset()
		err = RenderE(ctx, &buf, site, pager.ServerErrorPage(ctx))
		if err == nil {
			_, err = buf.WriteTo(out)
		}
		if err != nil {
			// if we can't do that, everything's doomed
			// just log it and we'll move on
			logger(ctx).ErrorContext(ctx, "error rendering server error page", "error", err)
		}
		return
	}

	// there's no server error page, write a server error message
	_, err = out.Write([]byte("Server error."))
	if err != nil {
		logger(ctx).ErrorContext(ctx, "error writing server error message", "error", err)
	}
}

// RenderE renders the passed Page to the Writer and returns any error
// encountered, without falling back to an error page. Output may be partial
// if an error is returned.
func RenderE[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "view.Render", trace.WithAttributes(
		attribute.String("view.page.key", page.Key(ctx)),
		attribute.String("view.page.template", page.ExecutedTemplate(ctx)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	components := getRecursiveComponents(ctx, page)
	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
	}
	funcMap := getComponentFuncMap(ctx, site, page)

	sheets, err := orderStylesheets(ctx, components)
	if err != nil {
		return err
	}
	headScripts, footScripts, err := orderScripts(ctx, components)
	if err != nil {
		return err
	}
	data.CSS, err = renderStylesheets(ctx, site, funcMap, data, sheets)
	if err != nil {
		return err
	}
	data.HeaderJS, err = renderScripts(ctx, site, funcMap, data, headScripts)
	if err != nil {
		return err
	}
	data.FooterJS, err = renderScripts(ctx, site, funcMap, data, footScripts)
	if err != nil {
		return err
	}

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(out, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page) (*template.Template, error) {
	key := page.Key(ctx)
	if cache, ok := site.(TemplateCacher); ok {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if cache, ok := site.(TemplateCacher); ok {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		children := uses.UseComponents(ctx)
		for _, child := range children {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		paths := comp.Templates(ctx)
		for _, path := range paths {
			if _, ok := seen[path]; !ok {
				results = append(results, path)
				seen[path] = struct{}{}
			}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		sub := tmpl.New(file)
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = sub.Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// readResource returns the contents of an inline resource's template,
// consulting the Site's ResourceCacher when it has one.
func readResource(ctx context.Context, site Site, key, path string) (string, error) {
	cache, cacheable := site.(ResourceCacher)
	if cacheable {
		if cached := cache.GetCachedResource(ctx, key); cached != nil {
			return *cached, nil
		}
	}
	contents, err := fs.ReadFile(site.TemplateDir(ctx), path)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	if cacheable {
		cache.SetCachedResource(ctx, key, string(contents))
	}
	return string(contents), nil
}

// renderInline executes an inline resource's template wrapped in its element,
// so html/template escapes values for the right context.
func renderInline(ctx context.Context, site Site, funcs template.FuncMap, data any, key, path, element string) (string, error) {
	contents, err := readResource(ctx, site, key, path)
	if err != nil {
		return "", err
	}
	contents = strings.TrimRight(contents, "\n")
	tmpl, err := template.New(path).Funcs(funcs).Parse("<" + element + ">\n" + contents + "\n</" + element + ">\n")
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	var out strings.Builder
	err = tmpl.Execute(&out, data)
	if err != nil {
		return "", fmt.Errorf("error executing %q: %w", path, err)
	}
	return out.String(), nil
}

func renderScripts(ctx context.Context, site Site, funcs template.FuncMap, data any, scripts []Script) (template.HTML, error) {
	var out strings.Builder
	for _, script := range scripts {
		if script.linked() {
			out.WriteString(script.tag())
			continue
		}
		rendered, err := renderInline(ctx, site, funcs, data, script.key(), script.TemplatePath, "script")
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return template.HTML(out.String()), nil // #nosec G203
}

func renderStylesheets(ctx context.Context, site Site, funcs template.FuncMap, data any, sheets []Stylesheet) (template.HTML, error) {
	var out strings.Builder
	for _, sheet := range sheets {
		if sheet.linked() {
			out.WriteString(sheet.tag())
			continue
		}
		rendered, err := renderInline(ctx, site, funcs, data, sheet.key(), sheet.TemplatePath, "style")
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return template.HTML(out.String()), nil // #nosec G203
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in `page`
// overriding the values in `in` if they have the same keys.
func mergeFuncMaps(in template.FuncMap, page template.FuncMap) template.FuncMap {
	res := template.FuncMap{}
	for k, v := range in {
		res[k] = v
	}
	for k, v := range page {
		res[k] = v
	}
	return res
}
