package view

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type scriptComponent []Script

func (scriptComponent) Templates(_ context.Context) []string {
	return nil
}

func (s scriptComponent) Scripts(_ context.Context) []Script {
	return s
}

type stylesheetComponent []Stylesheet

func (stylesheetComponent) Templates(_ context.Context) []string {
	return nil
}

func (s stylesheetComponent) Stylesheets(_ context.Context) []Stylesheet {
	return s
}

func scriptKeys(scripts []Script) []string {
	keys := make([]string, 0, len(scripts))
	for _, script := range scripts {
		keys = append(keys, script.key())
	}
	return keys
}

func TestOrderScriptsKeepsDeclaredOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	head, foot, err := orderScripts(ctx, []Component{
		scriptComponent{
			{Src: "https://example.com/anchor.js", Strategy: StrategyBeforeInteractive},
			{TemplatePath: "init.js.tmpl"},
			{Src: "https://example.com/z.js"},
			{Src: "https://example.com/a.js"},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"JSLink(https://example.com/anchor.js)"}, scriptKeys(head)); diff != "" {
		t.Errorf("head scripts (-want +got):\n%s", diff)
	}
	want := []string{
		"JSInline(init.js.tmpl)",
		"JSLink(https://example.com/z.js)",
		"JSLink(https://example.com/a.js)",
	}
	if diff := cmp.Diff(want, scriptKeys(foot)); diff != "" {
		t.Errorf("footer scripts (-want +got):\n%s", diff)
	}
}

func TestOrderScriptsDeduplicates(t *testing.T) {
	t.Parallel()

	_, foot, err := orderScripts(context.Background(), []Component{
		scriptComponent{{Src: "https://example.com/a.js"}, {Src: "https://example.com/b.js"}},
		scriptComponent{{Src: "https://example.com/b.js"}, {Src: "https://example.com/c.js"}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{
		"JSLink(https://example.com/a.js)",
		"JSLink(https://example.com/b.js)",
		"JSLink(https://example.com/c.js)",
	}
	if diff := cmp.Diff(want, scriptKeys(foot)); diff != "" {
		t.Errorf("footer scripts (-want +got):\n%s", diff)
	}
}

func TestOrderScriptsDisableImplicitOrdering(t *testing.T) {
	t.Parallel()

	_, foot, err := orderScripts(context.Background(), []Component{
		scriptComponent{
			{Src: "https://example.com/z.js", DisableImplicitOrdering: true},
			{Src: "https://example.com/a.js", DisableImplicitOrdering: true},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{
		"JSLink(https://example.com/a.js)",
		"JSLink(https://example.com/z.js)",
	}
	if diff := cmp.Diff(want, scriptKeys(foot)); diff != "" {
		t.Errorf("footer scripts (-want +got):\n%s", diff)
	}
}

func TestOrderScriptsExplicitRelation(t *testing.T) {
	t.Parallel()

	beforeGlobal := func(_ context.Context, other Script) ResourceRelationship {
		if other.Src == "https://example.com/global.js" {
			return ResourceRelationshipBefore
		}
		return ResourceRelationshipNeutral
	}
	_, foot, err := orderScripts(context.Background(), []Component{
		scriptComponent{{Src: "https://example.com/global.js"}},
		scriptComponent{{TemplatePath: "page.js.tmpl", RelationCalculator: beforeGlobal}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{
		"JSInline(page.js.tmpl)",
		"JSLink(https://example.com/global.js)",
	}
	if diff := cmp.Diff(want, scriptKeys(foot)); diff != "" {
		t.Errorf("footer scripts (-want +got):\n%s", diff)
	}
}

func TestOrderScriptsCycle(t *testing.T) {
	t.Parallel()

	after := func(src string) func(context.Context, Script) ResourceRelationship {
		return func(_ context.Context, other Script) ResourceRelationship {
			if other.Src == src {
				return ResourceRelationshipAfter
			}
			return ResourceRelationshipNeutral
		}
	}
	_, _, err := orderScripts(context.Background(), []Component{
		scriptComponent{
			{Src: "https://example.com/a.js", RelationCalculator: after("https://example.com/b.js")},
			{Src: "https://example.com/b.js", RelationCalculator: after("https://example.com/a.js")},
		},
	})
	if !errors.Is(err, ErrResourceCycle) {
		t.Fatalf("Expected ErrResourceCycle, got %v", err)
	}
}

func TestOrderStylesheets(t *testing.T) {
	t.Parallel()

	sheets, err := orderStylesheets(context.Background(), []Component{
		stylesheetComponent{{TemplatePath: "page.css.tmpl"}},
		stylesheetComponent{{Href: "https://example.com/base.css"}, {TemplatePath: "corner.css.tmpl"}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var got []string
	for _, sheet := range sheets {
		got = append(got, sheet.key())
	}
	want := []string{
		"CSSLink(https://example.com/base.css)",
		"CSSInline(corner.css.tmpl)",
		"CSSInline(page.css.tmpl)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stylesheets (-want +got):\n%s", diff)
	}
}

func TestInvalidResources(t *testing.T) {
	t.Parallel()

	if _, _, err := orderScripts(context.Background(), []Component{scriptComponent{{}}}); !errors.Is(err, ErrInvalidResource) {
		t.Errorf("Expected ErrInvalidResource for an empty script, got %v", err)
	}
	if _, err := orderStylesheets(context.Background(), []Component{stylesheetComponent{{Href: "a.css", TemplatePath: "a.css.tmpl"}}}); !errors.Is(err, ErrInvalidResource) {
		t.Errorf("Expected ErrInvalidResource for a stylesheet with both sources, got %v", err)
	}
}

func TestScriptTag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		script Script
		want   string
	}{
		"plain": {
			script: Script{Src: "https://www.googletagmanager.com/gtag/js?id=G-1"},
			want:   `<script src="https://www.googletagmanager.com/gtag/js?id=G-1"></script>` + "\n",
		},
		"attrs": {
			script: Script{
				Src:   "/js/script.js",
				Type:  "module",
				Attrs: map[string]string{"data-domain": "example.com", "data-api": "/api/event"},
				Defer: true,
			},
			want: `<script src="/js/script.js" type="module" data-api="/api/event" data-domain="example.com" defer></script>` + "\n",
		},
		"escaped": {
			script: Script{Src: `/a.js?x="1"&y=2`, OnLoad: `go('x')`},
			want:   `<script src="/a.js?x=&#34;1&#34;&amp;y=2" onload="go(&#39;x&#39;)"></script>` + "\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.script.tag(); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
