// Package pages holds the Pages of the site.
package pages

import (
	"context"
	"net/url"

	"github.com/dguo/make-a-readme/internal/components"
	"github.com/dguo/make-a-readme/internal/config"
	"github.com/dguo/make-a-readme/internal/content"
	"github.com/dguo/make-a-readme/internal/view"
)

// Anchors configures the heading anchor-link utility.
type Anchors struct {
	ScriptURL string
	Placement string

	// Truncate is the number of characters of a heading used in its
	// anchor.
	Truncate int
}

// Analytics configures the page-view and usage tracking scripts.
type Analytics struct {
	GoogleTagID   string
	TagManagerURL string

	TrackingScriptURL string
	TrackingAPI       string
	TrackingDomain    string
}

// HomePage is the single page of the site: metadata, the branding corner,
// the ad slot, the guide with its editor, then the third-party scripts.
type HomePage struct {
	Layout   components.Layout
	Metadata components.Metadata
	Corner   components.GitHubCorner
	AdSlot   components.AdSlot
	Template components.ReadmeTemplate

	AdClientURL string
	Anchors     Anchors
	Analytics   Analytics
}

// NewHomePage builds the home page from the site configuration and the
// loaded content.
func NewHomePage(cfg config.Site, guide content.Guide, readme content.Readme) HomePage {
	return HomePage{
		Layout: components.Layout{Stylesheet: cfg.Stylesheet},
		Metadata: components.Metadata{
			Title:       cfg.Title,
			Description: cfg.Description,
			URL:         cfg.URL,
			SiteName:    cfg.SiteName,
			Type:        cfg.ContentType,
			Image: components.Image{
				URL:    cfg.ImageURL,
				Type:   cfg.ImageType,
				Width:  cfg.ImageWidth,
				Height: cfg.ImageHeight,
			},
			TwitterCard:    cfg.TwitterCard,
			TwitterCreator: cfg.TwitterCreator,
			Favicon:        cfg.Favicon,
		},
		Corner: components.GitHubCorner{
			Href:        cfg.RepositoryURL,
			BannerColor: cfg.BannerColor,
			OctoColor:   cfg.OctoColor,
		},
		AdSlot: components.AdSlot{
			ElementID: cfg.AdElementID,
			Publisher: cfg.AdPublisher,
			AdType:    cfg.AdType,
		},
		Template:    components.NewReadmeTemplate(guide, readme),
		AdClientURL: cfg.AdClientURL,
		Anchors: Anchors{
			ScriptURL: cfg.AnchorJSURL,
			Placement: cfg.AnchorPlacement,
			Truncate:  cfg.AnchorTruncate,
		},
		Analytics: Analytics{
			GoogleTagID:       cfg.GoogleTagID,
			TagManagerURL:     cfg.TagManagerURL,
			TrackingScriptURL: cfg.TrackingScriptURL,
			TrackingAPI:       cfg.TrackingAPI,
			TrackingDomain:    cfg.TrackingDomain,
		},
	}
}

func (HomePage) Templates(_ context.Context) []string {
	return []string{"pages/home.html.tmpl"}
}

func (h HomePage) UseComponents(_ context.Context) []view.Component {
	return []view.Component{
		h.Layout,
		h.Metadata,
		h.Corner,
		h.AdSlot,
		h.Template,
	}
}

func (HomePage) Key(_ context.Context) string {
	return "pages/home.html.tmpl"
}

func (h HomePage) ExecutedTemplate(_ context.Context) string {
	return h.Layout.BaseTemplate()
}

// Scripts loads the anchor-link utility before the page is interactive, then
// the inline setup, the ad client, usage tracking and the tag manager, in
// that order.
func (h HomePage) Scripts(_ context.Context) []view.Script {
	return []view.Script{
		{
			Src:      h.Anchors.ScriptURL,
			Strategy: view.StrategyBeforeInteractive,
		},
		{TemplatePath: "scripts/init.js.tmpl"},
		{
			Src:    h.AdClientURL,
			OnLoad: h.AdSlot.OnLoad("border-b-2", "pt-2"),
		},
		{
			Src: h.Analytics.TrackingScriptURL,
			Attrs: map[string]string{
				"data-api":    h.Analytics.TrackingAPI,
				"data-domain": h.Analytics.TrackingDomain,
			},
		},
		{Src: h.Analytics.TagManagerURL + "?id=" + url.QueryEscape(h.Analytics.GoogleTagID)},
	}
}
