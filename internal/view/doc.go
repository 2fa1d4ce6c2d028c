// Package view renders HTML documents from Components on top of the
// html/template package.
//
// A Component is a piece of the document: it names the templates it needs
// and, optionally, the Components it relies on, the stylesheets and scripts
// it needs loaded, and the template functions it wants available. A Page is
// a Component that gets rendered on its own rather than included in another
// Component. The home page is a Page; the branding corner and the ad slot are
// Components the home page uses.
//
// Every server has one Site. The Site surfaces the fs.FS holding the
// templates and is available at render time as .Site, so it can hold the
// configuration shared by every Page. The Page itself is available as .Page.
//
// Stylesheets and scripts are collected from the whole Component tree,
// deduplicated and ordered before the document is rendered. The results are
// available to templates as .CSS, .HeaderJS and .FooterJS. Resources declared
// by a single Component keep their declared order; Components that need
// stricter control can describe how a resource relates to any other resource
// with a RelationCalculator.
package view
