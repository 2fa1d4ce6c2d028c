package components

import (
	"context"
	"fmt"
	"html/template"
)

// AdSlot reserves the region an external ad widget fills in at runtime.
type AdSlot struct {
	// ElementID identifies the container element.
	ElementID string
	Publisher string
	AdType    string
}

func (AdSlot) Templates(_ context.Context) []string {
	return []string{"components/ad_slot.html.tmpl"}
}

// OnLoad returns the JavaScript that marks the container once the ad client
// has loaded, by adding the given classes to it.
func (a AdSlot) OnLoad(classes ...string) template.JS {
	args := ""
	for pos, class := range classes {
		if pos > 0 {
			args += ", "
		}
		args += fmt.Sprintf("%q", class)
	}
	return template.JS(fmt.Sprintf("document.getElementById(%q).classList.add(%s)", a.ElementID, args)) // #nosec G203
}
