// Package itinerary renders a cart's grouped state into a shareable
// plain-text trip plan and its messaging share link.
package itinerary

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/northeast-trails/service-trip/internal/domain/cart"
	"github.com/northeast-trails/service-trip/internal/geo"
)

const title = "My Northeast Trip Plan"

// shareURLTemplate is the external messaging URL the itinerary text is
// percent-encoded into.
const shareURLTemplate = "https://wa.me/?text="

// Format renders the grouped cart view as a plain-text itinerary. The
// output is deterministic: the same inputs always produce byte-identical
// text. An empty cart yields the title line only.
func Format(groups []cart.StateGroup, selectedHub string, totalMinutes int) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	if selectedHub != "" && selectedHub != cart.MyLocation {
		fmt.Fprintf(&b, "Starting from %s — total drive time %s\n",
			selectedHub, geo.FormatDuration(totalMinutes))
	}

	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s (%d):\n", g.State, len(g.Entries))
		for _, e := range g.Entries {
			b.WriteString("- ")
			b.WriteString(e.Name)
			if e.Category != "" {
				fmt.Fprintf(&b, " [%s]", e.Category)
			}
			if e.Rating != nil {
				fmt.Fprintf(&b, " %.1f★", *e.Rating)
			}
			if selectedHub != "" && selectedHub != cart.MyLocation {
				if minutes, ok := geo.DriveTimeFromHub(e.Logistics, selectedHub); ok {
					fmt.Fprintf(&b, " — %s drive", geo.FormatDuration(minutes))
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ShareLink wraps itinerary text into the messaging share URL, using
// %20 for spaces as the service expects.
func ShareLink(text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return shareURLTemplate + encoded
}
