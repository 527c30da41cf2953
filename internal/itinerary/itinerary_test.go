package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northeast-trails/service-trip/internal/domain/cart"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

func sampleGroups() []cart.StateGroup {
	rating := 4.6
	return []cart.StateGroup{
		{
			State: "Assam",
			Entries: []cart.Entry{
				{
					ID: "kaziranga", Name: "Kaziranga National Park",
					Category: "wildlife", State: "Assam", Rating: &rating,
					Logistics: []catalog.LogisticsEntry{
						{Hub: "Guwahati Airport", Type: catalog.HubTypeAirport, DriveMinutes: 30},
					},
				},
			},
		},
		{
			State: "Meghalaya",
			Entries: []cart.Entry{
				{ID: "laitlum", Name: "Laitlum Canyon", Category: "viewpoint", State: "Meghalaya"},
			},
		},
	}
}

func TestFormatEmptyCart(t *testing.T) {
	text := Format(nil, "", 0)
	assert.Equal(t, "My Northeast Trip Plan\n", text)
}

func TestFormatEmptyCartWithSelectedHub(t *testing.T) {
	// An empty cart with a lingering hub selection must not throw and
	// still renders the hub line.
	text := Format(nil, "Guwahati Airport", 0)
	assert.Contains(t, text, "My Northeast Trip Plan")
	assert.Contains(t, text, "Guwahati Airport")
}

func TestFormatFullItinerary(t *testing.T) {
	text := Format(sampleGroups(), "Guwahati Airport", 30)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "My Northeast Trip Plan", lines[0])
	assert.Contains(t, lines[1], "Guwahati Airport")
	assert.Contains(t, lines[1], "30 min")
	assert.Contains(t, text, "Assam (1):")
	assert.Contains(t, text, "Meghalaya (1):")
	assert.Contains(t, text, "Kaziranga National Park")
	assert.Contains(t, text, "4.6★")
	assert.Contains(t, text, "30 min drive")

	// The entry with no logistics match renders without a drive time.
	for _, line := range lines {
		if strings.Contains(line, "Laitlum Canyon") {
			assert.NotContains(t, line, "drive")
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	groups := sampleGroups()
	first := Format(groups, "Guwahati Airport", 30)
	second := Format(groups, "Guwahati Airport", 30)
	assert.Equal(t, first, second)
}

func TestFormatSkipsHubLineForMyLocation(t *testing.T) {
	text := Format(sampleGroups(), cart.MyLocation, 0)
	assert.NotContains(t, text, cart.MyLocation)
}

func TestShareLink(t *testing.T) {
	link := ShareLink("Trip plan: Assam & Meghalaya")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	assert.Contains(t, link, "%20")
	assert.NotContains(t, link, " ")
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%26")
}
