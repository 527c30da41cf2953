package cart

import (
	"sort"

	"github.com/northeast-trails/service-trip/internal/geo"
)

// StateGroup is one state's entries, in cart insertion order.
type StateGroup struct {
	State   string  `json:"state"`
	Entries []Entry `json:"entries"`
}

// GroupedByState groups entries by state. Groups appear in the order
// their state was first seen in the cart, which keeps sidebar grouping
// stable as entries are added.
func (c *Cart) GroupedByState() []StateGroup {
	var groups []StateGroup
	index := make(map[string]int)

	for _, e := range c.entries {
		i, seen := index[e.State]
		if !seen {
			i = len(groups)
			index[e.State] = i
			groups = append(groups, StateGroup{State: e.State})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// RankedHub is a hub name with the number of cart entries covering it.
type RankedHub struct {
	Name     string `json:"name"`
	Coverage int    `json:"coverage"`
}

// AvailableHubs returns every hub name appearing in any entry's
// logistics, ranked by how many entries reference it, descending. A hub
// listed twice in one entry's logistics still counts that entry once.
// Ties keep first-encountered order.
func (c *Cart) AvailableHubs() []RankedHub {
	var ranked []RankedHub
	index := make(map[string]int)

	for _, e := range c.entries {
		counted := make(map[string]bool)
		for _, l := range e.Logistics {
			if l.Hub == "" || counted[l.Hub] {
				continue
			}
			counted[l.Hub] = true
			i, seen := index[l.Hub]
			if !seen {
				i = len(ranked)
				index[l.Hub] = i
				ranked = append(ranked, RankedHub{Name: l.Hub})
			}
			ranked[i].Coverage++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Coverage > ranked[j].Coverage
	})
	return ranked
}

// TotalDriveMinutes sums each entry's drive time from the selected hub.
// Entries with no logistics match contribute zero to the total; a
// missing match is only defaulted here, never in per-entry display.
func (c *Cart) TotalDriveMinutes() int {
	if c.selectedHub == "" || c.selectedHub == MyLocation {
		return 0
	}
	total := 0
	for _, e := range c.entries {
		if minutes, ok := geo.DriveTimeFromHub(e.Logistics, c.selectedHub); ok {
			total += minutes
		}
	}
	return total
}
