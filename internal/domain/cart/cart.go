package cart

import (
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// Entry is a denormalized snapshot of a catalog place, copied into the
// cart at add-time so later catalog edits don't mutate planned trips.
type Entry struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Category    string                   `json:"category"`
	SubCategory string                   `json:"sub_category"`
	State       string                   `json:"state"`
	Rating      *float64                 `json:"rating,omitempty"`
	Image       string                   `json:"image,omitempty"`
	Logistics   []catalog.LogisticsEntry `json:"logistics"`
}

// NewEntryFromPlace snapshots a catalog place into a cart entry.
func NewEntryFromPlace(p catalog.Place) Entry {
	return Entry{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		State:       p.State,
		Rating:      p.Rating,
		Image:       p.Image,
		Logistics:   p.Logistics,
	}
}

// Cart is the aggregate root for one session's trip plan. Entries keep
// set semantics by place ID with insertion order preserved; the sidebar
// flag and device location are session-only and never persisted.
type Cart struct {
	sessionID   string
	entries     []Entry
	selectedHub string
	sidebarOpen bool
	deviceLoc   *catalog.Coordinates
}

// New creates an empty cart for the given session.
func New(sessionID string) *Cart {
	return &Cart{sessionID: sessionID}
}

// Rehydrate rebuilds a cart from persisted state. No validation: stored
// data from an older entry shape is tolerated as long as it decoded.
func Rehydrate(sessionID string, entries []Entry, selectedHub string) *Cart {
	return &Cart{
		sessionID:   sessionID,
		entries:     entries,
		selectedHub: selectedHub,
	}
}

// --- Getters ---

// SessionID returns the owning session identifier.
func (c *Cart) SessionID() string { return c.sessionID }

// Entries returns a copy of the cart entries in insertion order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// SelectedHub returns the selected origin string: a hub name, the
// MyLocation sentinel, or empty for none.
func (c *Cart) SelectedHub() string { return c.selectedHub }

// SidebarOpen returns the sidebar visibility flag.
func (c *Cart) SidebarOpen() bool { return c.sidebarOpen }

// DeviceLocation returns the last device coordinates, or nil.
func (c *Cart) DeviceLocation() *catalog.Coordinates { return c.deviceLoc }

// Count returns the number of entries in the cart.
func (c *Cart) Count() int { return len(c.entries) }

// Contains reports whether a place is already in the cart.
func (c *Cart) Contains(placeID string) bool {
	for _, e := range c.entries {
		if e.ID == placeID {
			return true
		}
	}
	return false
}

// --- Behavior ---

// AddPlace appends a snapshot of the place and returns true if it was
// genuinely new. On a genuine add the sidebar opens and, when no origin
// is selected yet, the top-ranked hub across the cart auto-selects.
// Duplicate adds change nothing, including the sidebar.
func (c *Cart) AddPlace(p catalog.Place) bool {
	if c.Contains(p.ID) {
		return false
	}
	c.entries = append(c.entries, NewEntryFromPlace(p))
	c.sidebarOpen = true

	if c.selectedHub == "" {
		if ranked := c.AvailableHubs(); len(ranked) > 0 {
			c.selectedHub = ranked[0].Name
		}
	}
	return true
}

// RemovePlace removes the matching entry and returns true if found.
// Hub selection is left alone even when the removal empties the cart
// or drops the selected hub's last covering entry.
func (c *Cart) RemovePlace(placeID string) bool {
	for i, e := range c.entries {
		if e.ID == placeID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart and resets the selected origin.
func (c *Cart) Clear() {
	c.entries = nil
	c.selectedHub = ""
	c.deviceLoc = nil
}

// SelectHub sets the selected origin. Any string is accepted, including
// hub names no entry's logistics reference; consumers handle no-match.
func (c *Cart) SelectHub(hubName string) {
	c.selectedHub = hubName
}

// ToggleSidebar flips the sidebar visibility flag.
func (c *Cart) ToggleSidebar() {
	c.sidebarOpen = !c.sidebarOpen
}

// SetDeviceLocation records device coordinates and switches the origin
// to the MyLocation sentinel. A later completion overwrites an earlier
// one; last writer wins.
func (c *Cart) SetDeviceLocation(coords catalog.Coordinates) {
	c.deviceLoc = &coords
	c.selectedHub = MyLocation
}

// ClearOrigin resets the origin to none, dropping any device location.
func (c *Cart) ClearOrigin() {
	c.selectedHub = ""
	c.deviceLoc = nil
}
