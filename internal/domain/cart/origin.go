package cart

import "github.com/northeast-trails/service-trip/internal/domain/catalog"

// MyLocation is the sentinel selected-origin value meaning the device's
// own geolocation rather than a named hub.
const MyLocation = "my-location"

// OriginKind is the state of the origin state machine.
type OriginKind string

const (
	OriginNone   OriginKind = "none"
	OriginHub    OriginKind = "hub"
	OriginDevice OriginKind = "device"
)

// Origin is the resolved origin for proximity computation.
type Origin struct {
	Kind   OriginKind
	Hub    string
	Coords *catalog.Coordinates
}

// Origin resolves the cart's selected-origin string and transient device
// coordinates into one of the three origin states. The MyLocation
// sentinel without coordinates (e.g. after rehydration, since device
// coordinates are never persisted) resolves to none.
func (c *Cart) Origin() Origin {
	switch {
	case c.selectedHub == "":
		return Origin{Kind: OriginNone}
	case c.selectedHub == MyLocation:
		if c.deviceLoc == nil {
			return Origin{Kind: OriginNone}
		}
		return Origin{Kind: OriginDevice, Coords: c.deviceLoc}
	default:
		return Origin{Kind: OriginHub, Hub: c.selectedHub}
	}
}
