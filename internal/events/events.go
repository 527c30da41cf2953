package events

import (
	"time"

	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// Topics.
const (
	TopicTripEvents    = "trip.events"
	TopicCatalogEvents = "catalog.events"
)

// Trip cart event types.
const (
	TripPlaceAdded   = "trip.place_added"
	TripPlaceRemoved = "trip.place_removed"
	TripCartCleared  = "trip.cart_cleared"
	TripHubSelected  = "trip.hub_selected"
)

// Catalog event types, published by the offline content pipeline.
const (
	CatalogPlaceUpserted = "catalog.place_upserted"
	CatalogPlaceRemoved  = "catalog.place_removed"
)

// PlaceAddedEvent is emitted when a place joins a session's cart.
type PlaceAddedEvent struct {
	SessionID  string    `json:"session_id"`
	PlaceID    string    `json:"place_id"`
	PlaceName  string    `json:"place_name"`
	State      string    `json:"state"`
	CartSize   int       `json:"cart_size"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlaceRemovedEvent is emitted when a place leaves a session's cart.
type PlaceRemovedEvent struct {
	SessionID  string    `json:"session_id"`
	PlaceID    string    `json:"place_id"`
	CartSize   int       `json:"cart_size"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CartClearedEvent is emitted when a session empties its cart.
type CartClearedEvent struct {
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// HubSelectedEvent is emitted when a session picks a starting hub.
type HubSelectedEvent struct {
	SessionID  string    `json:"session_id"`
	Hub        string    `json:"hub"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlaceUpsertedEvent carries a full place record from the content pipeline.
type PlaceUpsertedEvent struct {
	Place      catalog.Place `json:"place"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// PlaceRemovedFromCatalogEvent signals a place was retired from the catalog.
type PlaceRemovedFromCatalogEvent struct {
	PlaceID    string    `json:"place_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
