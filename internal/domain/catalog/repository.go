package catalog

import "context"

// PlaceFilter narrows a catalog listing.
type PlaceFilter struct {
	State    string
	Category string
}

// PlaceRepository defines the persistence contract for catalog places.
type PlaceRepository interface {
	// FindByID retrieves a place by its slug identifier.
	FindByID(ctx context.Context, id string) (*Place, error)

	// List retrieves places matching filter in stable catalog order, with pagination.
	List(ctx context.Context, filter PlaceFilter, page, limit int) ([]*Place, int64, error)

	// Upsert inserts or replaces a place record.
	Upsert(ctx context.Context, place *Place) error

	// Remove deletes a place record. Removing an absent place is not an error.
	Remove(ctx context.Context, id string) error

	// CountByState returns place counts grouped by state (admin).
	CountByState(ctx context.Context) (map[string]int64, error)
}

// HubRepository defines the persistence contract for the hub directory.
type HubRepository interface {
	// ListAll retrieves every known hub in directory order.
	ListAll(ctx context.Context) ([]*Hub, error)

	// FindByName retrieves a hub by its full display name.
	FindByName(ctx context.Context, name string) (*Hub, error)

	// Seed inserts directory entries that are not yet present. Idempotent.
	Seed(ctx context.Context, hubs []Hub) error
}
