package cart

import "context"

// StateRepository is the durable key-value contract for cart state: one
// row per session holding the serialized entries and the selected-hub
// string. Writes are best-effort — callers catch and ignore failures,
// and treat unreadable stored state as an empty start.
type StateRepository interface {
	// Load retrieves the persisted entries and selected hub for a session.
	Load(ctx context.Context, sessionID string) ([]Entry, string, error)

	// Save persists the full entry list and selected hub for a session.
	Save(ctx context.Context, sessionID string, entries []Entry, selectedHub string) error
}
