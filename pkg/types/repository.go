package types

import "context"

// Snapshot is the full persisted state: categories and items, each in
// insertion order.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}

// Repository loads and saves the complete ranking state. Implementations are
// invoked outside the stores' locks and may block on I/O.
type Repository interface {
	// LoadAll returns the stored state. An empty repository returns an empty
	// Snapshot and no error.
	LoadAll(ctx context.Context) (Snapshot, error)

	// SaveAll replaces the stored state with snap.
	SaveAll(ctx context.Context, snap Snapshot) error
}
