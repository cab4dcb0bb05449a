// Package store persists listing records keyed by their external id.
package store

import (
	"context"

	"webstore-scraper/internal/model"
)

// Store is the record repository. Upsert keeps at most one row per
// external id: re-ingesting an id overwrites its fields in place.
// Records are never deleted by this system.
type Store interface {
	// FindByExternalID returns the stored record, or nil when absent.
	FindByExternalID(ctx context.Context, id string) (*model.Item, error)
	Upsert(ctx context.Context, item model.Item) error
	All(ctx context.Context) ([]model.Item, error)
	Count(ctx context.Context) (int64, error)
}
