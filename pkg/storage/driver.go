// Package storage persists rank tables keyed by puzzle ID.
package storage

import (
	"context"

	"github.com/papercomputeco/pixelo/pkg/ranking"
)

// Driver defines the interface for persisting and retrieving puzzle lookup
// tables. Puzzle IDs are dates in YYYY-MM-DD form or the fallback ID "1".
type Driver interface {
	// Put stores table under id, replacing any table already stored there.
	Put(ctx context.Context, id string, table *ranking.Table) error

	// Get retrieves the table stored under id. It returns NotFoundError when
	// there is none.
	Get(ctx context.Context, id string) (*ranking.Table, error)

	// Has checks if a table exists for id.
	Has(ctx context.Context, id string) (bool, error)

	// List returns all stored puzzle IDs in ascending order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the table stored under id. It returns NotFoundError when
	// there is none.
	Delete(ctx context.Context, id string) error

	// Close closes the store and releases any resources.
	Close() error
}
