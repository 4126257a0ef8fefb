// Package inmemory provides a map-backed storage driver.
package inmemory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the mapping of tables
	mu sync.RWMutex

	// tables is the in memory map of lookup tables keyed by puzzle ID
	tables map[string]*ranking.Table
}

// NewDriver creates a new in-memory store.
func NewDriver() *Driver {
	return &Driver{
		tables: make(map[string]*ranking.Table),
	}
}

// Put stores a table, replacing any previous one. Tables are immutable, so
// the pointer is kept as is.
func (s *Driver) Put(_ context.Context, id string, table *ranking.Table) error {
	if table == nil {
		return errors.New("cannot store nil table")
	}
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[id] = table
	return nil
}

// Get retrieves a table by puzzle ID.
func (s *Driver) Get(_ context.Context, id string) (*ranking.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[id]
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}

	return table, nil
}

// Has checks if a table exists for the puzzle ID.
func (s *Driver) Has(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tables[id]
	return ok, nil
}

// List returns all puzzle IDs, sorted.
func (s *Driver) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tables))
	for id := range s.tables {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Delete removes a table.
func (s *Driver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return storage.NotFoundError{ID: id}
	}
	delete(s.tables, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Driver) Close() error {
	return nil
}
