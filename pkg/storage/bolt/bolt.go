// Package bolt provides a bbolt-backed storage driver. Each puzzle is a
// nested bucket mapping word to rank.
package bolt

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

var puzzlesBucket = []byte("puzzles")

// Driver implements storage.Driver on a single bbolt file.
type Driver struct {
	db *bbolt.DB
}

// NewDriver opens or creates the database at path.
func NewDriver(path string) (*Driver, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(puzzlesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create puzzles bucket: %w", err)
	}

	return &Driver{db: db}, nil
}

// Put stores a table, replacing any previous one.
func (d *Driver) Put(_ context.Context, id string, table *ranking.Table) error {
	if table == nil {
		return errors.New("cannot store nil table")
	}
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	return d.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(puzzlesBucket)
		if root.Bucket([]byte(id)) != nil {
			if err := root.DeleteBucket([]byte(id)); err != nil {
				return fmt.Errorf("failed to clear puzzle %s: %w", id, err)
			}
		}

		b, err := root.CreateBucket([]byte(id))
		if err != nil {
			return fmt.Errorf("failed to create puzzle %s: %w", id, err)
		}

		for rank, word := range table.Words() {
			var v [4]byte
			binary.BigEndian.PutUint32(v[:], uint32(rank))
			if err := b.Put([]byte(word), v[:]); err != nil {
				return fmt.Errorf("failed to store rank for %q: %w", word, err)
			}
		}
		return nil
	})
}

// Get retrieves a table by puzzle ID.
func (d *Driver) Get(_ context.Context, id string) (*ranking.Table, error) {
	var ranks map[string]int

	err := d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(puzzlesBucket).Bucket([]byte(id))
		if b == nil {
			return storage.NotFoundError{ID: id}
		}

		ranks = make(map[string]int, b.Stats().KeyN)
		return b.ForEach(func(k, v []byte) error {
			if len(v) != 4 {
				return fmt.Errorf("corrupt rank for %q in puzzle %s", k, id)
			}
			ranks[string(k)] = int(binary.BigEndian.Uint32(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return ranking.FromRanks(ranks)
}

// Has checks if a puzzle exists.
func (d *Driver) Has(_ context.Context, id string) (bool, error) {
	var ok bool
	err := d.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(puzzlesBucket).Bucket([]byte(id)) != nil
		return nil
	})
	return ok, err
}

// List returns all puzzle IDs. bbolt keeps keys in byte order, so the
// result is already sorted.
func (d *Driver) List(_ context.Context) ([]string, error) {
	ids := []string{}
	err := d.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(puzzlesBucket).ForEachBucket(func(k []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}

// Delete removes a puzzle.
func (d *Driver) Delete(_ context.Context, id string) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(puzzlesBucket)
		if root.Bucket([]byte(id)) == nil {
			return storage.NotFoundError{ID: id}
		}
		return root.DeleteBucket([]byte(id))
	})
}

// Close closes the database file.
func (d *Driver) Close() error {
	return d.db.Close()
}
