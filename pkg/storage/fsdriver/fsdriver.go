// Package fsdriver stores each puzzle as <id>/lookup.json on a hackpadfs
// filesystem. The layout is the one static game frontends fetch from.
package fsdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

// LookupFile is the file name of a stored table inside its puzzle directory.
const LookupFile = "lookup.json"

// Driver implements storage.Driver on a filesystem.
type Driver struct {
	mu sync.RWMutex
	fs hackpadfs.FS
}

// NewDriver stores puzzles at the root of fs.
func NewDriver(fs hackpadfs.FS) *Driver {
	return &Driver{fs: fs}
}

// NewOSDriver stores puzzles under dir on the host filesystem, creating it
// if needed.
func NewOSDriver(dir string) (*Driver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	root := osfs.NewFS()
	rel, err := root.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", abs, err)
	}
	if err := hackpadfs.MkdirAll(root, rel, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", abs, err)
	}

	sub, err := root.Sub(rel)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", abs, err)
	}
	return NewDriver(sub), nil
}

func lookupPath(id string) string {
	return path.Join(id, LookupFile)
}

// Put writes <id>/lookup.json, replacing any previous file.
func (d *Driver) Put(_ context.Context, id string, table *ranking.Table) error {
	if table == nil {
		return errors.New("cannot store nil table")
	}
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := hackpadfs.MkdirAll(d.fs, id, 0o755); err != nil {
		return fmt.Errorf("failed to create puzzle directory %s: %w", id, err)
	}
	if err := hackpadfs.WriteFullFile(d.fs, lookupPath(id), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", lookupPath(id), err)
	}
	return nil
}

// Get reads <id>/lookup.json.
func (d *Driver) Get(_ context.Context, id string) (*ranking.Table, error) {
	if storage.ValidateID(id) != nil {
		return nil, storage.NotFoundError{ID: id}
	}

	d.mu.RLock()
	data, err := hackpadfs.ReadFile(d.fs, lookupPath(id))
	d.mu.RUnlock()
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, storage.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", lookupPath(id), err)
	}

	var table ranking.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", lookupPath(id), err)
	}
	return &table, nil
}

// Has checks if <id>/lookup.json exists.
func (d *Driver) Has(_ context.Context, id string) (bool, error) {
	if storage.ValidateID(id) != nil {
		return false, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.has(id)
}

func (d *Driver) has(id string) (bool, error) {
	_, err := hackpadfs.Stat(d.fs, lookupPath(id))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, hackpadfs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", lookupPath(id), err)
	}
}

// List returns the names of directories that hold a lookup file.
func (d *Driver) List(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries, err := hackpadfs.ReadDir(d.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}

	ids := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ok, err := d.has(e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, e.Name())
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Delete removes the puzzle directory.
func (d *Driver) Delete(_ context.Context, id string) error {
	if storage.ValidateID(id) != nil {
		return storage.NotFoundError{ID: id}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ok, err := d.has(id)
	if err != nil {
		return err
	}
	if !ok {
		return storage.NotFoundError{ID: id}
	}
	return hackpadfs.RemoveAll(d.fs, id)
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}
