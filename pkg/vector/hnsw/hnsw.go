// Package hnsw provides an in-process vector driver backed by an HNSW graph,
// optionally persisted to a hackpadfs filesystem.
package hnsw

import (
	"bytes"
	"cmp"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fogfish/hnsw"
	hvector "github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/papercomputeco/pixelo/pkg/logger"
	"github.com/papercomputeco/pixelo/pkg/vector"
)

const defaultEfSearch = 100

// Config holds configuration for the HNSW driver.
type Config struct {
	// FS and Path locate the persisted index. When both are set an existing
	// index is loaded on start and the index is written back on Close.
	FS   hackpadfs.FS
	Path string

	Logger *slog.Logger
}

// snapshot is the persisted form of the index.
type snapshot struct {
	Nodes hnsw.Nodes[hvector.VF32]
	Words map[uint32]string
	Dim   int
}

// Driver implements vector.Driver with github.com/fogfish/hnsw.
type Driver struct {
	mu     sync.RWMutex
	index  *hnsw.HNSW[hvector.VF32]
	words  map[uint32]string
	dim    int
	dirty  bool
	config Config
	logger *slog.Logger
}

// NewDriver creates an empty index, or loads the one at c.Path.
func NewDriver(c Config) (*Driver, error) {
	l := c.Logger
	if l == nil {
		l = logger.Nop()
	}

	d := &Driver{
		index:  newIndex(),
		words:  make(map[uint32]string),
		config: c,
		logger: l,
	}

	if d.persistent() {
		if err := d.load(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func newIndex() *hnsw.HNSW[hvector.VF32] {
	return hnsw.New[hvector.VF32](hvector.SurfaceVF32(kvector.Cosine()))
}

// pad zero-extends v to a multiple of 4, the vector length the cosine
// surface accepts. Zero components leave cosine similarity unchanged.
func pad(v []float32) []float32 {
	n := (len(v) + 3) &^ 3
	if n == len(v) {
		return v
	}
	out := make([]float32, n)
	copy(out, v)
	return out
}

func (d *Driver) persistent() bool {
	return d.config.FS != nil && d.config.Path != ""
}

// Add inserts documents. The graph does not support replacement, so a
// document whose ID is already indexed only has its word updated.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		if d.index.Size() > 0 && len(doc.Embedding) != d.dim {
			return fmt.Errorf("%w: expected %d, got %d for %q", vector.ErrDimension, d.dim, len(doc.Embedding), doc.Word)
		}
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("%w: empty embedding for %q", vector.ErrDimension, doc.Word)
		}

		if _, ok := d.words[doc.ID]; !ok {
			d.dim = len(doc.Embedding)
			d.index.Insert(hvector.VF32{Key: doc.ID, Vec: pad(doc.Embedding)})
		}
		d.words[doc.ID] = doc.Word
		d.dirty = true
	}

	d.logger.Debug("added documents to hnsw", "count", len(docs), "size", d.index.Size())
	return nil
}

// Query returns up to topK approximate nearest neighbours, scored by cosine
// similarity.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.index.Size() == 0 {
		return nil, nil
	}
	if len(embedding) != d.dim {
		return nil, fmt.Errorf("%w: expected %d, got %d", vector.ErrDimension, d.dim, len(embedding))
	}

	hits := d.index.Search(hvector.VF32{Vec: pad(embedding)}, topK, max(defaultEfSearch, 2*topK))

	results := make([]vector.QueryResult, 0, len(hits))
	for _, h := range hits {
		word, ok := d.words[h.Key]
		if !ok {
			continue
		}
		results = append(results, vector.QueryResult{
			Document: vector.Document{ID: h.Key, Word: word, Embedding: h.Vec[:d.dim]},
			Score:    vector.Cosine(embedding, h.Vec[:d.dim]),
		})
	}

	slices.SortStableFunc(results, func(a, b vector.QueryResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return results, nil
}

// Len returns the number of indexed words.
func (d *Driver) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// Close writes the index back when it is persistent and was modified.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.persistent() || !d.dirty {
		return nil
	}
	if err := d.save(); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

func (d *Driver) save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Nodes: d.index.Nodes(), Words: d.words, Dim: d.dim}); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if err := hackpadfs.WriteFullFile(d.config.FS, d.config.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	d.logger.Debug("saved hnsw index", "path", d.config.Path, "size", len(d.words))
	return nil
}

func (d *Driver) load() error {
	content, err := hackpadfs.ReadFile(d.config.FS, d.config.Path)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read index file: %w", err)
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	d.index = hnsw.FromNodes[hvector.VF32](hvector.SurfaceVF32(kvector.Cosine()), snap.Nodes)
	d.words = snap.Words
	d.dim = snap.Dim
	if d.dim == 0 && d.index.Size() > 0 {
		d.dim = len(d.index.Head().Vec)
	}
	if d.words == nil {
		d.words = make(map[uint32]string)
	}

	d.logger.Debug("loaded hnsw index", "path", d.config.Path, "size", len(d.words))
	return nil
}
