package vector

import (
	"context"
	"fmt"
	"math"

	"github.com/papercomputeco/pixelo/pkg/corpus"
)

// DefaultBatchSize is the number of documents sent per Add call.
const DefaultBatchSize = 256

// Normalize scales v to unit length in place. Zero vectors are left alone.
// On unit vectors Euclidean and cosine neighbours agree, so every driver
// indexes normalized embeddings.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Cosine returns the cosine similarity of a and b, or 0 if either is zero.
func Cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// Index adds every corpus word to d in batches of batchSize. progress, when
// non-nil, is called after each batch.
func Index(ctx context.Context, d Driver, c *corpus.Corpus, batchSize int, progress func(done, total int)) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < c.Len(); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+batchSize, c.Len())
		docs := make([]Document, 0, end-start)
		for i := start; i < end; i++ {
			docs = append(docs, Document{
				ID:        uint32(i),
				Word:      c.Words[i],
				Embedding: Normalize(c.Vector32(i)),
			})
		}

		if err := d.Add(ctx, docs); err != nil {
			return fmt.Errorf("indexing words %d-%d: %w", start, end-1, err)
		}
		if progress != nil {
			progress(end, c.Len())
		}
	}
	return nil
}

// Neighbors returns the k words closest to word, excluding word itself.
func Neighbors(ctx context.Context, d Driver, c *corpus.Corpus, word string, k int) ([]QueryResult, error) {
	i, ok := c.Index(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
	}

	results, err := d.Query(ctx, Normalize(c.Vector32(i)), k+1)
	if err != nil {
		return nil, err
	}

	out := make([]QueryResult, 0, k)
	for _, r := range results {
		if r.ID == uint32(i) {
			continue
		}
		out = append(out, r)
		if len(out) == k {
			break
		}
	}
	return out, nil
}
