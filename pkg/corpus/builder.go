package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/embeddings"
	"github.com/papercomputeco/pixelo/pkg/logger"
)

// Builder embeds a word list into a new Corpus.
type Builder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger

	// Progress, when set, is called after each embedded word.
	Progress func(done, total int)
}

// NewBuilder creates a builder backed by embedder.
func NewBuilder(embedder embeddings.Embedder, l *slog.Logger) *Builder {
	if l == nil {
		l = logger.Nop()
	}
	return &Builder{embedder: embedder, logger: l}
}

// Build embeds every word in order. All embeddings must share one dimension.
func (b *Builder) Build(ctx context.Context, words []string) (*Corpus, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrDataUnavailable)
	}

	var (
		dims    int
		columns [][]float32
	)
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vec, err := b.embedder.Embed(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("embedding %q: %w", w, err)
		}

		if i == 0 {
			dims = len(vec)
			columns = make([][]float32, 0, len(words))
		} else if len(vec) != dims {
			return nil, fmt.Errorf("embedding %q: got %d dimensions, expected %d", w, len(vec), dims)
		}
		columns = append(columns, vec)

		if b.Progress != nil {
			b.Progress(i+1, len(words))
		}
	}

	m := mat.NewDense(dims, len(columns), nil)
	for j, col := range columns {
		for i, v := range col {
			m.Set(i, j, float64(v))
		}
	}

	b.logger.Info("corpus embedded", "words", len(words), "dims", dims)

	return New(words, m)
}

// Save writes the word list and embedding matrix named by dst, creating
// parent directories as needed.
func (c *Corpus) Save(dst Source) error {
	for _, p := range []string{dst.WordListPath, dst.EmbeddingsPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", p, err)
		}
	}

	wf, err := os.Create(dst.WordListPath)
	if err != nil {
		return fmt.Errorf("creating word list: %w", err)
	}
	if err := WriteWordList(wf, c.Words); err != nil {
		wf.Close()
		return err
	}
	if err := wf.Close(); err != nil {
		return fmt.Errorf("closing word list: %w", err)
	}

	ef, err := os.Create(dst.EmbeddingsPath)
	if err != nil {
		return fmt.Errorf("creating embeddings: %w", err)
	}
	if err := WriteMatrix(ef, c.Embeddings); err != nil {
		ef.Close()
		return err
	}
	return ef.Close()
}
