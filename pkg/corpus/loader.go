package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/logger"
)

const (
	// DefaultWordListPath is the word list written by the corpus builder.
	DefaultWordListPath = "word_list.txt"

	// DefaultEmbeddingsPath is the embedding matrix written by the corpus builder.
	DefaultEmbeddingsPath = "embed_store.npy"
)

// Source names the two persisted files a corpus is loaded from.
type Source struct {
	WordListPath   string
	EmbeddingsPath string
}

// IsZero reports whether neither path is set.
func (s Source) IsZero() bool {
	return s.WordListPath == "" && s.EmbeddingsPath == ""
}

// Loader reads a Corpus from disk.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(l *slog.Logger) *Loader {
	if l == nil {
		l = logger.Nop()
	}
	return &Loader{logger: l}
}

// Load reads the word list and embedding matrix named by src and aligns them.
// A length disagreement is not fatal: both sides are truncated and a warning
// is logged.
func (l *Loader) Load(ctx context.Context, src Source) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words, err := readWordListFile(src.WordListPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings, err := readMatrixFile(src.EmbeddingsPath)
	if err != nil {
		return nil, err
	}

	c, err := New(words, embeddings)
	if err != nil {
		return nil, err
	}

	if t := c.Truncation; t != nil {
		l.logger.Warn("word list and embedding columns disagree, truncating to common prefix",
			"words", t.Words,
			"columns", t.Columns,
			"kept", t.Kept,
		)
	}

	l.logger.Debug("corpus loaded",
		"word_list", src.WordListPath,
		"embeddings", src.EmbeddingsPath,
		"words", c.Len(),
		"dims", c.Dims(),
	)

	return c, nil
}

// LoadWithFallback loads primary and, when it is unavailable, fallback.
// Errors other than ErrDataUnavailable are returned as is.
func (l *Loader) LoadWithFallback(ctx context.Context, primary, fallback Source) (*Corpus, error) {
	c, err := l.Load(ctx, primary)
	if err == nil || fallback.IsZero() || !errors.Is(err, ErrDataUnavailable) {
		return c, err
	}

	l.logger.Warn("primary corpus unavailable, using fallback",
		"error", err,
		"word_list", fallback.WordListPath,
		"embeddings", fallback.EmbeddingsPath,
	)

	c, fbErr := l.Load(ctx, fallback)
	if fbErr != nil {
		return nil, errors.Join(err, fmt.Errorf("fallback: %w", fbErr))
	}
	return c, nil
}

func readWordListFile(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: word list path is required", ErrDataUnavailable)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening word list: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

func readMatrixFile(path string) (*mat.Dense, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: embeddings path is required", ErrDataUnavailable)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening embeddings: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
