// Package ranking orders every corpus word by cosine similarity to a target
// word and produces the word→rank table a puzzle is played against.
package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/corpus"
)

// Engine ranks targets against one corpus. The column-normalized embedding
// matrix is computed once at construction; an Engine is immutable and safe
// for concurrent use.
type Engine struct {
	words []string

	// unit holds every embedding scaled to unit length. Zero columns stay zero.
	unit *mat.Dense
}

// NewEngine prepares an engine over c.
func NewEngine(c *corpus.Corpus) (*Engine, error) {
	return newEngine(c.Embeddings, c.Words)
}

// Rank computes the table for words[target] in one shot, without keeping the
// normalized matrix around.
func Rank(target int, embeddings mat.Matrix, words []string) (*Table, error) {
	e, err := newEngine(embeddings, words)
	if err != nil {
		return nil, err
	}
	return e.Rank(target)
}

func newEngine(embeddings mat.Matrix, words []string) (*Engine, error) {
	if embeddings == nil {
		return nil, fmt.Errorf("%w: nil embedding matrix", ErrDimensionMismatch)
	}

	dims, cols := embeddings.Dims()
	if cols != len(words) {
		return nil, fmt.Errorf("%w: %d columns for %d words", ErrDimensionMismatch, cols, len(words))
	}

	e := &Engine{words: words}
	if cols == 0 {
		return e, nil
	}
	if dims == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional embeddings", ErrDimensionMismatch)
	}

	e.unit = mat.NewDense(dims, cols, nil)
	col := make([]float64, dims)
	for j := range cols {
		mat.Col(col, j, embeddings)

		norm := floats.Norm(col, 2)
		if norm == 0 {
			norm = 1
		}
		floats.Scale(1/norm, col)

		e.unit.SetCol(j, col)
	}

	return e, nil
}

// Len returns the number of ranked words.
func (e *Engine) Len() int {
	return len(e.words)
}

// Scores returns the cosine similarity of every corpus word to words[target],
// indexed like the corpus. Words with a zero embedding score 0.
func (e *Engine) Scores(target int) ([]float64, error) {
	if target < 0 || target >= len(e.words) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, target, len(e.words))
	}

	var sims mat.VecDense
	sims.MulVec(e.unit.T(), e.unit.ColView(target))

	scores := make([]float64, len(e.words))
	for i := range scores {
		scores[i] = sims.AtVec(i)
	}
	return scores, nil
}

// Rank orders all words by descending similarity to words[target].
//
// The target always takes rank 0, even when its embedding is the zero vector
// and every score is 0. The remaining words are sorted stably, so equal
// scores keep corpus order.
func (e *Engine) Rank(target int) (*Table, error) {
	scores, err := e.Scores(target)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case a == b:
			return 0
		case a == target:
			return -1
		case b == target:
			return 1
		}
		return cmp.Compare(scores[b], scores[a])
	})

	ranked := make([]string, len(order))
	for rank, idx := range order {
		ranked[rank] = e.words[idx]
	}

	return NewTable(ranked)
}
