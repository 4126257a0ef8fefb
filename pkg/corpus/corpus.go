// Package corpus loads the word list and embedding matrix that every ranking
// is computed over, keeping both sides index-aligned.
package corpus

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Corpus is an ordered word list and its D×N embedding matrix. Column i of
// Embeddings is the embedding of Words[i]. A Corpus is read-only once built.
type Corpus struct {
	// Words is the canonical ordering shared with the embedding columns.
	Words []string

	// Embeddings is a D×N dense matrix, one column per word.
	Embeddings *mat.Dense

	// Truncation is non-nil when the sources disagreed in length and were
	// cut down to a common prefix.
	Truncation *Truncation

	index map[string]int
}

// Truncation records how the sources were aligned.
type Truncation struct {
	Words   int
	Columns int
	Kept    int
}

// New aligns words with the columns of embeddings. When the lengths differ
// both are truncated to the shorter one by keeping the prefix, so index i
// still pairs Words[i] with column i.
func New(words []string, embeddings *mat.Dense) (*Corpus, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrDataUnavailable)
	}
	if embeddings == nil || embeddings.IsEmpty() {
		return nil, fmt.Errorf("%w: empty embedding matrix", ErrDataUnavailable)
	}

	dims, cols := embeddings.Dims()
	c := &Corpus{
		Words:      words,
		Embeddings: embeddings,
	}

	if len(words) != cols {
		kept := min(len(words), cols)
		c.Truncation = &Truncation{
			Words:   len(words),
			Columns: cols,
			Kept:    kept,
		}
		c.Words = append([]string(nil), words[:kept]...)
		c.Embeddings = mat.DenseCopyOf(embeddings.Slice(0, dims, 0, kept))
	}

	c.index = make(map[string]int, len(c.Words))
	for i, w := range c.Words {
		if _, dup := c.index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q at line %d", ErrDataUnavailable, w, i+1)
		}
		c.index[w] = i
	}

	return c, nil
}

// Len returns the number of words N.
func (c *Corpus) Len() int {
	return len(c.Words)
}

// Dims returns the embedding dimensionality D.
func (c *Corpus) Dims() int {
	d, _ := c.Embeddings.Dims()
	return d
}

// Index returns the corpus index of word.
func (c *Corpus) Index(word string) (int, bool) {
	i, ok := c.index[word]
	return i, ok
}

// Vector returns a copy of the embedding of the i-th word.
func (c *Corpus) Vector(i int) []float64 {
	return mat.Col(nil, i, c.Embeddings)
}

// Vector32 returns the embedding of the i-th word as float32, the format
// vector stores expect.
func (c *Corpus) Vector32(i int) []float32 {
	col := c.Vector(i)
	out := make([]float32, len(col))
	for j, v := range col {
		out[j] = float32(v)
	}
	return out
}
