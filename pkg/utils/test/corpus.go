package testutils

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/papercomputeco/pixelo/pkg/corpus"
)

// Columns builds a D×N matrix from one slice per column.
func Columns(cols ...[]float64) *mat.Dense {
	m := mat.NewDense(len(cols[0]), len(cols), nil)
	for j, c := range cols {
		m.SetCol(j, c)
	}
	return m
}

// AnimalCorpus is a small corpus with an obvious similarity structure:
// cat and dog point the same way, car is orthogonal to both.
func AnimalCorpus() *corpus.Corpus {
	c, err := corpus.New(
		[]string{"cat", "dog", "car"},
		Columns(
			[]float64{1, 0},
			[]float64{0.9, 0.1},
			[]float64{0, 1},
		),
	)
	if err != nil {
		panic(err)
	}
	return c
}

// WriteCorpus saves words and embeddings under dir using the default file
// names and returns the resulting source.
func WriteCorpus(dir string, words []string, embeddings *mat.Dense) (corpus.Source, error) {
	src := corpus.Source{
		WordListPath:   filepath.Join(dir, corpus.DefaultWordListPath),
		EmbeddingsPath: filepath.Join(dir, corpus.DefaultEmbeddingsPath),
	}

	wf, err := os.Create(src.WordListPath)
	if err != nil {
		return src, err
	}
	defer wf.Close()
	if err := corpus.WriteWordList(wf, words); err != nil {
		return src, err
	}

	ef, err := os.Create(src.EmbeddingsPath)
	if err != nil {
		return src, err
	}
	defer ef.Close()
	return src, corpus.WriteMatrix(ef, embeddings)
}
