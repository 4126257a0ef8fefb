// Package drawable restricts puzzle targets to concrete nouns that can be
// illustrated. It narrows target selection only; every corpus word is still
// ranked.
package drawable

import (
	_ "embed"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/papercomputeco/pixelo/pkg/corpus"
)

//go:embed nouns.txt
var nouns string

// DefaultNouns returns the built-in allow-list, one entry per line of
// nouns.txt.
func DefaultNouns() []string {
	words, _ := corpus.ReadWordList(strings.NewReader(nouns))
	return words
}

// ReadList reads an allow-list in the word list format.
func ReadList(r io.Reader) ([]string, error) {
	return corpus.ReadWordList(r)
}

// Resolve maps allow-listed words onto corpus indices. Each word is tried as
// is, then with a trailing "s", then without one. Words that match none of
// those are dropped. The result is sorted and free of duplicates.
func Resolve(c *corpus.Corpus, allow []string) []int {
	var out []int
	for _, w := range allow {
		if i, ok := lookup(c, w); ok {
			out = append(out, i)
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}

func lookup(c *corpus.Corpus, w string) (int, bool) {
	if i, ok := c.Index(w); ok {
		return i, true
	}
	if i, ok := c.Index(w + "s"); ok {
		return i, true
	}
	if stem, ok := strings.CutSuffix(w, "s"); ok && stem != "" {
		return c.Index(stem)
	}
	return 0, false
}

// Words returns the resolved corpus words in lexical order.
func Words(c *corpus.Corpus, allow []string) []string {
	idx := Resolve(c, allow)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = c.Words[j]
	}
	slices.Sort(out)
	return out
}

// Eligible returns the target indices for c. When nothing in allow resolves,
// every corpus index is eligible, a warning is logged and restricted is false.
func Eligible(c *corpus.Corpus, allow []string, logger *slog.Logger) (indices []int, restricted bool) {
	indices = Resolve(c, allow)
	if len(indices) > 0 {
		return indices, true
	}

	if logger != nil {
		logger.Warn("no drawable words found in corpus, using the full word list",
			"allow_list", len(allow),
			"corpus", c.Len(),
		)
	}

	indices = make([]int, c.Len())
	for i := range indices {
		indices[i] = i
	}
	return indices, false
}
