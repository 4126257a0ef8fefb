package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Table maps every corpus word to its rank for one target. Rank 0 is the
// target itself. A Table is immutable.
type Table struct {
	order []string
	ranks map[string]int
}

// Entry is one row of a table.
type Entry struct {
	Word string `json:"word"`
	Rank int    `json:"rank"`
}

// Guess is the answer to a guess lookup: whether the word is in the corpus,
// its rank, and whether it is the target.
type Guess struct {
	Found     bool `json:"found"`
	Rank      *int `json:"rank"`
	IsCorrect bool `json:"isCorrect"`
}

// NewTable builds a table from words ordered by rank.
func NewTable(order []string) (*Table, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrInvalidTable)
	}

	t := &Table{
		order: append([]string(nil), order...),
		ranks: make(map[string]int, len(order)),
	}
	for rank, w := range t.order {
		if _, dup := t.ranks[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInvalidTable, w)
		}
		t.ranks[w] = rank
	}
	return t, nil
}

// FromRanks builds a table from a word→rank mapping. The ranks must be a
// permutation of [0, len(ranks)-1].
func FromRanks(ranks map[string]int) (*Table, error) {
	if len(ranks) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrInvalidTable)
	}

	order := make([]string, len(ranks))
	seen := make([]bool, len(ranks))
	for w, r := range ranks {
		if r < 0 || r >= len(ranks) {
			return nil, fmt.Errorf("%w: rank %d of %q out of range", ErrInvalidTable, r, w)
		}
		if seen[r] {
			return nil, fmt.Errorf("%w: rank %d assigned twice", ErrInvalidTable, r)
		}
		seen[r] = true
		order[r] = w
	}

	return NewTable(order)
}

// Len returns the number of ranked words.
func (t *Table) Len() int {
	return len(t.order)
}

// Target returns the rank-0 word.
func (t *Table) Target() string {
	if len(t.order) == 0 {
		return ""
	}
	return t.order[0]
}

// Rank returns the rank of word.
func (t *Table) Rank(word string) (int, bool) {
	r, ok := t.ranks[word]
	return r, ok
}

// Lookup answers a guess.
func (t *Table) Lookup(word string) Guess {
	r, ok := t.ranks[word]
	if !ok {
		return Guess{}
	}
	return Guess{Found: true, Rank: &r, IsCorrect: r == 0}
}

// Words returns all words ordered by rank.
func (t *Table) Words() []string {
	return append([]string(nil), t.order...)
}

// Top returns the first n entries, or all of them when n exceeds Len.
func (t *Table) Top(n int) []Entry {
	n = max(0, min(n, len(t.order)))
	out := make([]Entry, n)
	for i := range n {
		out[i] = Entry{Word: t.order[i], Rank: i}
	}
	return out
}

// MarshalJSON writes a flat {"word": rank} object in rank order. Identical
// tables always produce identical bytes.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for rank, w := range t.order {
		if rank > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(w)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rank))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the format written by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var ranks map[string]int
	if err := json.Unmarshal(data, &ranks); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	parsed, err := FromRanks(ranks)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
