// Package game scores guesses against a puzzle's rank table.
package game

import (
	"errors"
	"strings"

	"github.com/papercomputeco/pixelo/pkg/ranking"
)

var (
	// ErrSolved is returned for guesses made after the target was found.
	ErrSolved = errors.New("puzzle already solved")

	// ErrEmptyGuess is returned for blank input.
	ErrEmptyGuess = errors.New("empty guess")
)

// Status classifies a guess.
type Status int

const (
	// StatusRanked is a scored guess that is not the target.
	StatusRanked Status = iota

	// StatusCorrect is the target word. The session is solved.
	StatusCorrect

	// StatusDuplicate is a word guessed before. It is not scored.
	StatusDuplicate

	// StatusNotFound is a word outside the corpus. It is not scored.
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusRanked:
		return "ranked"
	case StatusCorrect:
		return "correct"
	case StatusDuplicate:
		return "duplicate"
	case StatusNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Attempt is one scored guess.
type Attempt struct {
	Word string
	Rank int
}

// Result is the outcome of a single guess.
type Result struct {
	Status  Status
	Attempt Attempt

	// Score is the number of scored guesses so far.
	Score int
}

// Session tracks one player's guesses for a puzzle. It is not safe for
// concurrent use.
type Session struct {
	table   *ranking.Table
	seen    map[string]struct{}
	history []Attempt
	solved  bool
}

// NewSession starts a session against table.
func NewSession(table *ranking.Table) *Session {
	return &Session{
		table: table,
		seen:  make(map[string]struct{}),
	}
}

// Guess scores word. Input is trimmed; lookup is case-sensitive.
func (s *Session) Guess(word string) (Result, error) {
	if s.solved {
		return Result{}, ErrSolved
	}

	w := strings.TrimSpace(word)
	if w == "" {
		return Result{}, ErrEmptyGuess
	}

	if _, dup := s.seen[w]; dup {
		res := Result{Status: StatusDuplicate, Attempt: Attempt{Word: w, Rank: -1}, Score: s.Score()}
		if r, ok := s.table.Rank(w); ok {
			res.Attempt.Rank = r
		}
		return res, nil
	}
	s.seen[w] = struct{}{}

	g := s.table.Lookup(w)
	if !g.Found {
		return Result{Status: StatusNotFound, Attempt: Attempt{Word: w, Rank: -1}, Score: s.Score()}, nil
	}

	a := Attempt{Word: w, Rank: *g.Rank}
	s.history = append(s.history, a)

	status := StatusRanked
	if g.IsCorrect {
		status = StatusCorrect
		s.solved = true
	}
	return Result{Status: status, Attempt: a, Score: s.Score()}, nil
}

// Score returns the number of scored guesses.
func (s *Session) Score() int {
	return len(s.history)
}

// Solved reports whether the target was guessed.
func (s *Session) Solved() bool {
	return s.solved
}

// History returns scored guesses in the order they were made.
func (s *Session) History() []Attempt {
	return append([]Attempt(nil), s.history...)
}

// Best returns the closest guess so far.
func (s *Session) Best() (Attempt, bool) {
	if len(s.history) == 0 {
		return Attempt{}, false
	}
	best := s.history[0]
	for _, a := range s.history[1:] {
		if a.Rank < best.Rank {
			best = a
		}
	}
	return best, true
}

// Target returns the answer. Callers decide when to reveal it.
func (s *Session) Target() string {
	return s.table.Target()
}
