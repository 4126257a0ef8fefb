// Package puzzle plans daily puzzles and generates their lookup tables.
package puzzle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// DateLayout formats puzzle IDs.
	DateLayout = "2006-01-02"

	// FallbackID is the puzzle served when no puzzle exists for the day.
	FallbackID = "1"
)

// ErrNotEnoughTargets is returned when more puzzles are requested than
// there are distinct eligible targets.
var ErrNotEnoughTargets = errors.New("not enough eligible targets")

// Plan assigns a target word to a puzzle ID.
type Plan struct {
	ID     string `json:"id"`
	Target int    `json:"target"`
	Word   string `json:"word"`
}

// ID returns the puzzle ID for the calendar day of t.
func ID(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseID parses a dated puzzle ID.
func ParseID(id string) (time.Time, error) {
	return time.Parse(DateLayout, id)
}

// Schedule returns the IDs of days consecutive days starting offset days
// after start.
func Schedule(start time.Time, offset, days int) []string {
	ids := make([]string, 0, max(days, 0))
	for i := range days {
		ids = append(ids, ID(start.AddDate(0, 0, offset+i)))
	}
	return ids
}

// Picker draws distinct targets.
type Picker struct {
	rng *rand.Rand
}

// NewPicker returns a picker that reproduces the same draws for the same
// seed.
func NewPicker(seed uint64) *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick samples n distinct entries of eligible without replacement, in draw
// order.
func (p *Picker) Pick(eligible []int, n int) ([]int, error) {
	if n > len(eligible) {
		return nil, fmt.Errorf("%w: %d requested, %d eligible", ErrNotEnoughTargets, n, len(eligible))
	}

	pool := append([]int(nil), eligible...)
	for i := range n {
		j := i + p.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}

// NewPlans pairs ids with targets. words resolves a target index to its
// word.
func NewPlans(ids []string, targets []int, words []string) ([]Plan, error) {
	if len(ids) != len(targets) {
		return nil, fmt.Errorf("%d puzzle ids for %d targets", len(ids), len(targets))
	}

	plans := make([]Plan, len(ids))
	for i, id := range ids {
		t := targets[i]
		if t < 0 || t >= len(words) {
			return nil, fmt.Errorf("target %d out of range for %d words", t, len(words))
		}
		plans[i] = Plan{ID: id, Target: t, Word: words[t]}
	}
	return plans, nil
}
