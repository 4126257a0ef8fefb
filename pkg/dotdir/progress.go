package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	progressFile = "progress.json"
)

// Progress is the persisted state of the puzzle being played, so a player
// can quit and resume the same day's game.
type Progress struct {
	// PuzzleID is the ID of the puzzle the guesses belong to.
	PuzzleID string `json:"puzzle_id"`

	// Guesses are the raw guesses in the order they were made.
	Guesses []string `json:"guesses"`

	// Solved is set once the target was guessed.
	Solved bool `json:"solved"`

	UpdatedAt time.Time `json:"updated_at"`
}

// LoadProgress loads the saved progress from a target .pixelo/progress.json.
// Returns nil, nil if nothing is saved or the saved progress belongs to a
// different puzzle.
func (m *Manager) LoadProgress(puzzleID, overrideDir string) (*Progress, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, progressFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading progress: %w", err)
	}

	p := &Progress{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing progress: %w", err)
	}

	if p.PuzzleID != puzzleID {
		return nil, nil
	}

	return p, nil
}

// SaveProgress persists p to a target .pixelo/progress.json, replacing any
// progress of a previous puzzle.
func (m *Manager) SaveProgress(p *Progress, overrideDir string) error {
	if p == nil {
		return errors.New("cannot save nil progress")
	}
	if p.PuzzleID == "" {
		return errors.New("cannot save progress without a puzzle id")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, progressFile), data, 0o600); err != nil {
		return fmt.Errorf("writing progress: %w", err)
	}

	return nil
}

// ClearProgress removes the progress file. Returns nil if it doesn't exist.
func (m *Manager) ClearProgress(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(dir, progressFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing progress: %w", err)
	}

	return nil
}
