package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypePuzzleGenerated is emitted after a puzzle's lookup table is stored.
	EventTypePuzzleGenerated = "pixelo.puzzle.generated"
)

// PuzzleGeneratedEvent is a transport-neutral event payload for a stored puzzle.
type PuzzleGeneratedEvent struct {
	SchemaVersion int          `json:"schema_version"`
	EventType     string       `json:"event_type"`
	EventID       string       `json:"event_id"`
	EmittedAt     time.Time    `json:"emitted_at"`
	Puzzle        PuzzleMeta   `json:"puzzle"`
	Generation    GenerateMeta `json:"generation"`
}

// PuzzleMeta describes the stored puzzle. The full table is not carried.
type PuzzleMeta struct {
	ID          string `json:"id"`
	Target      string `json:"target"`
	TargetIndex int    `json:"target_index"`
	Words       int    `json:"words"`
}

// GenerateMeta captures how the table was produced.
type GenerateMeta struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMs  int64     `json:"duration_ms"`
	Storage     string    `json:"storage,omitempty"`
}

// NewPuzzleGeneratedEvent stamps a new event with a random ID and the
// current time.
func NewPuzzleGeneratedEvent(puzzle PuzzleMeta, started, completed time.Time) *PuzzleGeneratedEvent {
	return &PuzzleGeneratedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypePuzzleGenerated,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Puzzle:        puzzle,
		Generation: GenerateMeta{
			StartedAt:   started,
			CompletedAt: completed,
			DurationMs:  completed.Sub(started).Milliseconds(),
		},
	}
}
