// Package eventstream announces generated puzzles to downstream consumers.
package eventstream

import "context"

// Publisher publishes puzzle events to an event stream backend.
type Publisher interface {
	PublishPuzzle(ctx context.Context, event *PuzzleGeneratedEvent) error
	Close() error
}
