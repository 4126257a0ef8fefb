package puzzle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/papercomputeco/pixelo/pkg/eventstream"
	"github.com/papercomputeco/pixelo/pkg/eventstream/nop"
	"github.com/papercomputeco/pixelo/pkg/logger"
	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

var defaultNumWorkers uint = 3

// Config is the configuration for a Generator.
type Config struct {
	// Engine ranks targets. It is shared by all workers.
	Engine *ranking.Engine

	// Driver persists generated tables.
	Driver storage.Driver

	// Publisher announces stored puzzles. Nil disables events.
	Publisher eventstream.Publisher

	// NumWorkers is the number of parallel workers (defaults to 3).
	NumWorkers uint

	// Progress, when set, is called after each finished plan.
	Progress func(done, total int)

	Logger *slog.Logger
}

// Report summarizes a generation run.
type Report struct {
	Generated []string
	Failed    []string
	Duration  time.Duration
}

// Generator ranks, stores and announces a batch of puzzles with a pool of
// workers.
type Generator struct {
	config *Config
	logger *slog.Logger
}

// NewGenerator validates c and applies defaults.
func NewGenerator(c *Config) (*Generator, error) {
	if c.Engine == nil {
		return nil, errors.New("generator requires a ranking engine")
	}
	if c.Driver == nil {
		return nil, errors.New("generator requires a storage driver")
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}
	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}
	if c.Publisher == nil {
		c.Publisher = nop.NewPublisher()
	}

	l := c.Logger
	if l == nil {
		l = logger.Nop()
	}

	return &Generator{config: c, logger: l}, nil
}

type result struct {
	id  string
	err error
}

// Run generates every plan. Plans that fail do not stop the others; their
// errors are joined into the returned error. Cancelling ctx stops workers
// from picking up new plans.
func (g *Generator) Run(ctx context.Context, plans []Plan) (Report, error) {
	start := time.Now()

	queue := make(chan Plan, len(plans))
	for _, p := range plans {
		queue <- p
	}
	close(queue)

	results := make(chan result, len(plans))

	var wg sync.WaitGroup
	for i := range g.config.NumWorkers {
		wg.Go(func() {
			g.worker(ctx, i, queue, results)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		report Report
		errs   []error
		done   int
	)
	for r := range results {
		done++
		if r.err != nil {
			report.Failed = append(report.Failed, r.id)
			errs = append(errs, fmt.Errorf("puzzle %s: %w", r.id, r.err))
		} else {
			report.Generated = append(report.Generated, r.id)
		}
		if g.config.Progress != nil {
			g.config.Progress(done, len(plans))
		}
	}

	slices.Sort(report.Generated)
	slices.Sort(report.Failed)
	report.Duration = time.Since(start)

	if err := ctx.Err(); err != nil && done < len(plans) {
		errs = append(errs, fmt.Errorf("generation interrupted after %d of %d puzzles: %w", done, len(plans), err))
	}

	g.logger.Info("generation finished",
		"generated", len(report.Generated),
		"failed", len(report.Failed),
		"duration", report.Duration,
	)

	return report, errors.Join(errs...)
}

// worker pulls plans off the queue until it is drained or ctx is done.
func (g *Generator) worker(ctx context.Context, id uint, queue <-chan Plan, results chan<- result) {
	g.logger.Debug("worker started", "worker_id", id)

	for p := range queue {
		if ctx.Err() != nil {
			break
		}
		results <- result{id: p.ID, err: g.generate(ctx, p)}
	}

	g.logger.Debug("worker stopped", "worker_id", id)
}

func (g *Generator) generate(ctx context.Context, p Plan) error {
	started := time.Now()

	table, err := g.config.Engine.Rank(p.Target)
	if err != nil {
		return err
	}
	if table.Target() != p.Word {
		return fmt.Errorf("plan word %q does not match target %q", p.Word, table.Target())
	}

	if err := g.config.Driver.Put(ctx, p.ID, table); err != nil {
		return fmt.Errorf("storing table: %w", err)
	}

	completed := time.Now()
	g.logger.Info("puzzle generated",
		"puzzle_id", p.ID,
		"target", p.Word,
		"words", table.Len(),
		"duration", completed.Sub(started),
	)

	event := eventstream.NewPuzzleGeneratedEvent(eventstream.PuzzleMeta{
		ID:          p.ID,
		Target:      p.Word,
		TargetIndex: p.Target,
		Words:       table.Len(),
	}, started, completed)

	if err := g.config.Publisher.PublishPuzzle(ctx, event); err != nil {
		// The table is stored; a lost event is not a failed puzzle.
		g.logger.Warn("failed to publish puzzle event",
			"puzzle_id", p.ID,
			"error", err,
		)
	}
	return nil
}
