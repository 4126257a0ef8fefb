package puzzle_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/pixelo/pkg/eventstream"
	"github.com/papercomputeco/pixelo/pkg/puzzle"
	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage/inmemory"
	testutils "github.com/papercomputeco/pixelo/pkg/utils/test"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*eventstream.PuzzleGeneratedEvent
	err    error
}

func (r *recordingPublisher) PublishPuzzle(_ context.Context, e *eventstream.PuzzleGeneratedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

var _ = Describe("Generator", func() {
	var (
		ctx       context.Context
		engine    *ranking.Engine
		driver    *inmemory.Driver
		publisher *recordingPublisher
		words     []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		c := testutils.AnimalCorpus()
		words = c.Words

		var err error
		engine, err = ranking.NewEngine(c)
		Expect(err).NotTo(HaveOccurred())

		driver = inmemory.NewDriver()
		publisher = &recordingPublisher{}
	})

	newGenerator := func() *puzzle.Generator {
		g, err := puzzle.NewGenerator(&puzzle.Config{
			Engine:     engine,
			Driver:     driver,
			Publisher:  publisher,
			NumWorkers: 2,
		})
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	It("stores a table per plan and announces it", func() {
		plans, err := puzzle.NewPlans([]string{"2025-01-01", "2025-01-02", "2025-01-03"}, []int{0, 1, 2}, words)
		Expect(err).NotTo(HaveOccurred())

		report, err := newGenerator().Run(ctx, plans)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Generated).To(Equal([]string{"2025-01-01", "2025-01-02", "2025-01-03"}))
		Expect(report.Failed).To(BeEmpty())

		table, err := driver.Get(ctx, "2025-01-03")
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Target()).To(Equal("car"))

		Expect(publisher.events).To(HaveLen(3))
	})

	It("reports failed plans without stopping the rest", func() {
		plans := []puzzle.Plan{
			{ID: "ok", Target: 0, Word: "cat"},
			{ID: "bad", Target: 9, Word: "ghost"},
		}

		report, err := newGenerator().Run(ctx, plans)
		Expect(err).To(MatchError(ranking.ErrInvalidIndex))
		Expect(err).To(MatchError(ContainSubstring("puzzle bad")))
		Expect(report.Generated).To(Equal([]string{"ok"}))
		Expect(report.Failed).To(Equal([]string{"bad"}))
	})

	It("keeps the puzzle when publishing fails", func() {
		publisher.err = errors.New("broker down")
		plans := []puzzle.Plan{{ID: "1", Target: 1, Word: "dog"}}

		report, err := newGenerator().Run(ctx, plans)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Generated).To(Equal([]string{"1"}))
	})

	It("stops picking up plans once cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		plans := []puzzle.Plan{{ID: "1", Target: 0, Word: "cat"}}
		report, err := newGenerator().Run(cctx, plans)
		Expect(err).To(MatchError(context.Canceled))
		Expect(report.Generated).To(BeEmpty())
	})

	It("calls progress for every plan", func() {
		var calls []int
		g, err := puzzle.NewGenerator(&puzzle.Config{
			Engine:     engine,
			Driver:     driver,
			NumWorkers: 1,
			Progress:   func(done, _ int) { calls = append(calls, done) },
		})
		Expect(err).NotTo(HaveOccurred())

		plans, err := puzzle.NewPlans([]string{"a", "b"}, []int{0, 2}, words)
		Expect(err).NotTo(HaveOccurred())
		_, err = g.Run(ctx, plans)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal([]int{1, 2}))
	})

	It("requires an engine and a driver", func() {
		_, err := puzzle.NewGenerator(&puzzle.Config{Driver: driver})
		Expect(err).To(HaveOccurred())

		_, err = puzzle.NewGenerator(&puzzle.Config{Engine: engine})
		Expect(err).To(HaveOccurred())
	})
})
