// Package generatecmder provides the generate command, which plans and
// ranks the upcoming days of puzzles.
package generatecmder

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/drawable"
	"github.com/papercomputeco/pixelo/pkg/puzzle"
	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

const generateLongDesc string = `Generate the lookup tables for the next days of puzzles.

Picks one distinct drawable target word per day, ranks the whole corpus
against each target with a pool of workers, stores every table under its
date (YYYY-MM-DD) and publishes a puzzle event per stored table.

Days that already have a puzzle are skipped unless --overwrite is given.
Unless --fallback=false, the fallback puzzle "1" played on days without a
puzzle is generated too when it is missing.

Examples:
  pixelo generate
  pixelo generate --days 7 --start-offset 1
  pixelo generate --seed 42 --workers 8 --storage bolt --storage-target pixelo.bolt`

const generateShortDesc string = "Generate upcoming daily puzzles"

var generateFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagDrawable,
	config.FlagStorageProvider,
	config.FlagStorageTarget,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagDays,
	config.FlagWorkers,
	config.FlagSeed,
}

type generateCommander struct {
	wordList        string
	embeddings      string
	drawable        string
	storageProvider string
	storageTarget   string
	eventsProvider  string
	brokers         string
	topic           string
	days            uint
	workers         uint
	seed            uint64

	startOffset int
	overwrite   bool
	fallback    bool

	now func() time.Time
}

func NewGenerateCmd() *cobra.Command {
	return newGenerateCmd(time.Now)
}

func newGenerateCmd(now func() time.Time) *cobra.Command {
	cmder := &generateCommander{now: now}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: generateShortDesc,
		Long:  generateLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, generateFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &cmder.wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &cmder.embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagDrawable, &cmder.drawable)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageTarget, &cmder.storageTarget)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.brokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.topic)
	config.AddUintFlag(cmd, config.Flags, config.FlagDays, &cmder.days)
	config.AddUintFlag(cmd, config.Flags, config.FlagWorkers, &cmder.workers)
	config.AddUint64Flag(cmd, config.Flags, config.FlagSeed, &cmder.seed)

	cmd.Flags().IntVar(&cmder.startOffset, "start-offset", 0, "Start generating from today + offset days")
	cmd.Flags().BoolVar(&cmder.overwrite, "overwrite", false, "Regenerate days that already have a puzzle")
	cmd.Flags().BoolVar(&cmder.fallback, "fallback", true, `Also generate the fallback puzzle "1" when missing`)

	return cmd
}

func (c *generateCommander) run(ctx context.Context, stdout, stderr io.Writer, env *cmdenv.Env) error {
	cfg := env.Config

	var crp *corpus.Corpus
	if err := cliui.Step(stderr, "Loading corpus", func() error {
		var err error
		crp, err = env.LoadCorpus(ctx)
		return err
	}); err != nil {
		return err
	}

	allow, err := env.AllowList()
	if err != nil {
		return err
	}
	eligible, restricted := drawable.Eligible(crp, allow, env.Logger)
	env.Logger.Info("targets resolved", "eligible", len(eligible), "restricted", restricted)

	driver, err := env.Storage(ctx)
	if err != nil {
		return err
	}
	defer driver.Close()

	ids, err := c.pendingIDs(ctx, env, driver, int(cfg.Generate.Days))
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintf(stdout, "Nothing to generate.\n")
		return nil
	}

	seed := cfg.Generate.Seed
	if seed == 0 {
		seed = rand.Uint64() >> 1
	}
	env.Logger.Info("picking targets", "puzzles", len(ids), "seed", seed)

	targets, err := puzzle.NewPicker(seed).Pick(eligible, len(ids))
	if err != nil {
		return err
	}
	plans, err := puzzle.NewPlans(ids, targets, crp.Words)
	if err != nil {
		return err
	}

	engine, err := ranking.NewEngine(crp)
	if err != nil {
		return err
	}

	publisher, err := env.Publisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	var report puzzle.Report
	runErr := cliui.StepProgress(stderr, fmt.Sprintf("Generating %d puzzles", len(plans)), func(progress func(done, total int)) error {
		gen, err := puzzle.NewGenerator(&puzzle.Config{
			Engine:     engine,
			Driver:     driver,
			Publisher:  publisher,
			NumWorkers: cfg.Generate.Workers,
			Progress:   progress,
			Logger:     env.Logger,
		})
		if err != nil {
			return err
		}
		report, err = gen.Run(ctx, plans)
		return err
	})

	printReport(stdout, plans, report)
	return runErr
}

// pendingIDs schedules days puzzles and drops the ones already stored.
func (c *generateCommander) pendingIDs(ctx context.Context, env *cmdenv.Env, driver storage.Driver, days int) ([]string, error) {
	ids := puzzle.Schedule(c.now(), c.startOffset, days)
	if c.fallback {
		ids = append(ids, puzzle.FallbackID)
	}

	pending := ids[:0]
	for _, id := range ids {
		exists, err := driver.Has(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("checking puzzle %s: %w", id, err)
		}

		switch {
		case !exists:
			pending = append(pending, id)
		case c.overwrite && id != puzzle.FallbackID:
			pending = append(pending, id)
		default:
			env.Logger.Debug("skipping existing puzzle", "puzzle_id", id)
		}
	}
	return pending, nil
}

func printReport(w io.Writer, plans []puzzle.Plan, report puzzle.Report) {
	generated := make(map[string]bool, len(report.Generated))
	for _, id := range report.Generated {
		generated[id] = true
	}

	fmt.Fprintln(w)
	for _, p := range plans {
		mark := cliui.FailMark
		if generated[p.ID] {
			mark = cliui.SuccessMark
		}
		fmt.Fprintf(w, "  %s %s  %s\n", mark, cliui.KeyStyle.Render(fmt.Sprintf("%-10s", p.ID)), p.Word)
	}
	fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render(fmt.Sprintf("%d generated, %d failed in %s",
		len(report.Generated), len(report.Failed), cliui.FormatDuration(report.Duration))))
}
