// Package rankcmder provides the rank command, which ranks every corpus word
// against a single target word.
package rankcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/puzzle"
	"github.com/papercomputeco/pixelo/pkg/ranking"
)

const rankLongDesc string = `Rank every corpus word against a target word.

Writes the lookup table, a JSON object mapping each word to its rank, where
rank 0 is the target itself. The table goes to stdout unless --output or
--store is given.

Examples:
  pixelo rank cat
  pixelo rank cat --output lookup.json
  pixelo rank cat --store --id 2026-10-17
  pixelo rank cat --top 20`

const rankShortDesc string = "Rank the corpus against a target word"

var rankFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagStorageProvider,
	config.FlagStorageTarget,
}

type rankCommander struct {
	wordList        string
	embeddings      string
	storageProvider string
	storageTarget   string

	output string
	store  bool
	id     string
	top    int
}

func NewRankCmd() *cobra.Command {
	cmder := &rankCommander{}

	cmd := &cobra.Command{
		Use:   "rank <word>",
		Short: rankShortDesc,
		Long:  rankLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdenv.Load(cmd, rankFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd, env, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &cmder.wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &cmder.embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageTarget, &cmder.storageTarget)

	cmd.Flags().StringVarP(&cmder.output, "output", "o", "", "Write the lookup JSON to this file")
	cmd.Flags().BoolVar(&cmder.store, "store", false, "Store the table in the configured storage")
	cmd.Flags().StringVar(&cmder.id, "id", "", "Puzzle ID used with --store (default: today's date)")
	cmd.Flags().IntVarP(&cmder.top, "top", "t", 0, "Print the N closest words")

	return cmd
}

func (c *rankCommander) run(cmd *cobra.Command, env *cmdenv.Env, word string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var crp *corpus.Corpus
	if err := cliui.Step(stderr, "Loading corpus", func() error {
		var err error
		crp, err = env.LoadCorpus(ctx)
		return err
	}); err != nil {
		return err
	}

	word = strings.TrimSpace(word)
	target, ok := crp.Index(word)
	if !ok {
		return fmt.Errorf("%q is not in the corpus", word)
	}

	table, err := ranking.Rank(target, crp.Embeddings, crp.Words)
	if err != nil {
		return err
	}
	env.Logger.Debug("ranked target", "target", word, "index", target, "words", table.Len())

	if c.output != "" {
		data, err := json.Marshal(table)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.output, data, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("writing %s: %w", c.output, err)
		}
		fmt.Fprintf(stderr, "  %s Wrote %s\n", cliui.SuccessMark, cliui.DimStyle.Render(c.output))
	}

	if c.store {
		if err := c.storeTable(ctx, env, table); err != nil {
			return err
		}
	}

	if c.top > 0 {
		for _, e := range table.Top(c.top) {
			fmt.Fprintf(stdout, "%6d  %s\n", e.Rank, e.Word)
		}
		return nil
	}

	if c.output == "" && !c.store {
		return json.NewEncoder(stdout).Encode(table)
	}
	return nil
}

func (c *rankCommander) storeTable(ctx context.Context, env *cmdenv.Env, table *ranking.Table) error {
	id := c.id
	if id == "" {
		id = puzzle.ID(time.Now())
	}

	driver, err := env.Storage(ctx)
	if err != nil {
		return err
	}
	defer driver.Close()

	if err := driver.Put(ctx, id, table); err != nil {
		return fmt.Errorf("storing puzzle %s: %w", id, err)
	}

	env.Logger.Info("puzzle stored", "puzzle_id", id, "target", table.Target())
	return nil
}
