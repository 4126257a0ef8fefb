// Package showcmder provides the show command for inspecting stored puzzles.
package showcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
	"github.com/papercomputeco/pixelo/pkg/utils"
)

const showLongDesc string = `List stored puzzles or show one of them.

Without arguments, prints every stored puzzle ID. With a puzzle ID, prints
the target word and the closest words of its lookup table. Use --raw to skip
markdown rendering.

Examples:
  pixelo show
  pixelo show 2026-10-17
  pixelo show 2026-10-17 --top 25
  pixelo show 1 --raw`

const showShortDesc string = "List or inspect stored puzzles"

const maxWordWidth = 32

var showFlags = []string{
	config.FlagStorageProvider,
	config.FlagStorageTarget,
}

type showCommander struct {
	storageProvider string
	storageTarget   string

	top int
	raw bool
}

func NewShowCmd() *cobra.Command {
	cmder := &showCommander{}

	cmd := &cobra.Command{
		Use:   "show [puzzle-id]",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdenv.Load(cmd, showFlags...)
			if err != nil {
				return err
			}

			driver, err := env.Storage(cmd.Context())
			if err != nil {
				return err
			}
			defer driver.Close()

			if len(args) == 0 {
				return cmder.list(cmd, driver)
			}
			return cmder.show(cmd, driver, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageTarget, &cmder.storageTarget)
	cmd.Flags().IntVarP(&cmder.top, "top", "t", 10, "Number of closest words to show")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print markdown without rendering")

	return cmd
}

func (c *showCommander) list(cmd *cobra.Command, driver storage.Driver) error {
	ids, err := driver.List(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No puzzles stored.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

func (c *showCommander) show(cmd *cobra.Command, driver storage.Driver, id string) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	table, err := driver.Get(cmd.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			return fmt.Errorf("no puzzle stored for %s", id)
		}
		return err
	}

	md := renderTable(id, table, c.top)
	if c.raw {
		_, err := io.WriteString(cmd.OutOrStdout(), md)
		return err
	}

	out, err := cliui.RenderMarkdown(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func renderTable(id string, table *ranking.Table, top int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Puzzle %s\n\n", id)
	fmt.Fprintf(&b, "Target **%s**, %d ranked words.\n\n", table.Target(), table.Len())

	entries := table.Top(top)
	if len(entries) == 0 {
		return b.String()
	}

	b.WriteString("| Rank | Word |\n")
	b.WriteString("| ---: | :--- |\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %s |\n", e.Rank, utils.Truncate(e.Word, maxWordWidth))
	}
	return b.String()
}
