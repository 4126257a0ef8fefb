// Package initcmder provides the init command for initializing a local .pixelo
// directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
)

const (
	dirName = ".pixelo"
)

const initLongDesc string = `Initialize a new .pixelo/ directory in the current working directory.

Creates a local .pixelo/ directory that takes precedence over the default
~/.pixelo/ directory for configuration and saved game progress.

With --preset a config.toml is written for one of the deployment presets:
  local     word files, filesystem puzzles, in-process HNSW index
  sqlite    puzzles and vectors in SQLite databases
  cluster   Postgres puzzles, Kafka events, Qdrant vectors

Examples:
  pixelo init
  pixelo init --preset sqlite`

const initShortDesc string = "Initialize a local .pixelo/ directory"

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.preset, "preset", "p", "",
		fmt.Sprintf("Write a config.toml preset (%s)", strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func (c *initCommander) run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	var preset *config.Config
	if c.preset != "" {
		var err error
		preset, err = config.PresetConfig(c.preset)
		if err != nil {
			return err
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintf(out, "Already initialized: %s\n", dir)
	default:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .pixelo directory: %w", err)
		}
		fmt.Fprintf(out, "Initialized .pixelo directory: %s\n", dir)
	}

	if preset == nil {
		return nil
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return err
	}
	if err := cfger.SaveConfig(preset); err != nil {
		return err
	}

	fmt.Fprintf(out, "  %s Wrote %s preset to %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strings.ToLower(c.preset)),
		cliui.DimStyle.Render(cfger.GetTarget()),
	)
	return nil
}
