// Package playcmder provides the play command, a terminal version of the
// daily guessing game.
package playcmder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/dotdir"
	"github.com/papercomputeco/pixelo/pkg/game"
	"github.com/papercomputeco/pixelo/pkg/puzzle"
	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

const playLongDesc string = `Play the daily puzzle in the terminal.

Guess words. Each guess is ranked by how close it is to the hidden target,
where rank 0 is the target itself. Guesses outside the corpus and repeated
guesses are not scored. Progress is saved after every guess so a game can be
resumed.

When today's puzzle has not been generated the fallback puzzle is played.
Without a terminal the game reads one guess per line from stdin; type
"exit" to stop.

Examples:
  pixelo play
  pixelo play --date 2026-10-17
  echo -e "cat\ndog" | pixelo play --plain`

const playShortDesc string = "Play the daily puzzle"

var playFlags = []string{
	config.FlagStorageProvider,
	config.FlagStorageTarget,
}

type playCommander struct {
	storageProvider string
	storageTarget   string

	date  string
	plain bool
	reset bool

	now func() time.Time
}

func NewPlayCmd() *cobra.Command {
	return newPlayCmd(time.Now)
}

func newPlayCmd(now func() time.Time) *cobra.Command {
	cmder := &playCommander{now: now}

	cmd := &cobra.Command{
		Use:   "play",
		Short: playShortDesc,
		Long:  playLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, playFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd, env)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageTarget, &cmder.storageTarget)
	cmd.Flags().StringVar(&cmder.date, "date", "", "Puzzle date as YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Read guesses line by line instead of starting the TUI")
	cmd.Flags().BoolVar(&cmder.reset, "reset", false, "Discard saved progress for the puzzle")

	return cmd
}

func (c *playCommander) run(cmd *cobra.Command, env *cmdenv.Env) error {
	ctx := cmd.Context()

	id := c.date
	if id == "" {
		id = puzzle.ID(c.now())
	} else if id != puzzle.FallbackID {
		if _, err := puzzle.ParseID(id); err != nil {
			return fmt.Errorf("invalid date %q: %w", id, err)
		}
	}

	driver, err := env.Storage(ctx)
	if err != nil {
		return err
	}
	defer driver.Close()

	id, table, err := loadPuzzle(ctx, driver, id, env)
	if err != nil {
		return err
	}

	dm := dotdir.NewManager()
	if c.reset {
		if err := dm.ClearProgress(env.ConfigDir); err != nil {
			return err
		}
	}

	p, err := newPlayer(id, table, dm, env.ConfigDir)
	if err != nil {
		return err
	}

	if !c.plain && interactive(cmd) {
		return runTUI(ctx, p)
	}
	return runLines(cmd.InOrStdin(), cmd.OutOrStdout(), p)
}

// loadPuzzle fetches the table for id, falling back to the fallback puzzle
// when id has not been generated.
func loadPuzzle(ctx context.Context, driver storage.Driver, id string, env *cmdenv.Env) (string, *ranking.Table, error) {
	table, err := driver.Get(ctx, id)
	if err == nil {
		return id, table, nil
	}
	if !storage.IsNotFound(err) || id == puzzle.FallbackID {
		return "", nil, noPuzzle(id, err)
	}

	env.Logger.Warn("no puzzle for date, playing fallback puzzle",
		"puzzle_id", id,
		"fallback_id", puzzle.FallbackID,
	)
	table, err = driver.Get(ctx, puzzle.FallbackID)
	if err != nil {
		return "", nil, noPuzzle(puzzle.FallbackID, err)
	}
	return puzzle.FallbackID, table, nil
}

func noPuzzle(id string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("no puzzle available for %s, run pixelo generate first: %w", id, err)
	}
	return err
}

// interactive reports whether both ends of cmd are terminals.
func interactive(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}

// player ties a game session to its saved progress.
type player struct {
	id      string
	session *game.Session
	words   int

	progress  *dotdir.Progress
	dm        *dotdir.Manager
	configDir string
}

// newPlayer starts a session for id and replays any saved guesses.
func newPlayer(id string, table *ranking.Table, dm *dotdir.Manager, configDir string) (*player, error) {
	saved, err := dm.LoadProgress(id, configDir)
	if err != nil {
		return nil, err
	}

	p := &player{
		id:        id,
		session:   game.NewSession(table),
		words:     table.Len(),
		progress:  &dotdir.Progress{PuzzleID: id},
		dm:        dm,
		configDir: configDir,
	}
	if saved == nil {
		return p, nil
	}

	for _, g := range saved.Guesses {
		res, err := p.session.Guess(g)
		if err != nil {
			break
		}
		if scored(res.Status) {
			p.progress.Guesses = append(p.progress.Guesses, res.Attempt.Word)
		}
	}
	p.progress.Solved = p.session.Solved()
	return p, nil
}

// guess scores word and saves progress when the guess counted.
func (p *player) guess(word string) (game.Result, error) {
	res, err := p.session.Guess(word)
	if err != nil || !scored(res.Status) {
		return res, err
	}

	p.progress.Guesses = append(p.progress.Guesses, res.Attempt.Word)
	p.progress.Solved = p.session.Solved()
	p.progress.UpdatedAt = time.Now().UTC()
	if err := p.dm.SaveProgress(p.progress, p.configDir); err != nil {
		return res, err
	}
	return res, nil
}

func (p *player) resumed() bool {
	return p.session.Score() > 0
}

func scored(s game.Status) bool {
	return s == game.StatusRanked || s == game.StatusCorrect
}
