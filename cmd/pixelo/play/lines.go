package playcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/game"
)

const prompt = "guess> "

// runLines plays the game one guess per input line until the puzzle is
// solved, the input ends or the player types exit.
func runLines(in io.Reader, out io.Writer, p *player) error {
	fmt.Fprintf(out, "Pixelo %s: %d words ranked. Type exit to quit.\n", p.id, p.words)

	if p.resumed() {
		fmt.Fprintf(out, "Resuming with %d guesses.\n", p.session.Score())
		for _, a := range closest(p.session.History(), 5) {
			fmt.Fprintf(out, "  %6s  %s\n", formatRank(a.Rank), a.Word)
		}
	}
	if p.session.Solved() {
		fmt.Fprintf(out, "%s Already solved: %s\n", cliui.SuccessMark, p.session.Target())
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		res, err := p.guess(line)
		if errors.Is(err, game.ErrEmptyGuess) {
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, formatResult(res))
		if res.Status == game.StatusCorrect {
			return nil
		}
	}
}
