package playcmder

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/game"
)

func formatRank(rank int) string {
	return cliui.RankStyle(rank).Render(strconv.Itoa(rank))
}

// formatResult describes the outcome of one guess.
func formatResult(res game.Result) string {
	a := res.Attempt
	switch res.Status {
	case game.StatusCorrect:
		return fmt.Sprintf("%s %s is the word! Solved in %d guesses.", cliui.SuccessMark, a.Word, res.Score)
	case game.StatusRanked:
		return fmt.Sprintf("%s is ranked %s", a.Word, formatRank(a.Rank))
	case game.StatusDuplicate:
		if a.Rank >= 0 {
			return fmt.Sprintf("%s was already guessed, rank %s", a.Word, formatRank(a.Rank))
		}
		return fmt.Sprintf("%s was already guessed", a.Word)
	case game.StatusNotFound:
		return fmt.Sprintf("%s %s is not in the word list", cliui.FailMark, a.Word)
	default:
		return a.Word
	}
}

// closest returns up to n attempts ordered by rank, closest first.
func closest(history []game.Attempt, n int) []game.Attempt {
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b game.Attempt) int {
		return a.Rank - b.Rank
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
