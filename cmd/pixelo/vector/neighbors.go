package vectorcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/vector"
)

const neighborsLongDesc string = `Print the words nearest to a corpus word.

Uses the configured vector store. An empty in-process index is filled from
the corpus first.

Examples:
  pixelo vector neighbors cat
  pixelo vector neighbors cat --top 20`

// sized is implemented by drivers that can report their entry count.
type sized interface {
	Len() int
}

func newNeighborsCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "neighbors <word>",
		Short: "Print the nearest words to a word",
		Long:  neighborsLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, crp, driver, err := open(ctx, cmd)
			if err != nil {
				return err
			}
			defer driver.Close()

			if s, ok := driver.(sized); ok && s.Len() == 0 {
				env.Logger.Debug("vector index empty, indexing corpus", "words", crp.Len())
				if err := vector.Index(ctx, driver, crp, vector.DefaultBatchSize, nil); err != nil {
					return err
				}
			}

			word := strings.TrimSpace(args[0])
			results, err := vector.Neighbors(ctx, driver, crp, word, k)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, r := range results {
				fmt.Fprintf(w, "%4d  %-24s %s\n", i+1, r.Word,
					cliui.DimStyle.Render(fmt.Sprintf("%.4f", r.Score)))
			}
			return nil
		},
	}

	addStoreFlags(cmd)
	cmd.Flags().IntVarP(&k, "top", "k", 10, "Number of neighbors")

	return cmd
}
