package vectorcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/vector"
)

const indexLongDesc string = `Add every corpus word to the configured vector store.

Words are written in batches. Re-indexing replaces existing entries.

Examples:
  pixelo vector index
  pixelo vector index --vector-store-target words.hnsw
  pixelo vector index --vector-store-provider qdrant --vector-store-target localhost:6334`

func newIndexCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the corpus in the vector store",
		Long:  indexLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, crp, driver, err := open(ctx, cmd)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Indexing %d words in %s", crp.Len(), env.Config.VectorStore.Provider)
			err = cliui.StepProgress(cmd.ErrOrStderr(), msg, func(progress func(done, total int)) error {
				return vector.Index(ctx, driver, crp, batchSize, progress)
			})

			// Persistent drivers flush on close.
			if cerr := driver.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s Indexed %s words\n",
				cliui.SuccessMark, cliui.NameStyle.Render(fmt.Sprint(crp.Len())))
			return nil
		},
	}

	addStoreFlags(cmd)
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", vector.DefaultBatchSize, "Words per write")

	return cmd
}
