// Package corpuscmder provides the corpus command for building and
// inspecting the embedding corpus.
package corpuscmder

import (
	"github.com/spf13/cobra"
)

const corpusLongDesc string = `Build and inspect the embedding corpus.

The corpus is a word list, one word per line, and a D x N embedding matrix
stored as .npy where column i embeds line i of the word list.`

const corpusShortDesc string = "Build and inspect the embedding corpus"

func NewCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: corpusShortDesc,
		Long:  corpusLongDesc,
	}

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newInfoCmd())

	return cmd
}
