// Package vectorcmder provides the vector command for indexing corpus
// embeddings in a vector store and querying nearest words.
package vectorcmder

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/vector"
)

const vectorLongDesc string = `Index corpus embeddings in a vector store and query nearest words.

The vector store is an exploration aid. Puzzle rankings are always computed
exactly over the whole corpus.

Providers:
  hnsw        in-process index, persisted to --vector-store-target when set
  sqlite-vec  SQLite database with the vec0 extension
  qdrant      Qdrant server at host:port`

const vectorShortDesc string = "Index and query corpus embeddings"

var vectorFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagVectorStoreProv,
	config.FlagVectorStoreTgt,
	config.FlagVectorStoreColl,
}

// storeFlags holds the corpus and vector store flags of a subcommand.
type storeFlags struct {
	wordList   string
	embeddings string
	provider   string
	target     string
	collection string
}

func addStoreFlags(cmd *cobra.Command) {
	f := &storeFlags{}
	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &f.wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &f.embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreProv, &f.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreTgt, &f.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreColl, &f.collection)
}

func NewVectorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vector",
		Short: vectorShortDesc,
		Long:  vectorLongDesc,
	}

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newNeighborsCmd())

	return cmd
}

// open loads the corpus and opens the vector store sized for it.
func open(ctx context.Context, cmd *cobra.Command) (*cmdenv.Env, *corpus.Corpus, vector.Driver, error) {
	env, err := cmdenv.Load(cmd, vectorFlags...)
	if err != nil {
		return nil, nil, nil, err
	}

	var crp *corpus.Corpus
	if err := cliui.Step(cmd.ErrOrStderr(), "Loading corpus", func() error {
		var err error
		crp, err = env.LoadCorpus(ctx)
		return err
	}); err != nil {
		return nil, nil, nil, err
	}

	driver, err := env.VectorDriver(ctx, crp.Dims())
	if err != nil {
		return nil, nil, nil, err
	}
	return env, crp, driver, nil
}
