package corpuscmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
)

const buildLongDesc string = `Embed a word list and save it as the configured corpus.

Each word is embedded with the configured provider. The cleaned word list and
the embedding matrix are written to corpus.word_list and corpus.embeddings.

Examples:
  pixelo corpus build words.txt
  pixelo corpus build words.txt --embedding-model nomic-embed-text
  pixelo corpus build words.txt --word-list data/words.txt --embeddings data/embed.npy`

var buildFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagEmbeddingDims,
}

type buildCommander struct {
	wordList   string
	embeddings string
	provider   string
	target     string
	model      string
	dims       uint
}

func newBuildCmd() *cobra.Command {
	cmder := &buildCommander{}

	cmd := &cobra.Command{
		Use:   "build <words.txt>",
		Short: "Embed a word list into a new corpus",
		Long:  buildLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdenv.Load(cmd, buildFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd, env, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &cmder.wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &cmder.embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.model)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbeddingDims, &cmder.dims)

	return cmd
}

func (c *buildCommander) run(cmd *cobra.Command, env *cmdenv.Env, input string) error {
	ctx := cmd.Context()

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening word list: %w", err)
	}
	words, err := corpus.ReadWordList(f)
	f.Close()
	if err != nil {
		return err
	}

	embedder, err := env.Embedder()
	if err != nil {
		return err
	}
	defer embedder.Close()

	builder := corpus.NewBuilder(embedder, env.Logger)

	var crp *corpus.Corpus
	msg := fmt.Sprintf("Embedding %d words with %s", len(words), env.Config.Embedding.Model)
	if err := cliui.StepProgress(cmd.ErrOrStderr(), msg, func(progress func(done, total int)) error {
		builder.Progress = progress
		var err error
		crp, err = builder.Build(ctx, words)
		return err
	}); err != nil {
		return err
	}

	if want := env.Config.Embedding.Dimensions; want != 0 && uint(crp.Dims()) != want {
		env.Logger.Warn("embedding dimensions differ from configuration",
			"configured", want,
			"actual", crp.Dims(),
		)
	}

	dst, _ := env.Sources()
	if err := crp.Save(dst); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s Saved %s words x %s dims to %s and %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(fmt.Sprint(crp.Len())),
		cliui.NameStyle.Render(fmt.Sprint(crp.Dims())),
		cliui.DimStyle.Render(dst.WordListPath),
		cliui.DimStyle.Render(dst.EmbeddingsPath),
	)
	return nil
}
