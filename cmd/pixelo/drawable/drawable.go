// Package drawablecmder provides the drawable command, which resolves the
// drawable allow-list against the corpus.
package drawablecmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/drawable"
)

const drawableLongDesc string = `Resolve the drawable allow-list against the corpus.

Each allow-listed noun is matched exactly, then as its plural, then as its
singular. The resolved corpus words are written sorted, one per line, and
can be configured as corpus.drawable to restrict target selection.

Examples:
  pixelo drawable
  pixelo drawable --output targets.txt
  pixelo drawable --drawable my_nouns.txt`

const drawableShortDesc string = "Write the drawable target words of the corpus"

const defaultOutput = "drawable_words.txt"

var drawableFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagDrawable,
}

type drawableCommander struct {
	wordList   string
	embeddings string
	drawable   string
	output     string
}

func NewDrawableCmd() *cobra.Command {
	cmder := &drawableCommander{}

	cmd := &cobra.Command{
		Use:   "drawable",
		Short: drawableShortDesc,
		Long:  drawableLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, drawableFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd, env)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &cmder.wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &cmder.embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagDrawable, &cmder.drawable)
	cmd.Flags().StringVarP(&cmder.output, "output", "o", defaultOutput, `Output file, "-" for stdout`)

	return cmd
}

func (c *drawableCommander) run(cmd *cobra.Command, env *cmdenv.Env) error {
	var crp *corpus.Corpus
	if err := cliui.Step(cmd.ErrOrStderr(), "Loading corpus", func() error {
		var err error
		crp, err = env.LoadCorpus(cmd.Context())
		return err
	}); err != nil {
		return err
	}

	allow, err := env.AllowList()
	if err != nil {
		return err
	}

	words := drawable.Words(crp, allow)
	if len(words) == 0 {
		env.Logger.Warn("no drawable words found in corpus", "allow_list", len(allow), "corpus", crp.Len())
	}

	if c.output == "-" {
		return corpus.WriteWordList(cmd.OutOrStdout(), words)
	}

	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.output, err)
	}
	defer f.Close()

	if err := corpus.WriteWordList(f, words); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s Wrote %s drawable words to %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(fmt.Sprint(len(words))),
		cliui.DimStyle.Render(c.output),
	)
	return f.Close()
}
