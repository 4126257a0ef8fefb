package corpuscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/cmd/pixelo/cmdenv"
	"github.com/papercomputeco/pixelo/pkg/cliui"
	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/drawable"
)

var infoFlags = []string{
	config.FlagWordList,
	config.FlagEmbeddings,
	config.FlagDrawable,
}

func newInfoCmd() *cobra.Command {
	var wordList, embeddings, drawablePath string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the configured corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, infoFlags...)
			if err != nil {
				return err
			}

			crp, err := env.LoadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			allow, err := env.AllowList()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			row := func(k string, v any) {
				fmt.Fprintf(w, "  %s %s\n", cliui.KeyStyle.Render(fmt.Sprintf("%-12s", k)), cliui.ValueStyle.Render(fmt.Sprint(v)))
			}
			row("words", crp.Len())
			row("dimensions", crp.Dims())
			row("drawable", len(drawable.Resolve(crp, allow)))
			if t := crp.Truncation; t != nil {
				row("truncated", fmt.Sprintf("%d words, %d columns, kept %d", t.Words, t.Columns, t.Kept))
			}
			return nil
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWordList, &wordList)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddings, &embeddings)
	config.AddStringFlag(cmd, config.Flags, config.FlagDrawable, &drawablePath)

	return cmd
}
