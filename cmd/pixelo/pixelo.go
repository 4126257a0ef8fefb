// Package pixelocmder is the root pixelo command.
package pixelocmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/pixelo/cmd/pixelo/config"
	corpuscmder "github.com/papercomputeco/pixelo/cmd/pixelo/corpus"
	drawablecmder "github.com/papercomputeco/pixelo/cmd/pixelo/drawable"
	generatecmder "github.com/papercomputeco/pixelo/cmd/pixelo/generate"
	initcmder "github.com/papercomputeco/pixelo/cmd/pixelo/init"
	playcmder "github.com/papercomputeco/pixelo/cmd/pixelo/play"
	rankcmder "github.com/papercomputeco/pixelo/cmd/pixelo/rank"
	showcmder "github.com/papercomputeco/pixelo/cmd/pixelo/show"
	vectorcmder "github.com/papercomputeco/pixelo/cmd/pixelo/vector"
	versioncmder "github.com/papercomputeco/pixelo/cmd/pixelo/version"
)

const pixeloLongDesc string = `Pixelo is a daily word guessing game.

Every day has a secret target word. Each guess is answered with its rank:
how close the guess is to the target in embedding space, 0 being the
target itself.

Prepare and play puzzles using:
  pixelo corpus build    Embed a word list into a corpus
  pixelo drawable        Resolve the drawable targets of a corpus
  pixelo rank            Rank a single target word
  pixelo generate        Generate the next days of puzzles
  pixelo play            Play today's puzzle`

const pixeloShortDesc string = "Pixelo - daily word guessing"

func NewPixeloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pixelo",
		Short:         pixeloShortDesc,
		Long:          pixeloLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("config-dir", "", "Override the .pixelo/ config directory")

	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(corpuscmder.NewCorpusCmd())
	cmd.AddCommand(drawablecmder.NewDrawableCmd())
	cmd.AddCommand(rankcmder.NewRankCmd())
	cmd.AddCommand(generatecmder.NewGenerateCmd())
	cmd.AddCommand(playcmder.NewPlayCmd())
	cmd.AddCommand(showcmder.NewShowCmd())
	cmd.AddCommand(vectorcmder.NewVectorCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
