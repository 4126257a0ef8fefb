// Package configcmder provides the config command for managing persistent
// pixelo configuration stored in the .pixelo/ directory.
package configcmder

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/pkg/config"
)

const configLongDesc string = `Manage persistent pixelo configuration.

Configuration is stored as config.toml in the .pixelo/ directory and provides
default values for command flags. CLI flags and PIXELO_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  corpus.word_list, corpus.embeddings, corpus.drawable,
  corpus.fallback_word_list, corpus.fallback_embeddings,
  storage.provider, storage.target,
  events.provider, events.brokers, events.topic,
  vector_store.provider, vector_store.target, vector_store.collection,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  generate.days, generate.workers, generate.seed

Use subcommands to get, set, or list configuration values:
  pixelo config set <key> <value>    Set a configuration value
  pixelo config get <key>            Get a configuration value
  pixelo config list                 List all configuration values

Examples:
  pixelo config set storage.provider bolt
  pixelo config set storage.target ./pixelo.bolt
  pixelo config get generate.days
  pixelo config list`

const configShortDesc string = "Manage persistent pixelo configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.PersistentFlags().String("config-dir", "", "Override the .pixelo/ config directory")

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
