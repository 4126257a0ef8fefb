// Package cmdenv resolves configuration for pixelo commands and builds the
// components they share: corpus, storage, event publisher, embedder and
// vector store.
package cmdenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/pixelo/pkg/config"
	"github.com/papercomputeco/pixelo/pkg/corpus"
	"github.com/papercomputeco/pixelo/pkg/drawable"
	"github.com/papercomputeco/pixelo/pkg/embeddings"
	embeddingutils "github.com/papercomputeco/pixelo/pkg/embeddings/utils"
	"github.com/papercomputeco/pixelo/pkg/eventstream"
	eventstreamutils "github.com/papercomputeco/pixelo/pkg/eventstream/utils"
	"github.com/papercomputeco/pixelo/pkg/logger"
	"github.com/papercomputeco/pixelo/pkg/storage"
	storageutils "github.com/papercomputeco/pixelo/pkg/storage/utils"
	"github.com/papercomputeco/pixelo/pkg/vector"
	vectorutils "github.com/papercomputeco/pixelo/pkg/vector/utils"
)

// Env is the resolved configuration of one command invocation.
type Env struct {
	Config    *config.Config
	Logger    *slog.Logger
	ConfigDir string
}

// Load resolves configuration for cmd. The registry flags named by keys are
// bound into the viper precedence chain: flags > PIXELO_* env >
// config.toml > defaults. Logs go to the command's stderr so stdout stays
// free for command output.
func Load(cmd *cobra.Command, keys ...string) (*Env, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	debug, _ := cmd.Flags().GetBool("debug")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, keys)

	return &Env{
		Config: config.FromViper(v),
		Logger: logger.New(
			logger.WithDebug(debug),
			logger.WithPretty(true),
			logger.WithJSON(logJSON),
			logger.WithWriter(cmd.ErrOrStderr()),
		),
		ConfigDir: configDir,
	}, nil
}

// Sources returns the primary and fallback corpus sources.
func (e *Env) Sources() (primary, fallback corpus.Source) {
	c := e.Config.Corpus
	return corpus.Source{WordListPath: c.WordList, EmbeddingsPath: c.Embeddings},
		corpus.Source{WordListPath: c.FallbackWordList, EmbeddingsPath: c.FallbackEmbeddings}
}

// LoadCorpus loads the configured corpus, falling back to the backup pair
// when the primary one is unavailable.
func (e *Env) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	primary, fallback := e.Sources()
	return corpus.NewLoader(e.Logger).LoadWithFallback(ctx, primary, fallback)
}

// AllowList returns the configured drawable allow-list, or the built-in
// noun list when none is configured.
func (e *Env) AllowList() ([]string, error) {
	path := e.Config.Corpus.Drawable
	if path == "" {
		return drawable.DefaultNouns(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening drawable list: %w", err)
	}
	defer f.Close()

	return drawable.ReadList(f)
}

// Storage opens the configured lookup table store.
func (e *Env) Storage(ctx context.Context) (storage.Driver, error) {
	d, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
		Provider: e.Config.Storage.Provider,
		Target:   e.Config.Storage.Target,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", e.Config.Storage.Provider, err)
	}

	e.Logger.Debug("storage ready",
		"provider", e.Config.Storage.Provider,
		"target", e.Config.Storage.Target,
	)
	return d, nil
}

// Publisher creates the configured event publisher.
func (e *Env) Publisher() (eventstream.Publisher, error) {
	return eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		Provider: e.Config.Events.Provider,
		Brokers:  e.Config.Events.Brokers,
		Topic:    e.Config.Events.Topic,
		Logger:   e.Logger,
	})
}

// Embedder creates the configured embedding client.
func (e *Env) Embedder() (embeddings.Embedder, error) {
	return embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: e.Config.Embedding.Provider,
		TargetURL:    e.Config.Embedding.Target,
		Model:        e.Config.Embedding.Model,
	})
}

// VectorDriver opens the configured vector store for vectors of dims
// dimensions.
func (e *Env) VectorDriver(ctx context.Context, dims int) (vector.Driver, error) {
	return vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: e.Config.VectorStore.Provider,
		Target:       e.Config.VectorStore.Target,
		Collection:   e.Config.VectorStore.Collection,
		Dimensions:   uint(dims),
		Logger:       e.Logger,
	})
}
