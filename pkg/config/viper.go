package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/pixelo/pkg/dotdir"
)

// EnvPrefix is prepended to every environment variable viper reads,
// e.g. PIXELO_STORAGE_PROVIDER for storage.provider.
const EnvPrefix = "PIXELO"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the PIXELO_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (PIXELO_STORAGE_PROVIDER, PIXELO_GENERATE_DAYS, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper builds a Config from the resolved viper values.
func FromViper(v *viper.Viper) *Config {
	brokers := v.GetStringSlice("events.brokers")
	if len(brokers) == 1 {
		// Env vars and flags arrive as one comma separated value.
		brokers = SplitList(brokers[0])
	}

	return &Config{
		Version: v.GetInt("version"),
		Corpus: CorpusConfig{
			WordList:           v.GetString("corpus.word_list"),
			Embeddings:         v.GetString("corpus.embeddings"),
			FallbackWordList:   v.GetString("corpus.fallback_word_list"),
			FallbackEmbeddings: v.GetString("corpus.fallback_embeddings"),
			Drawable:           v.GetString("corpus.drawable"),
		},
		Storage: StorageConfig{
			Provider: v.GetString("storage.provider"),
			Target:   v.GetString("storage.target"),
		},
		Events: EventsConfig{
			Provider: v.GetString("events.provider"),
			Brokers:  brokers,
			Topic:    v.GetString("events.topic"),
		},
		VectorStore: VectorStoreConfig{
			Provider:   v.GetString("vector_store.provider"),
			Target:     v.GetString("vector_store.target"),
			Collection: v.GetString("vector_store.collection"),
		},
		Embedding: EmbeddingConfig{
			Provider:   v.GetString("embedding.provider"),
			Target:     v.GetString("embedding.target"),
			Model:      v.GetString("embedding.model"),
			Dimensions: v.GetUint("embedding.dimensions"),
		},
		Generate: GenerateConfig{
			Days:    v.GetUint("generate.days"),
			Workers: v.GetUint("generate.workers"),
			Seed:    v.GetUint64("generate.seed"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Corpus
	v.SetDefault("corpus.word_list", d.Corpus.WordList)
	v.SetDefault("corpus.embeddings", d.Corpus.Embeddings)
	v.SetDefault("corpus.fallback_word_list", d.Corpus.FallbackWordList)
	v.SetDefault("corpus.fallback_embeddings", d.Corpus.FallbackEmbeddings)
	v.SetDefault("corpus.drawable", d.Corpus.Drawable)

	// Storage
	v.SetDefault("storage.provider", d.Storage.Provider)
	v.SetDefault("storage.target", d.Storage.Target)

	// Events
	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.brokers", d.Events.Brokers)
	v.SetDefault("events.topic", d.Events.Topic)

	// Vector store
	v.SetDefault("vector_store.provider", d.VectorStore.Provider)
	v.SetDefault("vector_store.target", d.VectorStore.Target)
	v.SetDefault("vector_store.collection", d.VectorStore.Collection)

	// Embedding
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.target", d.Embedding.Target)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)

	// Generate
	v.SetDefault("generate.days", d.Generate.Days)
	v.SetDefault("generate.workers", d.Generate.Workers)
	v.SetDefault("generate.seed", d.Generate.Seed)
}
