package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline, so the same logical flag
// cannot drift between "pixelo rank", "pixelo generate" and "pixelo play".
type Flag struct {
	// Name is the long flag name (e.g. "storage").
	Name string

	// Shorthand is the one-letter short flag (e.g. "w"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "storage.provider").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagWordList        = "word-list"
	FlagEmbeddings      = "embeddings"
	FlagDrawable        = "drawable"
	FlagStorageProvider = "storage"
	FlagStorageTarget   = "storage-target"
	FlagEventsProvider  = "events"
	FlagEventsBrokers   = "brokers"
	FlagEventsTopic     = "topic"
	FlagVectorStoreProv = "vector-store-provider"
	FlagVectorStoreTgt  = "vector-store-target"
	FlagVectorStoreColl = "vector-store-collection"
	FlagEmbeddingProv   = "embedding-provider"
	FlagEmbeddingTgt    = "embedding-target"
	FlagEmbeddingModel  = "embedding-model"
	FlagEmbeddingDims   = "embedding-dimensions"
	FlagDays            = "days"
	FlagWorkers         = "workers"
	FlagSeed            = "seed"
)

// Flags is the registry shared by every pixelo command.
var Flags = FlagSet{
	FlagWordList:        {Name: "word-list", ViperKey: "corpus.word_list", Description: "Path to the word list, one word per line"},
	FlagEmbeddings:      {Name: "embeddings", ViperKey: "corpus.embeddings", Description: "Path to the D x N embedding matrix (.npy)"},
	FlagDrawable:        {Name: "drawable", ViperKey: "corpus.drawable", Description: "Allow-list file restricting target words (default: built-in nouns)"},
	FlagStorageProvider: {Name: "storage", ViperKey: "storage.provider", Description: "Lookup table storage provider (memory, fs, sqlite, postgres, bolt)"},
	FlagStorageTarget:   {Name: "storage-target", ViperKey: "storage.target", Description: "Storage location: directory, database path or connection string"},
	FlagEventsProvider:  {Name: "events", ViperKey: "events.provider", Description: "Event publisher provider (none, kafka)"},
	FlagEventsBrokers:   {Name: "brokers", ViperKey: "events.brokers", Description: "Comma separated Kafka broker addresses"},
	FlagEventsTopic:     {Name: "topic", ViperKey: "events.topic", Description: "Kafka topic for puzzle events"},
	FlagVectorStoreProv: {Name: "vector-store-provider", ViperKey: "vector_store.provider", Description: "Vector store provider (hnsw, sqlite-vec, qdrant)"},
	FlagVectorStoreTgt:  {Name: "vector-store-target", ViperKey: "vector_store.target", Description: "Vector store location: snapshot path, database path or host:port"},
	FlagVectorStoreColl: {Name: "vector-store-collection", ViperKey: "vector_store.collection", Description: "Vector store collection name (qdrant)"},
	FlagEmbeddingProv:   {Name: "embedding-provider", ViperKey: "embedding.provider", Description: "Embedding provider (ollama)"},
	FlagEmbeddingTgt:    {Name: "embedding-target", ViperKey: "embedding.target", Description: "Embedding provider URL"},
	FlagEmbeddingModel:  {Name: "embedding-model", ViperKey: "embedding.model", Description: "Embedding model name"},
	FlagEmbeddingDims:   {Name: "embedding-dimensions", ViperKey: "embedding.dimensions", Description: "Embedding vector dimensions"},
	FlagDays:            {Name: "days", Shorthand: "n", ViperKey: "generate.days", Description: "Number of daily puzzles to generate"},
	FlagWorkers:         {Name: "workers", Shorthand: "w", ViperKey: "generate.workers", Description: "Number of concurrent ranking workers"},
	FlagSeed:            {Name: "seed", ViperKey: "generate.seed", Description: "Seed for target selection (0 picks a random seed)"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUint64Flag registers a uint64 flag on cmd from the given FlagSet.
func AddUint64Flag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint64) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint64(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().Uint64VarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().Uint64Var(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
// Slice defaults are joined with commas.
func defaultString(viperKey string) string {
	v := defaults()
	if s, ok := v.Get(viperKey).([]string); ok {
		return strings.Join(s, ",")
	}
	return v.GetString(viperKey)
}

func defaultUint(viperKey string) uint {
	return defaults().GetUint(viperKey)
}

func defaultUint64(viperKey string) uint64 {
	return defaults().GetUint64(viperKey)
}
