package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the persistent pixelo configuration stored as config.toml
// in the .pixelo/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	Corpus      CorpusConfig      `toml:"corpus"`
	Storage     StorageConfig     `toml:"storage"`
	Events      EventsConfig      `toml:"events"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Generate    GenerateConfig    `toml:"generate"`
}

// CorpusConfig points at the word list and embedding matrix files. The
// fallback pair is loaded when the primary pair is unavailable.
type CorpusConfig struct {
	WordList           string `toml:"word_list,omitempty"`
	Embeddings         string `toml:"embeddings,omitempty"`
	FallbackWordList   string `toml:"fallback_word_list,omitempty"`
	FallbackEmbeddings string `toml:"fallback_embeddings,omitempty"`

	// Drawable is an allow-list file restricting target selection. Empty
	// uses the built-in noun list.
	Drawable string `toml:"drawable,omitempty"`
}

// StorageConfig selects where generated lookup tables are persisted.
type StorageConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
}

// EventsConfig selects where puzzle generation events are published.
type EventsConfig struct {
	Provider string   `toml:"provider,omitempty"`
	Brokers  []string `toml:"brokers,omitempty"`
	Topic    string   `toml:"topic,omitempty"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// GenerateConfig holds batch generation settings.
type GenerateConfig struct {
	Days    uint   `toml:"days,omitempty"`
	Workers uint   `toml:"workers,omitempty"`
	Seed    uint64 `toml:"seed,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func uintKey(name string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 63)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"corpus.word_list":           stringKey(func(c *Config) *string { return &c.Corpus.WordList }),
	"corpus.embeddings":          stringKey(func(c *Config) *string { return &c.Corpus.Embeddings }),
	"corpus.fallback_word_list":  stringKey(func(c *Config) *string { return &c.Corpus.FallbackWordList }),
	"corpus.fallback_embeddings": stringKey(func(c *Config) *string { return &c.Corpus.FallbackEmbeddings }),
	"corpus.drawable":            stringKey(func(c *Config) *string { return &c.Corpus.Drawable }),
	"storage.provider":           stringKey(func(c *Config) *string { return &c.Storage.Provider }),
	"storage.target":             stringKey(func(c *Config) *string { return &c.Storage.Target }),
	"events.provider":            stringKey(func(c *Config) *string { return &c.Events.Provider }),
	"events.brokers": {
		get: func(c *Config) string { return strings.Join(c.Events.Brokers, ",") },
		set: func(c *Config, v string) error {
			c.Events.Brokers = SplitList(v)
			return nil
		},
	},
	"events.topic":            stringKey(func(c *Config) *string { return &c.Events.Topic }),
	"vector_store.provider":   stringKey(func(c *Config) *string { return &c.VectorStore.Provider }),
	"vector_store.target":     stringKey(func(c *Config) *string { return &c.VectorStore.Target }),
	"vector_store.collection": stringKey(func(c *Config) *string { return &c.VectorStore.Collection }),
	"embedding.provider":      stringKey(func(c *Config) *string { return &c.Embedding.Provider }),
	"embedding.target":        stringKey(func(c *Config) *string { return &c.Embedding.Target }),
	"embedding.model":         stringKey(func(c *Config) *string { return &c.Embedding.Model }),
	"embedding.dimensions":    uintKey("embedding.dimensions", func(c *Config) *uint { return &c.Embedding.Dimensions }),
	"generate.days":           uintKey("generate.days", func(c *Config) *uint { return &c.Generate.Days }),
	"generate.workers":        uintKey("generate.workers", func(c *Config) *uint { return &c.Generate.Workers }),
	"generate.seed": {
		get: func(c *Config) string {
			if c.Generate.Seed == 0 {
				return ""
			}
			return strconv.FormatUint(c.Generate.Seed, 10)
		},
		set: func(c *Config, v string) error {
			// TOML integers are signed 64-bit.
			n, err := strconv.ParseUint(v, 10, 63)
			if err != nil {
				return fmt.Errorf("invalid value for generate.seed: %w", err)
			}
			c.Generate.Seed = n
			return nil
		},
	},
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
