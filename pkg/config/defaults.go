package config

const (
	defaultWordList   = "word_list.txt"
	defaultEmbeddings = "embed_store.npy"

	defaultStorageProvider = "fs"
	defaultStorageTarget   = "pregen_data"

	defaultEventsProvider = "none"
	defaultEventsBroker   = "localhost:9092"
	defaultEventsTopic    = "pixelo.puzzles"

	defaultVectorProvider   = "hnsw"
	defaultVectorCollection = "pixelo_words"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "all-minilm"
	defaultEmbeddingDimensions = 384

	defaultGenerateDays    = 30
	defaultGenerateWorkers = 3
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Corpus: CorpusConfig{
			WordList:   defaultWordList,
			Embeddings: defaultEmbeddings,
		},
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
			Target:   defaultStorageTarget,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Brokers:  []string{defaultEventsBroker},
			Topic:    defaultEventsTopic,
		},
		VectorStore: VectorStoreConfig{
			Provider:   defaultVectorProvider,
			Collection: defaultVectorCollection,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		Generate: GenerateConfig{
			Days:    defaultGenerateDays,
			Workers: defaultGenerateWorkers,
		},
	}
}
