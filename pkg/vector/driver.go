// Package vector indexes corpus embeddings for nearest-word queries.
package vector

import "context"

// Document is one indexed corpus word.
type Document struct {
	// ID is the word's corpus index.
	ID uint32

	// Word is the corpus word.
	Word string

	// Embedding is the vector representation of the word.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of word embeddings.
type Driver interface {
	// Add stores documents with their embeddings.
	// If a document with the same ID already exists, implementers should update
	// the document.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// most similar first.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Close releases any resources held by the driver.
	Close() error
}
