package vector

import "errors"

var (
	// ErrNotFound is returned when a word is not in the corpus.
	ErrNotFound = errors.New("word not found")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")

	// ErrDimension is returned when an embedding does not match the index.
	ErrDimension = errors.New("embedding dimension mismatch")
)
