package ranking

import "errors"

var (
	// ErrInvalidIndex is returned when a target index is outside the corpus.
	ErrInvalidIndex = errors.New("invalid target index")

	// ErrDimensionMismatch is returned when the embedding matrix column count
	// does not match the number of words.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidTable is returned when a rank table is empty, has duplicate
	// words, or its ranks are not a permutation of [0, N-1].
	ErrInvalidTable = errors.New("invalid rank table")
)
