package driven

import (
	"context"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// VectorIndex provides exact similarity search over chunk vectors.
// An index is immutable once built and safe for concurrent searches.
type VectorIndex interface {
	// Search returns the min(k, Len()) chunks most similar to query,
	// ordered by descending score with ties broken by chunk position.
	// k <= 0 fails with domain.ErrInvalidArgument and a query of the wrong
	// size fails with domain.ErrDimensionMismatch.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredChunk, error)

	// Len returns the number of indexed chunks.
	Len() int

	// Dimensions returns the vector size of the index.
	Dimensions() int

	// ModelTag returns the tag of the encoder that produced the vectors.
	ModelTag() string
}

// VectorIndexBuilder constructs an index from parallel chunk and vector
// slices. Unequal lengths fail with domain.ErrLengthMismatch and vectors of
// differing sizes with domain.ErrDimensionMismatch.
type VectorIndexBuilder func(chunks []domain.Chunk, vectors [][]float32, modelTag string) (VectorIndex, error)
