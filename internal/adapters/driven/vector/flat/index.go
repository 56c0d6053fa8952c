// Package flat provides an exact in-memory vector index.
//
// Vectors are normalised once at build time so search is a dot product per
// stored chunk. The corpus is a single document, so a linear scan is fast
// enough and always returns the true nearest neighbours.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.VectorIndex        = (*Index)(nil)
	_ driven.VectorIndexBuilder = Builder
)

// Index is an immutable cosine similarity index over chunk embeddings.
type Index struct {
	chunks     []domain.Chunk
	vectors    [][]float32
	dimensions int
	modelTag   string
}

// Build creates an index from chunks and their embeddings.
// vectors[i] must be the embedding of chunks[i].
func Build(chunks []domain.Chunk, vectors [][]float32, modelTag string) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrLengthMismatch, len(chunks), len(vectors))
	}

	idx := &Index{
		chunks:   make([]domain.Chunk, len(chunks)),
		vectors:  make([][]float32, len(vectors)),
		modelTag: modelTag,
	}
	copy(idx.chunks, chunks)

	for i, v := range vectors {
		if i == 0 {
			idx.dimensions = len(v)
		}
		if len(v) != idx.dimensions || len(v) == 0 {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dimensions)
		}
		idx.vectors[i] = normalise(v)
	}

	return idx, nil
}

// Builder adapts Build to driven.VectorIndexBuilder.
func Builder(chunks []domain.Chunk, vectors [][]float32, modelTag string) (driven.VectorIndex, error) {
	idx, err := Build(chunks, vectors, modelTag)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Search returns up to k chunks ordered by descending cosine similarity.
// Equal scores keep document order.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}
	if len(x.chunks) == 0 {
		return []domain.ScoredChunk{}, nil
	}
	if len(query) != x.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), x.dimensions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := normalise(query)
	results := make([]domain.ScoredChunk, len(x.chunks))
	for i, v := range x.vectors {
		results[i] = domain.ScoredChunk{Chunk: x.chunks[i], Score: dot(q, v)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Position < results[j].Chunk.Position
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	return len(x.chunks)
}

// Dimensions returns the vector size, or 0 for an empty index.
func (x *Index) Dimensions() int {
	return x.dimensions
}

// ModelTag returns the tag of the embedding model that built the index.
func (x *Index) ModelTag() string {
	return x.modelTag
}

func normalise(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
