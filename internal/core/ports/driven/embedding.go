// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"
	"fmt"
)

// EmbeddingService generates vector embeddings from text.
//
// Implementations must be deterministic for a given model and must return
// vectors of exactly Dimensions() components. Empty text fails with
// domain.ErrEncoding.
//
// Implementations include:
//   - Built-in feature hashing (offline)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (all-minilm, nomic-embed-text)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// The result has the same length and order as texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ModelTag identifies the encoder that produced a set of vectors.
// Indexes record it so that queries are never encoded by a different model.
func ModelTag(svc EmbeddingService) string {
	return fmt.Sprintf("%s@%d", svc.ModelName(), svc.Dimensions())
}
