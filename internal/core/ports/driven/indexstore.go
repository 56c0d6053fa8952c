package driven

import (
	"context"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// IndexSnapshot is everything needed to rebuild a vector index without
// re-encoding the document.
type IndexSnapshot struct {
	// DocumentID identifies the indexed document.
	DocumentID string

	// SourceHash is the content hash of the document file.
	SourceHash string

	// ModelTag identifies the encoder used for Vectors.
	ModelTag string

	// Dimensions is the vector size.
	Dimensions int

	// Chunks and Vectors are parallel slices in document order.
	Chunks  []domain.Chunk
	Vectors [][]float32
}

// IndexStore persists index snapshots. This is optional; without it
// every start re-encodes the whole document.
type IndexStore interface {
	// SaveSnapshot replaces any stored snapshot for the same document.
	SaveSnapshot(ctx context.Context, snap *IndexSnapshot) error

	// LoadSnapshot returns the stored snapshot for a document.
	// Returns domain.ErrNotFound when none exists.
	LoadSnapshot(ctx context.Context, documentID string) (*IndexSnapshot, error)

	// DeleteSnapshot removes the stored snapshot for a document.
	DeleteSnapshot(ctx context.Context, documentID string) error

	// Close releases resources.
	Close() error
}
