package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps index snapshots for the life of the process.
type IndexStore struct {
	mu        sync.RWMutex
	snapshots map[string]*driven.IndexSnapshot
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{snapshots: make(map[string]*driven.IndexSnapshot)}
}

// SaveSnapshot stores a deep copy of snap.
func (s *IndexStore) SaveSnapshot(_ context.Context, snap *driven.IndexSnapshot) error {
	if snap == nil || snap.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if len(snap.Chunks) != len(snap.Vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrLengthMismatch, len(snap.Chunks), len(snap.Vectors))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.DocumentID] = cloneSnapshot(snap)
	return nil
}

// LoadSnapshot returns a copy of the stored snapshot.
func (s *IndexStore) LoadSnapshot(_ context.Context, documentID string) (*driven.IndexSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSnapshot(snap), nil
}

// DeleteSnapshot removes the stored snapshot, if any.
func (s *IndexStore) DeleteSnapshot(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, documentID)
	return nil
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}

func cloneSnapshot(snap *driven.IndexSnapshot) *driven.IndexSnapshot {
	out := *snap
	out.Chunks = append([]domain.Chunk(nil), snap.Chunks...)
	out.Vectors = make([][]float32, len(snap.Vectors))
	for i, v := range snap.Vectors {
		out.Vectors[i] = append([]float32(nil), v...)
	}
	return &out
}
