package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// MIMEDetector maps a file path to a MIME type. An empty result means the
// type is unknown.
type MIMEDetector func(path string) string

// Ingestion is the outcome of loading one document.
type Ingestion struct {
	// Document has its sections populated.
	Document domain.Document

	// Chunks are in reading order.
	Chunks []domain.Chunk

	// SourceHash is the hex SHA-256 of the file bytes.
	SourceHash string
}

// Ingestor loads a document from disk and splits it into chunks.
type Ingestor struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
	detect   MIMEDetector
}

// NewIngestor creates an ingestor.
func NewIngestor(registry driven.NormaliserRegistry, pipeline driven.PostProcessorPipeline, detect MIMEDetector) *Ingestor {
	return &Ingestor{
		registry: registry,
		pipeline: pipeline,
		detect:   detect,
	}
}

// Ingest reads the file at path, normalises it into sections and chunks it.
// A path that is missing, a directory or unreadable fails with
// domain.ErrDocumentNotFound. Content that cannot be extracted fails with
// domain.ErrDocumentParse.
func (i *Ingestor) Ingest(ctx context.Context, path string) (*Ingestion, error) {
	defer logger.Timed("ingest")()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocumentNotFound, path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocumentNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDocumentNotFound, path)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocumentNotFound, path, err)
	}

	mimeType := i.detect(abs)
	if mimeType == "" {
		return nil, fmt.Errorf("%w: unknown file type for %s", domain.ErrDocumentParse, path)
	}
	logger.Debug("Ingesting %s (%s, %d bytes)", abs, mimeType, len(content))

	result, err := i.registry.Normalise(ctx, &domain.RawDocument{
		URI:      abs,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{
			"size":     info.Size(),
			"modified": info.ModTime().UTC(),
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrDocumentParse) || errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentParse, err)
	}

	doc := result.Document
	logger.Debug("Document %q: %d sections", doc.Title, len(doc.Sections))

	chunks, err := i.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", path, err)
	}
	logger.Info("Ingested %s: %d sections, %d chunks", filepath.Base(abs), len(doc.Sections), len(chunks))

	sum := sha256.Sum256(content)
	return &Ingestion{
		Document:   doc,
		Chunks:     chunks,
		SourceHash: hex.EncodeToString(sum[:]),
	}, nil
}
