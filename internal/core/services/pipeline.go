package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.AnswerService = (*Pipeline)(nil)

// PipelineConfig controls retrieval and answer post-processing.
type PipelineConfig struct {
	// DocumentPath is the support document to index.
	DocumentPath string

	// TopK is the number of passages retrieved per question (default: 4).
	TopK int

	// MinScore drops passages scoring below it. Zero keeps everything.
	MinScore float64

	// MaxAnswerChars truncates answers (default: 300).
	MaxAnswerChars int

	// FallbackAnswer is returned when retrieval finds nothing.
	FallbackAnswer string
}

// PipelineDeps are the collaborators a pipeline is built from.
type PipelineDeps struct {
	Ingestor   *Ingestor
	Embedder   driven.EmbeddingService
	Generator  *Generator
	BuildIndex driven.VectorIndexBuilder

	// Store caches embeddings between runs. Optional.
	Store driven.IndexStore
}

// Pipeline answers questions from one indexed document.
// Build it once per process and share it; Answer is safe for concurrent
// use and serialises calls into the language model.
type Pipeline struct {
	embedder  driven.EmbeddingService
	generator *Generator
	index     driven.VectorIndex
	cfg       PipelineConfig
	info      domain.IndexInfo

	genMu sync.Mutex
}

// BuildPipeline ingests the document, embeds every chunk and builds the
// index. With a Store, vectors are reused when the file content and the
// embedding model both match the stored snapshot.
func BuildPipeline(ctx context.Context, deps PipelineDeps, cfg PipelineConfig) (*Pipeline, error) {
	logger.Section("Build Pipeline")
	defer logger.Timed("build pipeline")()

	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.MaxAnswerChars <= 0 {
		cfg.MaxAnswerChars = domain.DefaultMaxAnswerChars
	}
	if cfg.FallbackAnswer == "" {
		cfg.FallbackAnswer = domain.DefaultFallbackAnswer
	}

	ing, err := deps.Ingestor.Ingest(ctx, cfg.DocumentPath)
	if err != nil {
		return nil, err
	}

	if len(ing.Chunks) == 0 {
		logger.Warn("No text found in %s; every answer will be the fallback", cfg.DocumentPath)
	}

	tag := driven.ModelTag(deps.Embedder)
	vectors, reused := loadSnapshot(ctx, deps.Store, ing, tag)
	if !reused {
		vectors, err = embedChunks(ctx, deps.Embedder, ing.Chunks)
		if err != nil {
			return nil, err
		}
		saveSnapshot(ctx, deps.Store, ing, tag, deps.Embedder.Dimensions(), vectors)
	}

	index, err := deps.BuildIndex(ing.Chunks, vectors, tag)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	logger.Info("Index ready: %d chunks, model %s (reused=%t)", index.Len(), tag, reused)

	return &Pipeline{
		embedder:  deps.Embedder,
		generator: deps.Generator,
		index:     index,
		cfg:       cfg,
		info: domain.IndexInfo{
			DocumentID:    ing.Document.ID,
			DocumentTitle: ing.Document.Title,
			DocumentPath:  ing.Document.URI,
			Sections:      len(ing.Document.Sections),
			Chunks:        index.Len(),
			Dimensions:    deps.Embedder.Dimensions(),
			ModelTag:      tag,
			Reused:        reused,
		},
	}, nil
}

// Info describes the indexed document.
func (p *Pipeline) Info() domain.IndexInfo {
	return p.info
}

// Retrieve returns the passages most similar to question, best first.
// Passages under the configured minimum score are dropped.
func (p *Pipeline) Retrieve(ctx context.Context, question string) ([]domain.ScoredChunk, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidArgument)
	}

	if tag := driven.ModelTag(p.embedder); tag != p.index.ModelTag() {
		return nil, fmt.Errorf("%w: index built with %s, query encoder is %s",
			domain.ErrModelMismatch, p.index.ModelTag(), tag)
	}

	query, err := p.embedder.Embed(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrEncoding) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}

	if p.index.Len() == 0 {
		return []domain.ScoredChunk{}, nil
	}

	hits, err := p.index.Search(ctx, query, p.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	if p.cfg.MinScore <= 0 {
		return hits, nil
	}
	kept := hits[:0]
	for _, h := range hits {
		if h.Score >= p.cfg.MinScore {
			kept = append(kept, h)
		}
	}
	logger.Debug("Retrieved %d of %d passages (min score %.2f)", len(kept), len(hits), p.cfg.MinScore)
	return kept, nil
}

// Answer retrieves passages for question and generates a single-line reply
// of at most MaxAnswerChars characters. When nothing is retrieved the
// configured fallback is returned, marked ungrounded, without calling the
// model. Results are never cached; each call retrieves and generates again.
func (p *Pipeline) Answer(ctx context.Context, question string) (domain.Answer, error) {
	logger.Section("Answer")
	defer logger.Timed("answer")()

	question = strings.TrimSpace(question)
	passages, err := p.Retrieve(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	if len(passages) == 0 {
		logger.Info("No passages retrieved, returning fallback answer")
		return domain.Answer{
			Question:   question,
			Text:       PostProcess(p.cfg.FallbackAnswer, p.cfg.MaxAnswerChars),
			Passages:   passages,
			Confidence: domain.ConfidenceUngrounded,
		}, nil
	}

	p.genMu.Lock()
	raw, err := p.generator.Generate(ctx, question, domain.Passages(passages))
	p.genMu.Unlock()
	if err != nil {
		return domain.Answer{}, err
	}

	text := PostProcess(raw, p.cfg.MaxAnswerChars)
	if text == "" {
		return domain.Answer{}, fmt.Errorf("%w: model returned no text", domain.ErrGeneration)
	}

	return domain.Answer{
		Question:   question,
		Text:       text,
		Passages:   passages,
		Confidence: domain.ConfidenceGrounded,
	}, nil
}

// PostProcess trims raw model output, keeps its first line and cuts it to
// at most maxChars characters.
func PostProcess(raw string, maxChars int) string {
	text := strings.TrimSpace(raw)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if r := []rune(text); maxChars > 0 && len(r) > maxChars {
		text = string(r[:maxChars])
	}
	return strings.TrimSpace(text)
}

// embedChunks encodes every chunk and checks the vector sizes.
func embedChunks(ctx context.Context, embedder driven.EmbeddingService, chunks []domain.Chunk) ([][]float32, error) {
	defer logger.Timed("embed chunks")()

	if len(chunks) == 0 {
		return [][]float32{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		if errors.Is(err, domain.ErrEncoding) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrLengthMismatch, len(chunks), len(vectors))
	}
	logger.Debug("Embedded %d chunks with %s", len(chunks), embedder.ModelName())
	return vectors, nil
}

// loadSnapshot returns stored vectors when they still describe ing.
func loadSnapshot(ctx context.Context, store driven.IndexStore, ing *Ingestion, tag string) ([][]float32, bool) {
	if store == nil {
		return nil, false
	}

	snap, err := store.LoadSnapshot(ctx, ing.Document.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Loading index snapshot: %v", err)
		}
		return nil, false
	}

	switch {
	case snap.SourceHash != ing.SourceHash:
		logger.Debug("Snapshot stale: document changed")
		return nil, false
	case snap.ModelTag != tag:
		logger.Debug("Snapshot stale: built with %s, now %s", snap.ModelTag, tag)
		return nil, false
	case len(snap.Chunks) != len(ing.Chunks):
		logger.Debug("Snapshot stale: %d chunks stored, %d now", len(snap.Chunks), len(ing.Chunks))
		return nil, false
	}
	for i := range snap.Chunks {
		if snap.Chunks[i].ID != ing.Chunks[i].ID || snap.Chunks[i].Content != ing.Chunks[i].Content {
			logger.Debug("Snapshot stale: chunking changed")
			return nil, false
		}
	}

	logger.Debug("Reusing index snapshot for %s", ing.Document.ID)
	return snap.Vectors, true
}

// saveSnapshot stores vectors for the next run. Failures only cost a
// re-encode later, so they are logged.
func saveSnapshot(ctx context.Context, store driven.IndexStore, ing *Ingestion, tag string, dims int, vectors [][]float32) {
	if store == nil {
		return
	}
	err := store.SaveSnapshot(ctx, &driven.IndexSnapshot{
		DocumentID: ing.Document.ID,
		SourceHash: ing.SourceHash,
		ModelTag:   tag,
		Dimensions: dims,
		Chunks:     ing.Chunks,
		Vectors:    vectors,
	})
	if err != nil {
		logger.Warn("Saving index snapshot: %v", err)
	}
}
