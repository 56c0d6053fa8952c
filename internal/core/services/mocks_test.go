package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	batchErr  error
	dims      int
	model     string

	// short drops the last vector from EmbedBatch results.
	short bool

	mu         sync.Mutex
	batchCalls int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.embedding
	}
	if m.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string {
	if m.model == "" {
		return "mock"
	}
	return m.model
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// countingEmbedder wraps an embedding service and counts batch calls.
type countingEmbedder struct {
	driven.EmbeddingService
	batchCalls int
}

func (c *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	c.batchCalls++
	return c.EmbeddingService.EmbedBatch(ctx, texts)
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error

	mu         sync.Mutex
	calls      int
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockQuoteStore implements driven.QuoteStore for testing.
type mockQuoteStore struct {
	quotes []string
	err    error
}

func (m *mockQuoteStore) LoadQuotes(_ context.Context) ([]string, error) {
	return m.quotes, m.err
}

// mockTipStore implements driven.TipStore for testing.
type mockTipStore struct {
	tips map[domain.Mood][]string
	err  error
}

func (m *mockTipStore) LoadTips(_ context.Context, mood domain.Mood) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	tips, ok := m.tips[mood]
	if !ok {
		return []string{}, nil
	}
	return tips, nil
}

// mockSpeaker implements driven.Speaker for testing.
type mockSpeaker struct {
	err error

	mu     sync.Mutex
	spoken []string
}

func (m *mockSpeaker) Speak(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, text)
	return m.err
}

func (m *mockSpeaker) phrases() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}
