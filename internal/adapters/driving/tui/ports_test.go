package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// MockAnswerService implements driving.AnswerService for testing.
type MockAnswerService struct {
	AnswerFunc func(ctx context.Context, question string) (domain.Answer, error)
}

func (m *MockAnswerService) Answer(ctx context.Context, question string) (domain.Answer, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question)
	}
	return domain.Answer{Question: question, Text: "ok", Confidence: domain.ConfidenceGrounded}, nil
}

func (m *MockAnswerService) Retrieve(context.Context, string) ([]domain.ScoredChunk, error) {
	return nil, nil
}

func (m *MockAnswerService) Info() domain.IndexInfo {
	return domain.IndexInfo{}
}

// MockWellnessService implements driving.WellnessService for testing.
type MockWellnessService struct {
	Quote    string
	QuoteErr error
	Tips     []string
}

func (m *MockWellnessService) Moods() []domain.Mood {
	return domain.AllMoods()
}

func (m *MockWellnessService) QuoteOfTheDay(context.Context, time.Time) (string, error) {
	return m.Quote, m.QuoteErr
}

func (m *MockWellnessService) TipsForMood(context.Context, domain.Mood) ([]string, error) {
	return m.Tips, nil
}

func (m *MockWellnessService) SuggestedQuestions(mood domain.Mood) ([]string, error) {
	return mood.SuggestedQuestions(), nil
}

// MockVoiceService records spoken phrases.
type MockVoiceService struct {
	mu     sync.Mutex
	Spoken []string
}

func (m *MockVoiceService) Say(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
}

func (m *MockVoiceService) Enabled() bool {
	return true
}

func TestNewPorts(t *testing.T) {
	answer := &MockAnswerService{}
	wellness := &MockWellnessService{}

	p := NewPorts(answer, wellness)

	require.NotNil(t, p)
	assert.Same(t, answer, p.Answer)
	assert.Same(t, wellness, p.Wellness)
	assert.Nil(t, p.Voice)
	assert.NoError(t, p.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing answer", &Ports{Wellness: &MockWellnessService{}}, ErrMissingAnswerService},
		{"missing wellness", &Ports{Answer: &MockAnswerService{}}, ErrMissingWellnessService},
		{"optional ports omitted", NewPorts(&MockAnswerService{}, &MockWellnessService{}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
