package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer       domain.Answer
	hits         []domain.ScoredChunk
	info         domain.IndexInfo
	err          error
	lastQuestion string
}

func (m *mockAnswerService) Answer(_ context.Context, question string) (domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockAnswerService) Retrieve(_ context.Context, question string) ([]domain.ScoredChunk, error) {
	m.lastQuestion = question
	return m.hits, m.err
}

func (m *mockAnswerService) Info() domain.IndexInfo {
	return m.info
}

// mockWellnessService is a mock implementation of driving.WellnessService.
type mockWellnessService struct {
	quote    string
	tips     map[domain.Mood][]string
	err      error
	lastDate time.Time
}

func (m *mockWellnessService) Moods() []domain.Mood {
	return domain.AllMoods()
}

func (m *mockWellnessService) QuoteOfTheDay(_ context.Context, t time.Time) (string, error) {
	m.lastDate = t
	return m.quote, m.err
}

func (m *mockWellnessService) TipsForMood(_ context.Context, mood domain.Mood) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tips[mood], nil
}

func (m *mockWellnessService) SuggestedQuestions(mood domain.Mood) ([]string, error) {
	return mood.SuggestedQuestions(), nil
}

func newTestServer(answer *mockAnswerService, wellness *mockWellnessService) (*Server, error) {
	return NewServer(&Ports{Answer: answer, Wellness: wellness})
}
