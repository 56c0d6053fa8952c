package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// Ensure WellnessService implements the interface.
var _ driving.WellnessService = (*WellnessService)(nil)

// WellnessService serves moods, quotes and relaxation tips.
type WellnessService struct {
	quotes driven.QuoteStore
	tips   driven.TipStore
}

// NewWellnessService creates a wellness service.
func NewWellnessService(quotes driven.QuoteStore, tips driven.TipStore) *WellnessService {
	return &WellnessService{quotes: quotes, tips: tips}
}

// Moods returns the supported moods in display order.
func (s *WellnessService) Moods() []domain.Mood {
	return domain.AllMoods()
}

// QuoteOfTheDay picks a quote by hashing the local calendar date, so every
// call on the same day agrees.
func (s *WellnessService) QuoteOfTheDay(ctx context.Context, t time.Time) (string, error) {
	quotes, err := s.quotes.LoadQuotes(ctx)
	if err != nil {
		return "", fmt.Errorf("loading quotes: %w", err)
	}
	if len(quotes) == 0 {
		return "", domain.ErrNoQuotes
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(t.Format(time.DateOnly)))
	return quotes[h.Sum32()%uint32(len(quotes))], nil
}

// TipsForMood returns up to domain.MaxTipsPerMood tips in file order.
func (s *WellnessService) TipsForMood(ctx context.Context, mood domain.Mood) ([]string, error) {
	if !mood.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMood, mood)
	}

	tips, err := s.tips.LoadTips(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("loading tips: %w", err)
	}
	if len(tips) > domain.MaxTipsPerMood {
		tips = tips[:domain.MaxTipsPerMood]
	}
	return tips, nil
}

// SuggestedQuestions returns the canned questions for the mood.
func (s *WellnessService) SuggestedQuestions(mood domain.Mood) ([]string, error) {
	if !mood.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMood, mood)
	}
	return mood.SuggestedQuestions(), nil
}
