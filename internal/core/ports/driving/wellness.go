package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// WellnessService serves mood-related content.
type WellnessService interface {
	// Moods returns the supported moods in display order.
	Moods() []domain.Mood

	// QuoteOfTheDay returns the quote for the calendar day of t.
	// The same day always yields the same quote.
	QuoteOfTheDay(ctx context.Context, t time.Time) (string, error)

	// TipsForMood returns at most domain.MaxTipsPerMood tips.
	TipsForMood(ctx context.Context, mood domain.Mood) ([]string, error)

	// SuggestedQuestions returns the canned questions for the mood.
	SuggestedQuestions(mood domain.Mood) ([]string, error)
}
