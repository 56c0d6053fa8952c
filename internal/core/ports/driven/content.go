package driven

import (
	"context"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// QuoteStore loads motivational quotes.
type QuoteStore interface {
	// LoadQuotes returns every non-blank quote in file order.
	LoadQuotes(ctx context.Context) ([]string, error)
}

// TipStore loads relaxation tips keyed by mood.
type TipStore interface {
	// LoadTips returns all tips for the mood in file order.
	// A mood with no entry returns an empty slice, not an error.
	LoadTips(ctx context.Context, mood domain.Mood) ([]string, error)
}
