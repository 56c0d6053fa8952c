package driving

import (
	"context"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// AnswerService answers questions from the support document.
type AnswerService interface {
	// Answer returns a single-line answer grounded in retrieved passages.
	Answer(ctx context.Context, question string) (domain.Answer, error)

	// Retrieve returns the passages most relevant to the question
	// without generating an answer.
	Retrieve(ctx context.Context, question string) ([]domain.ScoredChunk, error)

	// Info describes the indexed document.
	Info() domain.IndexInfo
}
