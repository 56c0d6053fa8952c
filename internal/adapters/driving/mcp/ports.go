package mcp

import (
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Answer answers questions from the indexed document.
	Answer driving.AnswerService

	// Wellness serves moods, quotes and tips.
	Wellness driving.WellnessService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	if p.Wellness == nil {
		return ErrMissingWellnessService
	}
	return nil
}
