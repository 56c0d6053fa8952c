// Package tui provides the interactive terminal interface for EmotiCare.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions from the support document.
	Answer driving.AnswerService

	// Wellness serves moods, quotes and tips.
	Wellness driving.WellnessService

	// Voice speaks the welcome and farewell phrases. Optional.
	Voice driving.VoiceService

	// Settings shows the active configuration. Optional.
	Settings driving.SettingsService

	// PromptChanges receives the names of edited prompt templates. Optional.
	PromptChanges <-chan string
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(answer driving.AnswerService, wellness driving.WellnessService) *Ports {
	return &Ports{
		Answer:   answer,
		Wellness: wellness,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	if p.Wellness == nil {
		return ErrMissingWellnessService
	}
	return nil
}
