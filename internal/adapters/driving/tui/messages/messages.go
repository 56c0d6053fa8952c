// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewMoods is the mood picker with quote and tips.
	ViewMoods
	// ViewChat is the question and answer view.
	ViewChat
	// ViewSettings shows the active configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewMoods:
		return "moods"
	case ViewChat:
		return "chat"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// MoodContentLoaded carries the quote of the day and tips for a mood.
type MoodContentLoaded struct {
	Mood  domain.Mood
	Quote string
	Tips  []string
	Err   error
}

// MoodSelected is sent when the user wants to talk about a mood.
type MoodSelected struct {
	Mood domain.Mood
}

// AnswerReceived carries the reply to a question.
type AnswerReceived struct {
	Question string
	Answer   domain.Answer
	Err      error
}

// PromptReloaded signals that a prompt template was edited on disk.
type PromptReloaded struct {
	Name string
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
