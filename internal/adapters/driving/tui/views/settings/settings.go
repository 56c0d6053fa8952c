// Package settings provides a read-only overview of the active configuration.
// Changes are made with the settings command of the CLI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// ErrNoSettingsService is returned when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// View shows the current settings and whether they validate.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	// validation is the result of the last Validate call; nil until checked.
	validated     bool
	validationErr error

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.settings = msg.Settings
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			v.validated = false
			return v, v.loadSettings()
		case "v":
			if v.settingsService != nil {
				v.validated = true
				v.validationErr = v.settingsService.Validate()
			}
			return v, nil
		}
	}
	return v, nil
}

// View renders the settings overview.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if s := v.settings; s != nil {
		v.section(&b, "Document", [][2]string{
			{"Path", s.Document.Path},
			{"Quotes", s.Content.QuotesPath},
			{"Tips", s.Content.TipsPath},
		})
		v.section(&b, "Embedding", [][2]string{
			{"Provider", providerLabel(s.Embedding.Provider, s.Embedding.IsConfigured())},
			{"Model", s.Embedding.Model},
		})
		v.section(&b, "Answer model", [][2]string{
			{"Provider", providerLabel(s.LLM.Provider, s.LLM.IsConfigured())},
			{"Model", s.LLM.Model},
			{"Max tokens", fmt.Sprintf("%d", s.LLM.MaxTokens)},
		})
		v.section(&b, "Retrieval", [][2]string{
			{"Top k", fmt.Sprintf("%d", s.Retrieval.TopK)},
			{"Min score", fmt.Sprintf("%.2f", s.Retrieval.MinScore)},
			{"Answer length", fmt.Sprintf("%d chars", s.Retrieval.MaxAnswerChars)},
		})
		v.section(&b, "Speech", [][2]string{
			{"Enabled", fmt.Sprintf("%t", s.Speech.Enabled)},
			{"Provider", string(s.Speech.Provider)},
		})
	}

	if v.validated {
		if v.validationErr != nil {
			b.WriteString(v.styles.Warning.Render("Not ready: " + v.validationErr.Error()))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[v] Validate  [r] Reload  [Esc] Back"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Change values with: emoticare settings set <key> <value>"))
	return b.String()
}

func (v *View) section(b *strings.Builder, title string, rows [][2]string) {
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		value := r[1]
		if value == "" {
			value = "(not set)"
		}
		b.WriteString(fmt.Sprintf("  %-14s %s\n", r[0]+":", value))
	}
	b.WriteString("\n")
}

func providerLabel(p domain.AIProvider, configured bool) string {
	if p == "" {
		return ""
	}
	if !configured {
		return string(p) + " (needs API key)"
	}
	return string(p)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last loading error.
func (v *View) Err() error {
	return v.err
}

// Reset clears validation results.
func (v *View) Reset() {
	v.validated = false
	v.validationErr = nil
}
