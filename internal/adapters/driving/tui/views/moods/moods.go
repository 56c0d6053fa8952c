// Package moods provides the mood picker with the quote of the day and
// relaxation tips for the picked mood.
package moods

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// now is swapped in tests.
var now = time.Now

// View lists the moods and shows content for the chosen one.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	wellness driving.WellnessService
	ctx      context.Context

	list  *list.ChoiceList
	moods []domain.Mood

	// mood is the mood whose content is shown or loading. Empty while picking.
	mood    domain.Mood
	loading bool
	quote   string
	tips    []string
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a mood picker backed by the wellness service.
func NewView(s *styles.Styles, wellness driving.WellnessService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		wellness: wellness,
		ctx:      context.Background(),
		list:     list.NewChoiceList(s, "How are you feeling today?"),
		width:    80,
		height:   24,
	}
	if wellness != nil {
		v.moods = wellness.Moods()
	}
	labels := make([]string, len(v.moods))
	for i, m := range v.moods {
		labels[i] = m.String()
	}
	v.list.SetItems(labels)
	return v
}

// WithContext sets the context used for loading content.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the mood view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.MoodContentLoaded:
		if msg.Mood != v.mood {
			return v, nil
		}
		v.loading = false
		v.quote = msg.Quote
		v.tips = msg.Tips
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Back) {
		if v.mood != "" {
			v.Reset()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.mood != "" {
		if keymap.Matches(k, v.keymap.Select) && !v.loading {
			mood := v.mood
			return v, func() tea.Msg {
				return messages.MoodSelected{Mood: mood}
			}
		}
		return v, nil
	}

	if keymap.Matches(k, v.keymap.Select) {
		i := v.list.Selected()
		if i < 0 || i >= len(v.moods) {
			return v, nil
		}
		v.mood = v.moods[i]
		v.loading = true
		v.quote, v.tips, v.err = "", nil, nil
		return v, v.loadContent(v.mood)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// loadContent fetches the quote and tips. A missing quote does not hide the tips.
func (v *View) loadContent(mood domain.Mood) tea.Cmd {
	wellness := v.wellness
	ctx := v.ctx
	return func() tea.Msg {
		if wellness == nil {
			return messages.MoodContentLoaded{Mood: mood, Err: domain.ErrInvalidInput}
		}
		quote, qerr := wellness.QuoteOfTheDay(ctx, now())
		tips, terr := wellness.TipsForMood(ctx, mood)
		return messages.MoodContentLoaded{
			Mood:  mood,
			Quote: quote,
			Tips:  tips,
			Err:   errors.Join(qerr, terr),
		}
	}
}

// View renders the picker or the mood content.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("EmotiCare"))
	b.WriteString("\n\n")

	if v.mood == "" {
		b.WriteString(v.list.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Choose  [Esc] Back"))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render("Feeling " + v.mood.String()))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}

	if v.quote != "" {
		b.WriteString(v.styles.Subtitle.Render("Quote of the Day"))
		b.WriteString("\n")
		b.WriteString(v.styles.Quote.Width(v.contentWidth()).Render(v.quote))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Relaxation Tips for You"))
	b.WriteString("\n")
	if len(v.tips) == 0 {
		b.WriteString(v.styles.Muted.Render("  No tips for this mood yet."))
		b.WriteString("\n")
	}
	for _, tip := range v.tips {
		b.WriteString(v.styles.Tip.Render("✓ " + tip))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Talk about it  [Esc] Pick another mood"))
	return b.String()
}

func (v *View) contentWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetHeight(height - 6)
}

// Reset returns to the picker.
func (v *View) Reset() {
	v.mood = ""
	v.loading = false
	v.quote = ""
	v.tips = nil
	v.err = nil
}

// Mood returns the mood being shown, or empty while picking.
func (v *View) Mood() domain.Mood {
	return v.mood
}

// Tips returns the tips shown for the current mood.
func (v *View) Tips() []string {
	return v.tips
}

// Quote returns the quote of the day once loaded.
func (v *View) Quote() string {
	return v.quote
}

// Err returns the last loading error.
func (v *View) Err() error {
	return v.err
}
