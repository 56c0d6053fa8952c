// Package chat provides the question and answer view for the TUI.
package chat

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// now is swapped in tests.
var now = time.Now

// reservedLines is the height kept for header, input and status bar.
const reservedLines = 10

// View shows the conversation log, suggested questions and the question input.
// It owns the session's conversation; the answer service only sees one question.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	suggested *list.ChoiceList
	statusbar *status.Bar

	answer   driving.AnswerService
	wellness driving.WellnessService
	voice    driving.VoiceService
	ctx      context.Context

	conversation domain.Conversation
	pending      string
	farewell     bool
	err          error

	// focusSuggestions is true while navigating suggested questions.
	focusSuggestions bool

	width  int
	height int
	ready  bool
}

// NewView creates a chat view. Voice may be nil.
func NewView(
	s *styles.Styles,
	answer driving.AnswerService,
	wellness driving.WellnessService,
	voice driving.VoiceService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	suggested := list.NewChoiceList(s, "Suggested questions")
	suggested.SetFocused(false)

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		suggested: suggested,
		statusbar: status.NewBar(s, km),
		answer:    answer,
		wellness:  wellness,
		voice:     voice,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for answering.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateChat)
	return v.input.Init()
}

// SetMood starts talking about a mood and offers its suggested questions.
func (v *View) SetMood(mood domain.Mood) {
	v.conversation.Mood = mood

	var questions []string
	if v.wellness != nil && mood != "" {
		qs, err := v.wellness.SuggestedQuestions(mood)
		if err == nil {
			questions = qs
		}
	}
	v.suggested.SetItems(questions)
	v.setFocusSuggestions(len(questions) > 0 && v.conversation.Len() == 0)
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(k, v.keymap.Farewell):
		v.farewell = true
		if v.voice != nil {
			v.voice.Say(domain.FarewellMessage)
		}
		return v, nil

	case keymap.Matches(k, v.keymap.SwitchFocus):
		if v.showSuggestions() {
			v.setFocusSuggestions(!v.focusSuggestions)
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Ask):
		return v, v.submit()
	}

	if v.focusSuggestions {
		v.suggested, _ = v.suggested.Update(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit asks the selected suggestion or the typed question.
func (v *View) submit() tea.Cmd {
	if v.pending != "" {
		return nil
	}

	var question string
	if v.focusSuggestions {
		question, _ = v.suggested.SelectedItem()
	} else {
		question = v.input.Value()
	}
	if question == "" {
		return nil
	}

	v.pending = question
	v.farewell = false
	v.err = nil
	v.input.Reset()
	v.statusbar.SetState(status.StateThinking)
	return v.ask(question)
}

func (v *View) ask(question string) tea.Cmd {
	answer := v.answer
	ctx := v.ctx
	return func() tea.Msg {
		if answer == nil {
			return messages.AnswerReceived{Question: question, Err: domain.ErrLLMUnavailable}
		}
		a, err := answer.Answer(ctx, question)
		return messages.AnswerReceived{Question: question, Answer: a, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	if msg.Question != v.pending {
		return
	}
	v.pending = ""

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.conversation.Append(domain.Turn{
		Question: msg.Question,
		Answer:   msg.Answer,
		AskedAt:  now(),
	})
	v.statusbar.SetState(status.StateChat)
	v.statusbar.SetMessage("")
	v.statusbar.SetTurns(v.conversation.Len())

	// Follow-ups are typed.
	v.setFocusSuggestions(false)
}

func (v *View) showSuggestions() bool {
	return v.conversation.Len() == 0 && v.suggested.Len() > 0
}

func (v *View) setFocusSuggestions(on bool) {
	v.focusSuggestions = on
	v.suggested.SetFocused(on)
	if on {
		v.input.Blur()
	} else {
		v.input.Focus()
	}
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	header := v.styles.Title.Render("EmotiCare")
	if v.conversation.Mood != "" {
		header += v.styles.Muted.Render("  feeling " + v.conversation.Mood.String())
	}
	sections = append(sections, header, v.styles.Subtitle.Render("Ask Anything About Mental Health"), "")

	if log := v.renderLog(); log != "" {
		sections = append(sections, log, "")
	}

	if v.showSuggestions() {
		sections = append(sections, v.suggested.View(), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.farewell {
		sections = append(sections, v.styles.Success.Render(domain.FarewellMessage), "")
	}

	sections = append(sections, v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLog renders the most recent turns that fit the view height.
func (v *View) renderLog() string {
	var lines []string
	for _, turn := range v.conversation.Turns {
		lines = append(lines, v.renderTurn(turn)...)
	}
	if v.pending != "" {
		lines = append(lines,
			v.styles.You.Render("You: ")+v.styles.Normal.Render(v.pending),
			v.styles.Muted.Render("EmotiCare is thinking..."),
		)
	}
	if len(lines) == 0 {
		return ""
	}

	budget := v.height - reservedLines
	if v.showSuggestions() {
		budget -= v.suggested.Len() + 2
	}
	if budget < 2 {
		budget = 2
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderTurn(turn domain.Turn) []string {
	marker := v.styles.Success.Render(" (from your notes)")
	if !turn.Answer.Grounded() {
		marker = v.styles.Warning.Render(" (no matching notes)")
	}
	return []string{
		v.styles.You.Render("You: ") + v.styles.Normal.Render(turn.Question),
		v.styles.Assistant.Render("EmotiCare: ") + v.styles.Normal.Render(turn.Answer.Text) + marker,
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.suggested.SetHeight(height / 3)
	v.statusbar.SetWidth(width)
}

// Conversation returns a copy of the session log.
func (v *View) Conversation() domain.Conversation {
	c := v.conversation
	c.Turns = slices.Clone(c.Turns)
	return c
}

// Pending returns the question awaiting an answer.
func (v *View) Pending() string {
	return v.pending
}

// SuggestionsFocused reports whether suggested questions have focus.
func (v *View) SuggestionsFocused() bool {
	return v.focusSuggestions
}

// FarewellShown reports whether the farewell is displayed.
func (v *View) FarewellShown() bool {
	return v.farewell
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetNotice shows a transient message in the status bar.
func (v *View) SetNotice(msg string) {
	v.statusbar.SetState(status.StateNotice)
	v.statusbar.SetMessage(msg)
}
