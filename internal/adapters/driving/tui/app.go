package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/views/moods"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// quoteLoaded carries the quote of the day shown on the menu.
type quoteLoaded struct {
	quote string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView     *menu.View
	moodsView    *moods.View
	chatView     *chat.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// welcomed is set once the welcome phrase has been spoken.
	welcomed bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		moodsView:    moods.NewView(s, ports.Wellness),
		chatView:     chat.NewView(s, ports.Answer, ports.Wellness, ports.Voice),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.moodsView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It speaks the welcome once and starts background loads.
func (a *App) Init() tea.Cmd {
	a.welcome()
	return tea.Batch(
		tea.SetWindowTitle("EmotiCare"),
		a.loadQuote(),
		a.waitForPromptChange(),
	)
}

func (a *App) welcome() {
	if a.welcomed {
		return
	}
	a.welcomed = true
	if a.ports.Voice != nil {
		a.ports.Voice.Say(domain.WelcomeMessage)
	}
}

func (a *App) loadQuote() tea.Cmd {
	wellness := a.ports.Wellness
	ctx := a.ctx
	return func() tea.Msg {
		quote, err := wellness.QuoteOfTheDay(ctx, now())
		if err != nil {
			logger.Debug("quote of the day: %v", err)
			return nil
		}
		return quoteLoaded{quote: quote}
	}
}

// waitForPromptChange blocks on the next prompt edit. It is re-armed after
// each notification.
func (a *App) waitForPromptChange() tea.Cmd {
	ch := a.ports.PromptChanges
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-ch
		if !ok {
			return nil
		}
		return messages.PromptReloaded{Name: name}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case quoteLoaded:
		a.menuView.SetQuote(msg.quote)
		return a, nil

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.MoodSelected:
		a.chatView.SetMood(msg.Mood)
		a.currentView = messages.ViewChat
		return a, a.chatView.Init()

	case messages.MoodContentLoaded:
		a.moodsView, cmd = a.moodsView.Update(msg)
		return a, cmd

	case messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.PromptReloaded:
		logger.Info("prompt %q reloaded", msg.Name)
		a.chatView.SetNotice("Prompt reloaded: " + msg.Name)
		return a, a.waitForPromptChange()

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewChat {
			a.chatView, cmd = a.chatView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the chat input.
	if a.currentView == messages.ViewChat {
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewMoods:
		a.moodsView, cmd = a.moodsView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewMoods:
		a.moodsView.Reset()
		return a.moodsView.Init()
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMoods:
		return a.moodsView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu and moods:
  j/k, ↑/↓    Navigate
  enter       Select
  q           Quit

Chat:
  (type)      Enter a question
  tab         Switch to suggested questions
  enter       Ask
  ctrl+d      Say goodbye

Settings:
  v           Validate
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Conversation returns the session log.
func (a *App) Conversation() domain.Conversation {
	return a.chatView.Conversation()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.moodsView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}

// now is swapped in tests.
var now = time.Now
