// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
)

// ChoiceList displays a navigable list of labels.
type ChoiceList struct {
	title    string
	items    []string
	selected int
	focused  bool
	styles   *styles.Styles
	height   int
}

// NewChoiceList creates a focused list with an optional title.
func NewChoiceList(s *styles.Styles, title string) *ChoiceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ChoiceList{
		title:   title,
		styles:  s,
		focused: true,
		height:  12,
	}
}

// Init initialises the list.
func (c *ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *ChoiceList) Update(msg tea.Msg) (*ChoiceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the visible window of items.
func (c *ChoiceList) View() string {
	lines := make([]string, 0, len(c.items)+2)
	if c.title != "" {
		lines = append(lines, c.styles.Subtitle.Render(c.title))
	}
	if len(c.items) == 0 {
		lines = append(lines, c.styles.Muted.Render("  (none)"))
		return strings.Join(lines, "\n")
	}

	visible := c.height - 1
	if visible < 1 {
		visible = 1
	}
	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > len(c.items) {
		end = len(c.items)
	}

	for i := start; i < end; i++ {
		if i == c.selected && c.focused {
			lines = append(lines, c.styles.Selected.Render("> "+c.items[i]))
			continue
		}
		lines = append(lines, c.styles.Normal.Render("  "+c.items[i]))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and resets the selection.
func (c *ChoiceList) SetItems(items []string) {
	c.items = items
	c.selected = 0
}

// Items returns the current items.
func (c *ChoiceList) Items() []string {
	return c.items
}

// Selected returns the index of the selected item.
func (c *ChoiceList) Selected() int {
	return c.selected
}

// SelectedItem returns the selected label and false when the list is empty.
func (c *ChoiceList) SelectedItem() (string, bool) {
	if c.selected < 0 || c.selected >= len(c.items) {
		return "", false
	}
	return c.items[c.selected], true
}

// MoveUp moves selection up.
func (c *ChoiceList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *ChoiceList) MoveDown() {
	if c.selected < len(c.items)-1 {
		c.selected++
	}
}

// SetFocused toggles the selection highlight.
func (c *ChoiceList) SetFocused(focused bool) {
	c.focused = focused
}

// Focused reports whether the list has focus.
func (c *ChoiceList) Focused() bool {
	return c.focused
}

// SetHeight sets how many rows the list may use, title included.
func (c *ChoiceList) SetHeight(height int) {
	c.height = height
}

// Len returns the number of items.
func (c *ChoiceList) Len() int {
	return len(c.items)
}
