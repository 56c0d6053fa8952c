package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"ask", km.Ask, []string{"enter"}},
		{"switch focus", km.SwitchFocus, []string{"tab"}},
		{"farewell", km.Farewell, []string{"ctrl+d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 2)
	assert.Equal(t, "quit", help[0].Help().Desc)
	assert.Equal(t, "help", help[1].Help().Desc)
}

func TestKeyMap_ChatHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ChatHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "ask", help[0].Help().Desc)
	assert.Equal(t, "back", help[3].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.Len(t, g, 3)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key     string
		binding key.Binding
		want    bool
	}{
		{"q", km.Quit, true},
		{"ctrl+c", km.Quit, true},
		{"x", km.Quit, false},
		{"tab", km.SwitchFocus, true},
		{"enter", km.Farewell, false},
		{"", km.Help, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, tt.binding))
		})
	}
}
