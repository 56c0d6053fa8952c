package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Turns())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilArgs(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Nil(t, bar.Init())
}

func TestBar_Update_IsPassive(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update("anything")

	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		turns   int
		want    []string
	}{
		{"ready", StateReady, "", 0, []string{"Ready", "q: quit"}},
		{"thinking", StateThinking, "", 0, []string{"Thinking..."}},
		{"error with message", StateError, "model offline", 0, []string{"Error: model offline"}},
		{"error without message", StateError, "", 0, []string{"Error"}},
		{"notice", StateNotice, "Prompt reloaded: answer", 0, []string{"Prompt reloaded: answer"}},
		{"chat single", StateChat, "", 1, []string{"1 question", "enter: ask", "ctrl+d: done"}},
		{"chat many", StateChat, "", 3, []string{"3 questions", "tab: suggestions"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetTurns(tt.turns)

			out := bar.View()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetTurns(4)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Turns())
}
