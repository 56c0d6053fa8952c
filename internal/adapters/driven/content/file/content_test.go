package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestQuoteStore_LoadQuotes(t *testing.T) {
	path := writeFile(t, "quotes.txt", "  Be kind to yourself.  \n\n\t\nOne step at a time.\r\nYou matter.")
	store := NewQuoteStore(path)

	quotes, err := store.LoadQuotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Be kind to yourself.", "One step at a time.", "You matter."}, quotes)
	assert.Equal(t, path, store.Path())
}

func TestQuoteStore_Empty(t *testing.T) {
	quotes, err := NewQuoteStore(writeFile(t, "quotes.txt", "\n  \n")).LoadQuotes(context.Background())

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuoteStore_Missing(t *testing.T) {
	_, err := NewQuoteStore(filepath.Join(t.TempDir(), "nope.txt")).LoadQuotes(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQuoteStore(writeFile(t, "quotes.txt", "x")).LoadQuotes(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTipStore_JSON(t *testing.T) {
	path := writeFile(t, "tips.json", `{
		"Sad": ["Go for a short walk.", " ", "Call a friend."],
		"anxious": ["Try box breathing."]
	}`)
	store := NewTipStore(path)

	tips, err := store.LoadTips(context.Background(), domain.MoodSad)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go for a short walk.", "Call a friend."}, tips)

	tips, err = store.LoadTips(context.Background(), domain.MoodAnxious)
	require.NoError(t, err)
	assert.Equal(t, []string{"Try box breathing."}, tips)
}

func TestTipStore_YAML(t *testing.T) {
	path := writeFile(t, "tips.yaml", "Tired:\n  - Stretch for two minutes.\n  - Drink a glass of water.\n")

	tips, err := NewTipStore(path).LoadTips(context.Background(), domain.MoodTired)

	require.NoError(t, err)
	assert.Equal(t, []string{"Stretch for two minutes.", "Drink a glass of water."}, tips)
}

func TestTipStore_UnknownMoodIsEmpty(t *testing.T) {
	path := writeFile(t, "tips.json", `{"Sad": ["x"]}`)

	tips, err := NewTipStore(path).LoadTips(context.Background(), domain.MoodBored)

	require.NoError(t, err)
	assert.NotNil(t, tips)
	assert.Empty(t, tips)
}

func TestTipStore_Errors(t *testing.T) {
	_, err := NewTipStore(filepath.Join(t.TempDir(), "missing.json")).LoadTips(context.Background(), domain.MoodSad)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewTipStore(writeFile(t, "tips.json", `{"Sad": "not a list"}`)).LoadTips(context.Background(), domain.MoodSad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
