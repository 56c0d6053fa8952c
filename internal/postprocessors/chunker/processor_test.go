package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

func docWith(sections ...string) *domain.Document {
	doc := &domain.Document{ID: "doc-1"}
	for i, s := range sections {
		doc.Sections = append(doc.Sections, domain.Section{Index: i, Text: s})
	}
	return doc
}

// reassemble rebuilds a section from its chunks by dropping each overlap.
func reassemble(chunks []domain.Chunk, overlap int) string {
	var b strings.Builder
	for i, c := range chunks {
		r := []rune(c.Content)
		if i > 0 {
			r = r[overlap:]
		}
		b.WriteString(string(r))
	}
	return b.String()
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		assert.Equal(t, 500, p.ChunkSize())
		assert.Equal(t, 50, p.Overlap())
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, p.Overlap(), p.ChunkSize())
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, p.ChunkSize())
		assert.Equal(t, DefaultChunkOverlap, p.Overlap())
	})
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}

func TestProcess_520Characters(t *testing.T) {
	text := strings.Repeat("a", 520)
	chunks, err := New().Process(context.Background(), docWith(text), nil)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Offset)
	assert.Len(t, chunks[0].Content, 500)
	assert.Equal(t, 450, chunks[1].Offset)
	assert.Len(t, chunks[1].Content, 70)
}

func TestProcess_ShortSection(t *testing.T) {
	chunks, err := New().Process(context.Background(), docWith("Breathe in for four counts."), nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Breathe in for four counts.", chunks[0].Content)
}

func TestProcess_ExactMultipleHasNoDegenerateTail(t *testing.T) {
	text := strings.Repeat("b", 1000)
	chunks, err := New().Process(context.Background(), docWith(text), nil)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{0, 450, 900}, []int{chunks[0].Offset, chunks[1].Offset, chunks[2].Offset})
	assert.Len(t, chunks[2].Content, 100)
}

func TestProcess_Reconstruction(t *testing.T) {
	sizes := []struct{ size, overlap, n int }{
		{500, 50, 1234},
		{100, 20, 999},
		{10, 0, 95},
		{7, 3, 50},
	}

	for _, s := range sizes {
		var b strings.Builder
		for i := 0; b.Len() < s.n; i++ {
			b.WriteString(string(rune('a' + i%26)))
		}
		text := b.String()

		p := New(WithChunkSize(s.size), WithOverlap(s.overlap))
		chunks, err := p.Process(context.Background(), docWith(text), nil)
		require.NoError(t, err)

		assert.Equal(t, text, reassemble(chunks, s.overlap))
		for _, c := range chunks {
			assert.LessOrEqual(t, len([]rune(c.Content)), s.size)
		}
	}
}

func TestProcess_CountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", 12)
	p := New(WithChunkSize(5), WithOverlap(1))
	chunks, err := p.Process(context.Background(), docWith(text), nil)
	require.NoError(t, err)

	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), 5)
	}
	assert.Equal(t, text, reassemble(chunks, 1))
}

func TestProcess_SectionsAreNotCrossed(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))
	doc := docWith(strings.Repeat("x", 15), "   \n\t", strings.Repeat("y", 8))

	chunks, err := p.Process(context.Background(), doc, nil)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, "doc-1", c.DocumentID)
	}
	assert.Equal(t, 0, chunks[1].Section)
	assert.Equal(t, 2, chunks[2].Section)
	assert.Equal(t, 0, chunks[2].Offset)
	assert.NotContains(t, chunks[1].Content, "y")
}

func TestProcess_EmptyDocument(t *testing.T) {
	chunks, err := New().Process(context.Background(), docWith(), nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcess_StableIDs(t *testing.T) {
	text := strings.Repeat("z", 700)
	first, err := New().Process(context.Background(), docWith(text), nil)
	require.NoError(t, err)
	second, err := New().Process(context.Background(), docWith(text), nil)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
	assert.Equal(t, ChunkID("doc-1", 0, 450), first[1].ID)
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Process(ctx, docWith("text"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
