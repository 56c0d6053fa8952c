package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/normalisers"
	"github.com/custodia-labs/emoticare/internal/postprocessors"
)

const supportDoc = `# Mental Health Tips

## Anxiety
When anxiety rises, breathe in slowly for four counts and out for six.
Grounding yourself by naming five things you can see also helps.

## Sleep
Keep a regular bedtime and avoid screens for an hour before sleep.

## Loneliness
Reach out to a friend or join a group activity to feel connected.
`

func newTestIngestor(t *testing.T) *Ingestor {
	t.Helper()
	cfg := domain.DefaultPipelineConfig()
	pipeline, err := postprocessors.Build(cfg.ProcessorConfigs, cfg.Processors)
	require.NoError(t, err)
	return NewIngestor(normalisers.NewDefaultRegistry(), pipeline, normalisers.DetectMIMEType)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// failingRegistry implements driven.NormaliserRegistry and always fails.
type failingRegistry struct {
	err error
}

func (r *failingRegistry) Normalise(_ context.Context, _ *domain.RawDocument) (*driven.NormaliseResult, error) {
	return nil, r.err
}

func (r *failingRegistry) Register(_ driven.Normaliser) {}

func (r *failingRegistry) SupportedMIMETypes() []string {
	return nil
}

func TestIngestor_Ingest_Markdown(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tips.md", supportDoc)

	ing, err := newTestIngestor(t).Ingest(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Mental Health Tips", ing.Document.Title)
	assert.NotEmpty(t, ing.Document.ID)
	assert.NotEmpty(t, ing.Document.Sections)
	require.NotEmpty(t, ing.Chunks)

	sum := sha256.Sum256([]byte(supportDoc))
	assert.Equal(t, hex.EncodeToString(sum[:]), ing.SourceHash)

	for i, c := range ing.Chunks {
		assert.Equal(t, ing.Document.ID, c.DocumentID)
		assert.Equal(t, i, c.Position)
		assert.NotEmpty(t, c.Content)
	}
}

func TestIngestor_Ingest_StableIDs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tips.md", supportDoc)
	ingestor := newTestIngestor(t)

	first, err := ingestor.Ingest(context.Background(), path)
	require.NoError(t, err)
	second, err := ingestor.Ingest(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Document.ID, second.Document.ID)
	require.Len(t, second.Chunks, len(first.Chunks))
	for i := range first.Chunks {
		assert.Equal(t, first.Chunks[i].ID, second.Chunks[i].ID)
	}
}

func TestIngestor_Ingest_Errors(t *testing.T) {
	dir := t.TempDir()
	badUTF8 := writeFile(t, dir, "bad.txt", string([]byte{0xff, 0xfe, 0xfd}))
	unknown := writeFile(t, dir, "notes.zzqq", "hello")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.md"), wantErr: domain.ErrDocumentNotFound},
		{name: "directory", path: dir, wantErr: domain.ErrDocumentNotFound},
		{name: "unknown extension", path: unknown, wantErr: domain.ErrDocumentParse},
		{name: "invalid text", path: badUTF8, wantErr: domain.ErrDocumentParse},
	}

	ingestor := newTestIngestor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingestor.Ingest(context.Background(), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIngestor_Ingest_WrapsNormaliserErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tips.md", supportDoc)
	cfg := domain.DefaultPipelineConfig()
	pipeline, err := postprocessors.Build(cfg.ProcessorConfigs, cfg.Processors)
	require.NoError(t, err)

	ingestor := NewIngestor(&failingRegistry{err: errors.New("boom")}, pipeline, normalisers.DetectMIMEType)
	_, err = ingestor.Ingest(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrDocumentParse)
	assert.Contains(t, err.Error(), "boom")
}

func TestIngestor_Ingest_KeepsContextErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tips.md", supportDoc)
	cfg := domain.DefaultPipelineConfig()
	pipeline, err := postprocessors.Build(cfg.ProcessorConfigs, cfg.Processors)
	require.NoError(t, err)

	ingestor := NewIngestor(&failingRegistry{err: context.Canceled}, pipeline, normalisers.DetectMIMEType)
	_, err = ingestor.Ingest(context.Background(), path)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrDocumentParse)
}
