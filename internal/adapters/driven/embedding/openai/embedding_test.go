package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// embeddingsServer answers /embeddings with vectors in reverse index order.
func embeddingsServer(t *testing.T, dims int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/embeddings"):
			var req struct {
				Input []string `json:"input"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			data := make([]map[string]any, 0, len(req.Input))
			for i := len(req.Input) - 1; i >= 0; i-- {
				v := make([]float64, dims)
				v[0] = float64(i)
				data = append(data, map[string]any{"object": "embedding", "index": i, "embedding": v})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"data":   data,
				"model":  "text-embedding-3-small",
				"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
			})
		case strings.Contains(r.URL.Path, "/models/"):
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "text-embedding-3-small", "object": "model"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewEmbeddingService_RequiresKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.Error(t, err)
}

func TestNewEmbeddingService_Dimensions(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, 1536, s.Dimensions())
	assert.Equal(t, "openai/text-embedding-3-small", s.ModelName())

	s, err = NewEmbeddingService(Config{APIKey: "k", Dimensions: 256})
	require.NoError(t, err)
	assert.Equal(t, 256, s.Dimensions())

	_, err = NewEmbeddingService(Config{APIKey: "k", Model: "text-embedding-ada-002", Dimensions: 256})
	assert.Error(t, err)

	_, err = NewEmbeddingService(Config{APIKey: "k", Model: "custom-model"})
	assert.Error(t, err)
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	srv := embeddingsServer(t, 8)
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Dimensions: 8})
	require.NoError(t, err)

	out, err := s.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, v := range out {
		assert.Len(t, v, 8)
		assert.Equal(t, float32(i), v[0])
	}
}

func TestEmbed_WrongDimensions(t *testing.T) {
	srv := embeddingsServer(t, 4)
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Dimensions: 8})
	require.NoError(t, err)

	_, err = s.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestEmbed_EmptyText(t *testing.T) {
	s, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)
	_, err = s.Embed(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestPing(t *testing.T) {
	srv := embeddingsServer(t, 4)
	defer srv.Close()

	s, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
}
