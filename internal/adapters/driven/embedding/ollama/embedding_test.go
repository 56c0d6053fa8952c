package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

func newServer(t *testing.T, dims int, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/embed":
			*calls++
			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			resp := embedResponse{}
			for i := range req.Input {
				v := make([]float64, dims)
				v[0] = float64(i + 1)
				resp.Embeddings = append(resp.Embeddings, v)
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, "ollama/all-minilm", s.ModelName())
	assert.NoError(t, s.Close())
}

func TestEmbedBatch_Batches(t *testing.T) {
	var calls int
	srv := newServer(t, 4, &calls)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 4, BatchSize: 2})
	out, err := s.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, 2, calls)
	assert.Equal(t, float32(1), out[2][0])
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	var calls int
	srv := newServer(t, 8, &calls)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 4})
	_, err := s.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestEmbed_EmptyText(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := s.Embed(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestEmbed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewEmbeddingService(Config{BaseURL: srv.URL}).Embed(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.Contains(t, err.Error(), "model not found")
}

func TestPing(t *testing.T) {
	var calls int
	srv := newServer(t, 4, &calls)
	defer srv.Close()

	assert.NoError(t, NewEmbeddingService(Config{BaseURL: srv.URL}).Ping(context.Background()))
	assert.Error(t, NewEmbeddingService(Config{BaseURL: srv.URL + "/missing"}).Ping(context.Background()))
}
