package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/emoticare/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	result := &InitResult{}
	// Should not panic
	result.Close()
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantModel   string
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  true,
		},
		{
			name:      "local provider",
			settings:  &domain.EmbeddingSettings{Provider: domain.AIProviderLocal},
			wantModel: "hashing",
		},
		{
			name: "ollama provider",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
			wantModel: "ollama/nomic-embed-text",
		},
		{
			name: "openai provider",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
			wantModel: "openai/text-embedding-3-small",
		},
		{
			name:        "openai without key",
			settings:    &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantErr:     true,
			errContains: "API key",
		},
		{
			name:        "anthropic provider",
			settings:    &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantErr:     true,
			errContains: "anthropic does not support embeddings",
		},
		{
			name:     "unknown provider",
			settings: &domain.EmbeddingSettings{Provider: "cohere"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestCreateEmbeddingService_OllamaDimensions(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOllama, Model: "mxbai-embed-large"})
	require.NoError(t, err)
	assert.Equal(t, 1024, svc.Dimensions())

	svc, err = CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderLocal, Dimensions: 128})
	require.NoError(t, err)
	assert.Equal(t, 128, svc.Dimensions())
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantModel string
		wantErr   bool
	}{
		{"nil settings", nil, "", true},
		{"local", &domain.LLMSettings{Provider: domain.AIProviderLocal}, "extractive", false},
		{"ollama", &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}, "llama3.2", false},
		{"openai", &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"}, "gpt-4o-mini", false},
		{"anthropic", &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"}, "claude-3-5-sonnet-latest", false},
		{"anthropic without key", &domain.LLMSettings{Provider: domain.AIProviderAnthropic}, "", true},
		{"unknown", &domain.LLMSettings{Provider: "cohere"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestCreateLLMService_RateLimited(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{Provider: domain.AIProviderLocal, RequestsPerSecond: 2})
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.LLMService{}, svc)
}

func TestInit_LocalDefaults(t *testing.T) {
	settings := domain.DefaultAppSettings()
	result, err := Init(&settings)
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, "hashing", result.EmbeddingService.ModelName())
	assert.Equal(t, "extractive", result.LLMService.ModelName())
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  srv.URL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestCreateAndValidateLLMService_Unsupported(t *testing.T) {
	_, err := CreateAndValidateLLMService(&domain.LLMSettings{Provider: "cohere"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
