package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embedErr error
	llmErr   error

	lastEmbedding *domain.EmbeddingSettings
	lastLLM       *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	m.lastEmbedding = cfg
	return m.embedErr
}

func (m *mockAIValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.lastLLM = cfg
	return m.llmErr
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"document.path":              "/tmp/tips.pdf",
		"embedding.provider":         "openai",
		"embedding.model":            "text-embedding-3-large",
		"embedding.api_key":          "sk-embed",
		"llm.provider":               "anthropic",
		"llm.temperature":            0.7,
		"retrieval.top_k":            int64(6),
		"retrieval.min_score":        0.25,
		"retrieval.max_answer_chars": 120,
		"index.persist":              false,
		"speech.enabled":             true,
		"speech.provider":            "openai",
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/tips.pdf", settings.Document.Path)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, "sk-embed", settings.Embedding.APIKey)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.InDelta(t, 0.7, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, 6, settings.Retrieval.TopK)
	assert.InDelta(t, 0.25, settings.Retrieval.MinScore, 1e-9)
	assert.Equal(t, 120, settings.Retrieval.MaxAnswerChars)
	assert.False(t, settings.Index.Persist)
	assert.True(t, settings.Speech.Enabled)
	assert.Equal(t, domain.SpeechProviderOpenAI, settings.Speech.Provider)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"embedding.provider": "invalid_provider",
		"llm.provider":       "gpt-9000",
		"speech.provider":    "parrot",
		"retrieval.top_k":    -3,
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.Speech.Provider, settings.Speech.Provider)
	assert.Equal(t, defaults.Retrieval.TopK, settings.Retrieval.TopK)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	settings.Document.Path = "guide.md"
	settings.LLM.Provider = domain.AIProviderOpenAI
	settings.LLM.Model = "gpt-4o"
	settings.LLM.APIKey = "sk-llm"
	settings.Retrieval.TopK = 7

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "guide.md", got.Document.Path)
	assert.Equal(t, domain.AIProviderOpenAI, got.LLM.Provider)
	assert.Equal(t, "gpt-4o", got.LLM.Model)
	assert.Equal(t, "sk-llm", got.LLM.APIKey)
	assert.Equal(t, 7, got.Retrieval.TopK)
}

func TestSettingsService_Save_EmptyAPIKeyKeepsStored(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"llm.api_key": "sk-existing"})
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "sk-existing", store.GetString("llm.api_key"))
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{key: "retrieval.top_k", value: "8", want: 8},
		{key: "retrieval.min_score", value: "0.3", want: 0.3},
		{key: "index.persist", value: "false", want: false},
		{key: "speech.enabled", value: " true ", want: true},
		{key: "llm.provider", value: "ollama", want: "ollama"},
		{key: "embedding.provider", value: "openai", want: "openai"},
		{key: "speech.provider", value: "command", want: "command"},
		{key: "document.path", value: "notes.txt", want: "notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, nil)

			require.NoError(t, service.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "search.mode", value: "hybrid"},
		{name: "not an int", key: "retrieval.top_k", value: "many"},
		{name: "negative int", key: "retrieval.max_answer_chars", value: "-1"},
		{name: "not a float", key: "llm.temperature", value: "warm"},
		{name: "not a bool", key: "index.persist", value: "maybe"},
		{name: "embedding provider without embeddings", key: "embedding.provider", value: "anthropic"},
		{name: "unknown llm provider", key: "llm.provider", value: "gpt-9000"},
		{name: "unknown speech provider", key: "speech.provider", value: "parrot"},
		{name: "empty document path", key: "document.path", value: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, nil)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()

	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "retrieval.top_k")
	assert.Contains(t, keys, "pipeline.chunker.overlap")
	assert.Equal(t, keys, NewSettingsService(memory.NewConfigStore(), nil).Keys())
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	t.Run("ollama gets default model and base URL", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)

		require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
		assert.Equal(t, "all-minilm", settings.Embedding.Model)
		assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
		assert.Equal(t, 384, settings.Embedding.Dimensions)
	})

	t.Run("openai clears base URL", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{"embedding.base_url": "http://localhost:11434"})
		service := NewSettingsService(store, nil)

		require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "text-embedding-3-large", "sk-test"))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Empty(t, settings.Embedding.BaseURL)
		assert.Equal(t, "sk-test", settings.Embedding.APIKey)
		assert.Equal(t, 3072, settings.Embedding.Dimensions)
	})

	errorCases := []struct {
		name     string
		provider domain.AIProvider
		apiKey   string
	}{
		{name: "invalid provider", provider: "invalid"},
		{name: "no embeddings", provider: domain.AIProviderAnthropic, apiKey: "key"},
		{name: "missing key", provider: domain.AIProviderOpenAI},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)
			assert.Error(t, service.SetEmbeddingProvider(tt.provider, "", tt.apiKey))
		})
	}
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", "sk-ant"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.Equal(t, "sk-ant", settings.LLM.APIKey)

	assert.Error(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""))
	assert.Error(t, service.SetLLMProvider("bogus", "", ""))
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr error
	}{
		{name: "defaults", values: nil},
		{
			name:    "openai embeddings without key",
			values:  map[string]any{"embedding.provider": "openai"},
			wantErr: domain.ErrEmbeddingUnavailable,
		},
		{
			name:    "anthropic llm without key",
			values:  map[string]any{"llm.provider": "anthropic"},
			wantErr: domain.ErrLLMUnavailable,
		},
		{
			name:    "anthropic embeddings",
			values:  map[string]any{"embedding.provider": "anthropic", "embedding.api_key": "k"},
			wantErr: domain.ErrEmbeddingUnavailable,
		},
		{
			name:    "overlap not smaller than size",
			values:  map[string]any{"pipeline.chunker.chunk_size": 100, "pipeline.chunker.overlap": 100},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "openai speech without key",
			values:  map[string]any{"speech.enabled": true, "speech.provider": "openai"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(tt.values), nil)

			err := service.Validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSettingsService_GetPipelineConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)

		cfg := service.GetPipelineConfig()

		assert.Equal(t, []string{"chunker"}, cfg.Processors)
		assert.Equal(t, 500, cfg.GetProcessorConfig("chunker")["chunk_size"])
	})

	t.Run("overrides", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{
			"pipeline.chunker.chunk_size": int64(800),
		})
		service := NewSettingsService(store, nil)

		cfg := service.GetPipelineConfig()

		chunker := cfg.GetProcessorConfig("chunker")
		assert.Equal(t, int64(800), chunker["chunk_size"])
		assert.Equal(t, 50, chunker["overlap"])
	})
}

func TestSettingsService_ValidateAIConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.NoError(t, service.ValidateEmbeddingConfig())
		assert.NoError(t, service.ValidateLLMConfig())
	})

	t.Run("delegates", func(t *testing.T) {
		validator := &mockAIValidator{llmErr: errors.New("unreachable")}
		service := NewSettingsService(memory.NewConfigStore(), validator)

		assert.NoError(t, service.ValidateEmbeddingConfig())
		assert.ErrorContains(t, service.ValidateLLMConfig(), "unreachable")
		require.NotNil(t, validator.lastEmbedding)
		assert.Equal(t, domain.AIProviderLocal, validator.lastEmbedding.Provider)
		require.NotNil(t, validator.lastLLM)
	})
}
