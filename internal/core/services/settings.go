package services

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocumentPath     = "document.path"
	keyQuotesPath       = "content.quotes_path"
	keyTipsPath         = "content.tips_path"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedDimensions  = "embedding.dimensions"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMMaxTokens     = "llm.max_tokens"
	keyLLMTemperature   = "llm.temperature"
	keyLLMRate          = "llm.requests_per_second"
	keyTopK             = "retrieval.top_k"
	keyMinScore         = "retrieval.min_score"
	keyMaxAnswerChars   = "retrieval.max_answer_chars"
	keyFallbackAnswer   = "retrieval.fallback_answer"
	keyChunkSize        = "pipeline.chunker.chunk_size"
	keyChunkOverlap     = "pipeline.chunker.overlap"
	keyIndexPersist     = "index.persist"
	keyIndexDataDir     = "index.data_dir"
	keySpeechEnabled    = "speech.enabled"
	keySpeechProvider   = "speech.provider"
	keySpeechVoice      = "speech.voice"
	keySpeechAPIKey     = "speech.api_key"
	keySpeechPlayer     = "speech.player"
	keySpeechCommand    = "speech.command"
	defaultOllamaURL    = "http://localhost:11434"
	chunkerProcessor    = "chunker"
)

// valueKind is how a settings key is parsed from text.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// settingKinds lists every key Set accepts.
var settingKinds = map[string]valueKind{
	keyDocumentPath:    kindString,
	keyQuotesPath:      kindString,
	keyTipsPath:        kindString,
	keyEmbedProvider:   kindString,
	keyEmbedModel:      kindString,
	keyEmbedBaseURL:    kindString,
	keyEmbedAPIKey:     kindString,
	keyEmbedDimensions: kindInt,
	keyLLMProvider:     kindString,
	keyLLMModel:        kindString,
	keyLLMBaseURL:      kindString,
	keyLLMAPIKey:       kindString,
	keyLLMMaxTokens:    kindInt,
	keyLLMTemperature:  kindFloat,
	keyLLMRate:         kindFloat,
	keyTopK:            kindInt,
	keyMinScore:        kindFloat,
	keyMaxAnswerChars:  kindInt,
	keyFallbackAnswer:  kindString,
	keyChunkSize:       kindInt,
	keyChunkOverlap:    kindInt,
	keyIndexPersist:    kindBool,
	keyIndexDataDir:    kindString,
	keySpeechEnabled:   kindBool,
	keySpeechProvider:  kindString,
	keySpeechVoice:     kindString,
	keySpeechAPIKey:    kindString,
	keySpeechPlayer:    kindString,
	keySpeechCommand:   kindString,
}

// SettingKeys returns every key accepted by Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}


// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Keys returns every key accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Document: domain.DocumentSettings{
			Path: s.getString(keyDocumentPath, d.Document.Path),
		},
		Content: domain.ContentSettings{
			QuotesPath: s.getString(keyQuotesPath, d.Content.QuotesPath),
			TipsPath:   s.getString(keyTipsPath, d.Content.TipsPath),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(keyEmbedProvider, d.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, d.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // empty is valid for cloud providers
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.getInt(keyEmbedDimensions, d.Embedding.Dimensions),
		},
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, d.LLM.Provider),
			Model:             s.getString(keyLLMModel, d.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL),
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			MaxTokens:         s.getInt(keyLLMMaxTokens, d.LLM.MaxTokens),
			Temperature:       s.getFloat(keyLLMTemperature, d.LLM.Temperature),
			RequestsPerSecond: s.getFloat(keyLLMRate, d.LLM.RequestsPerSecond),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:           s.getInt(keyTopK, d.Retrieval.TopK),
			MinScore:       s.getFloat(keyMinScore, d.Retrieval.MinScore),
			MaxAnswerChars: s.getInt(keyMaxAnswerChars, d.Retrieval.MaxAnswerChars),
			FallbackAnswer: s.getString(keyFallbackAnswer, d.Retrieval.FallbackAnswer),
		},
		Index: domain.IndexSettings{
			Persist: s.getBool(keyIndexPersist, d.Index.Persist),
			DataDir: s.configStore.GetString(keyIndexDataDir),
		},
		Speech: domain.SpeechSettings{
			Enabled:  s.getBool(keySpeechEnabled, d.Speech.Enabled),
			Provider: s.getSpeechProvider(d.Speech.Provider),
			Voice:    s.getString(keySpeechVoice, d.Speech.Voice),
			APIKey:   s.configStore.GetString(keySpeechAPIKey),
			Player:   s.getString(keySpeechPlayer, d.Speech.Player),
			Command:  s.getString(keySpeechCommand, d.Speech.Command),
		},
	}, nil
}

// Save persists application settings. Empty API keys leave stored keys
// untouched.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := map[string]any{
		keyDocumentPath:    settings.Document.Path,
		keyQuotesPath:      settings.Content.QuotesPath,
		keyTipsPath:        settings.Content.TipsPath,
		keyEmbedProvider:   settings.Embedding.Provider.String(),
		keyEmbedModel:      settings.Embedding.Model,
		keyEmbedBaseURL:    settings.Embedding.BaseURL,
		keyEmbedDimensions: settings.Embedding.Dimensions,
		keyLLMProvider:     settings.LLM.Provider.String(),
		keyLLMModel:        settings.LLM.Model,
		keyLLMBaseURL:      settings.LLM.BaseURL,
		keyLLMMaxTokens:    settings.LLM.MaxTokens,
		keyLLMTemperature:  settings.LLM.Temperature,
		keyLLMRate:         settings.LLM.RequestsPerSecond,
		keyTopK:            settings.Retrieval.TopK,
		keyMinScore:        settings.Retrieval.MinScore,
		keyMaxAnswerChars:  settings.Retrieval.MaxAnswerChars,
		keyFallbackAnswer:  settings.Retrieval.FallbackAnswer,
		keyIndexPersist:    settings.Index.Persist,
		keyIndexDataDir:    settings.Index.DataDir,
		keySpeechEnabled:   settings.Speech.Enabled,
		keySpeechProvider:  string(settings.Speech.Provider),
		keySpeechVoice:     settings.Speech.Voice,
		keySpeechPlayer:    settings.Speech.Player,
		keySpeechCommand:   settings.Speech.Command,
	}
	secrets := map[string]string{
		keyEmbedAPIKey:  settings.Embedding.APIKey,
		keyLLMAPIKey:    settings.LLM.APIKey,
		keySpeechAPIKey: settings.Speech.APIKey,
	}
	for key, val := range secrets {
		if val != "" {
			values[key] = val
		}
	}

	for key, val := range values {
		if err := s.configStore.Set(key, val); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set parses value for a single key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	default:
		if err := validateStringSetting(key, value); err != nil {
			return err
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

func validateStringSetting(key, value string) error {
	switch key {
	case keyEmbedProvider:
		if !slices.Contains(domain.AllEmbeddingProviders(), domain.AIProvider(value)) {
			return fmt.Errorf("%w: provider %q does not support embeddings", domain.ErrInvalidInput, value)
		}
	case keyLLMProvider:
		if !slices.Contains(domain.AllLLMProviders(), domain.AIProvider(value)) {
			return fmt.Errorf("%w: invalid LLM provider %q", domain.ErrInvalidInput, value)
		}
	case keySpeechProvider:
		if !domain.SpeechProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid speech provider %q", domain.ErrInvalidInput, value)
		}
	case keyDocumentPath:
		if value == "" {
			return fmt.Errorf("%w: document path cannot be empty", domain.ErrInvalidInput)
		}
	}
	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}

	switch {
	case provider == domain.AIProviderOllama:
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaURL
		}
	default:
		settings.Embedding.BaseURL = ""
	}
	settings.Embedding.APIKey = apiKey

	// A new model means a new vector size.
	settings.Embedding.Dimensions = domain.EmbeddingDimensions()[settings.Embedding.Model]

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	switch {
	case provider == domain.AIProviderOllama:
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	default:
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that the current settings can build a pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Document.Path == "" {
		return fmt.Errorf("%w: document.path is not set", domain.ErrInvalidInput)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not configured",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %q is not configured",
			domain.ErrLLMUnavailable, settings.LLM.Provider)
	}
	if settings.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: retrieval.top_k must be positive", domain.ErrInvalidInput)
	}
	if settings.Retrieval.MaxAnswerChars <= 0 {
		return fmt.Errorf("%w: retrieval.max_answer_chars must be positive", domain.ErrInvalidInput)
	}

	pc := s.GetPipelineConfig()
	chunker := pc.GetProcessorConfig(chunkerProcessor)
	size, _ := toInt(chunker["chunk_size"])
	overlap, _ := toInt(chunker["overlap"])
	if size <= 0 || overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, overlap, size)
	}

	if settings.Speech.Enabled && settings.Speech.Provider == domain.SpeechProviderOpenAI && settings.Speech.APIKey == "" {
		return fmt.Errorf("%w: speech.api_key is required for openai speech", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetPipelineConfig returns the post-processor pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()

	for _, name := range cfg.Processors {
		overrides := s.loadProcessorConfig("pipeline." + name + ".")
		if len(overrides) == 0 {
			continue
		}
		if cfg.ProcessorConfigs == nil {
			cfg.ProcessorConfigs = make(map[string]map[string]any)
		}
		existing := cfg.ProcessorConfigs[name]
		if existing == nil {
			existing = make(map[string]any)
		}
		for k, v := range overrides {
			existing[k] = v
		}
		cfg.ProcessorConfigs[name] = existing
	}

	return cfg
}

// loadProcessorConfig loads config keys with a given prefix into a map.
func (s *SettingsService) loadProcessorConfig(prefix string) map[string]any {
	cfg := make(map[string]any)
	for _, key := range []string{"chunk_size", "overlap"} {
		if val, exists := s.configStore.Get(prefix + key); exists {
			cfg[key] = val
		}
	}
	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getSpeechProvider(defaultVal domain.SpeechProvider) domain.SpeechProvider {
	provider := domain.SpeechProvider(s.configStore.GetString(keySpeechProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// toInt accepts the integer shapes config values arrive in.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
