package domain

import "strings"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderLocal runs in-process with no network access.
	// Embeddings use feature hashing; answers are extracted from passages.
	AIProviderLocal AIProvider = "local"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderLocal, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs on the user's machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderLocal || p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderLocal:
		return "Built-in (offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the vector size. Zero uses the model default.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds answer model configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// MaxTokens bounds the generated answer length.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// RequestsPerSecond throttles calls to the model. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings controls how questions are answered.
type RetrievalSettings struct {
	// TopK is the number of chunks retrieved per question.
	TopK int

	// MinScore drops retrieved chunks scoring below it. Zero keeps everything.
	MinScore float64

	// MaxAnswerChars truncates the post-processed answer.
	MaxAnswerChars int

	// FallbackAnswer is returned when nothing relevant is retrieved.
	FallbackAnswer string
}

// DocumentSettings locates the support document.
type DocumentSettings struct {
	Path string
}

// ContentSettings locates quote and tip collections.
type ContentSettings struct {
	QuotesPath string
	TipsPath   string
}

// IndexSettings controls persistence of the built vector index.
type IndexSettings struct {
	// Persist caches embeddings on disk between runs.
	Persist bool

	// DataDir holds the index database. Empty uses the config directory.
	DataDir string
}

// SpeechProvider identifies a text-to-speech backend.
type SpeechProvider string

// Available speech providers.
const (
	SpeechProviderNone    SpeechProvider = "none"
	SpeechProviderCommand SpeechProvider = "command"
	SpeechProviderOpenAI  SpeechProvider = "openai"
)

// IsValid returns true if the speech provider is recognised.
func (p SpeechProvider) IsValid() bool {
	switch p {
	case SpeechProviderNone, SpeechProviderCommand, SpeechProviderOpenAI:
		return true
	default:
		return false
	}
}

// SpeechSettings configures spoken output.
type SpeechSettings struct {
	Enabled  bool
	Provider SpeechProvider

	// Voice is the provider voice name (e.g. "alloy").
	Voice string

	// APIKey is used by the OpenAI provider.
	APIKey string

	// Player is the command that plays generated audio files.
	Player string

	// Command is the system speech command for the command provider.
	Command string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Document  DocumentSettings
	Content   ContentSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
	Index     IndexSettings
	Speech    SpeechSettings
}

// Default retrieval values.
const (
	DefaultTopK           = 4
	DefaultMaxAnswerChars = 300
	DefaultMaxTokens      = 512
	DefaultFallbackAnswer = "I couldn't find anything about that in my notes. " +
		"Try rephrasing, or talk to someone you trust."
)

// DefaultAppSettings returns settings with sensible defaults.
// Both AI roles default to the offline provider so the assistant works
// without network access or API keys.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Document: DocumentSettings{
			Path: "data/mental_health_tips.md",
		},
		Content: ContentSettings{
			QuotesPath: "data/quotes.txt",
			TipsPath:   "data/relaxation_tips.json",
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderLocal,
		},
		LLM: LLMSettings{
			Provider:  AIProviderLocal,
			MaxTokens: DefaultMaxTokens,
		},
		Retrieval: RetrievalSettings{
			TopK:           DefaultTopK,
			MaxAnswerChars: DefaultMaxAnswerChars,
			FallbackAnswer: DefaultFallbackAnswer,
		},
		Index: IndexSettings{
			Persist: true,
		},
		Speech: SpeechSettings{
			Enabled:  false,
			Provider: SpeechProviderCommand,
			Voice:    "alloy",
			Player:   "ffplay -nodisp -autoexit -loglevel quiet",
			Command:  "espeak",
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderLocal,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support answer generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderLocal,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderLocal:  "hashing",
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderLocal:     "extractive",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"hashing": 384,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Chunks are 500 characters with 50 characters of overlap.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": 500,
				"overlap":    50,
			},
		},
	}
}

// IsSecretSettingKey reports whether a dotted settings key holds a credential.
func IsSecretSettingKey(key string) bool {
	return strings.HasSuffix(key, ".api_key")
}
