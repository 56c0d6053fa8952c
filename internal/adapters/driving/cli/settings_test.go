package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

type mockSettingsService struct {
	settings    *domain.AppSettings
	validateErr error
	setErr      error
	sets        map[string]string
}

func newMockSettings() *mockSettingsService {
	s := domain.DefaultAppSettings()
	return &mockSettingsService{settings: &s, sets: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) { return m.settings, nil }
func (m *mockSettingsService) Save(*domain.AppSettings) error    { return nil }
func (m *mockSettingsService) Validate() error                   { return m.validateErr }
func (m *mockSettingsService) Keys() []string {
	return []string{"document.path", "llm.api_key", "retrieval.top_k"}
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets[key] = value
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(domain.AIProvider, string, string) error {
	return nil
}

func (m *mockSettingsService) SetLLMProvider(domain.AIProvider, string, string) error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) GetPipelineConfig() domain.PipelineConfig {
	return domain.PipelineConfig{}
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return nil }
func (m *mockSettingsService) ValidateLLMConfig() error       { return nil }

func TestSettingsShow(t *testing.T) {
	settings := newMockSettings()

	out, err := execute(t, &Services{Settings: settings}, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "data/mental_health_tips.md")
	assert.Contains(t, out, "[Retrieval]")
	assert.Contains(t, out, "Top K: 4")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_InvalidConfig(t *testing.T) {
	settings := newMockSettings()
	settings.validateErr = domain.ErrLLMUnavailable

	out, err := execute(t, &Services{Settings: settings}, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "settings wizard")
}

func TestSettingsSet(t *testing.T) {
	settings := newMockSettings()

	out, err := execute(t, &Services{Settings: settings}, "settings", "set", "retrieval.top_k", "6")

	require.NoError(t, err)
	assert.Equal(t, "6", settings.sets["retrieval.top_k"])
	assert.Contains(t, out, "retrieval.top_k set to 6")
}

func TestSettingsSet_MasksSecrets(t *testing.T) {
	settings := newMockSettings()

	out, err := execute(t, &Services{Settings: settings}, "settings", "set", "llm.api_key", "sk-abcdefghijklmnop")

	require.NoError(t, err)
	assert.Equal(t, "sk-abcdefghijklmnop", settings.sets["llm.api_key"])
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
}

func TestSettingsSet_NegativeValueIsAnArgument(t *testing.T) {
	settings := newMockSettings()

	_, err := execute(t, &Services{Settings: settings}, "settings", "set", "retrieval.min_score", "-0.5")

	require.NoError(t, err)
	assert.Equal(t, "-0.5", settings.sets["retrieval.min_score"])
}

func TestSettingsSet_Errors(t *testing.T) {
	t.Run("missing value", func(t *testing.T) {
		_, err := execute(t, &Services{Settings: newMockSettings()}, "settings", "set", "retrieval.top_k")
		assert.Error(t, err)
	})

	t.Run("rejected", func(t *testing.T) {
		settings := newMockSettings()
		settings.setErr = domain.ErrInvalidInput

		_, err := execute(t, &Services{Settings: settings}, "settings", "set", "retrieval.top_k", "-1")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := execute(t, &Services{}, "settings", "set", "retrieval.top_k", "3")
		assert.ErrorIs(t, err, errNotConfigured)
	})
}

func TestSettingsKeys(t *testing.T) {
	out, err := execute(t, &Services{Settings: newMockSettings()}, "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "document.path")
	assert.Contains(t, out, "llm.api_key")
}
