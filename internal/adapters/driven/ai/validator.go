package ai

import (
	"fmt"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks that the configured encoder and answer model can
// be reached. Incomplete settings fail before any network call.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the configured embedding provider.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	if config == nil || !config.IsConfigured() {
		return fmt.Errorf("%w: embedding provider is not configured", domain.ErrEmbeddingUnavailable)
	}
	logger.Debug("Validating embedding provider %s", config.Provider)
	return ValidateEmbeddingConfig(config)
}

// ValidateLLM pings the configured answer model.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	if config == nil || !config.IsConfigured() {
		return fmt.Errorf("%w: answer model is not configured", domain.ErrLLMUnavailable)
	}
	logger.Debug("Validating LLM provider %s", config.Provider)
	return ValidateLLMConfig(config)
}
