// Package ratelimit wraps an LLMService with a token bucket so remote
// providers are not called faster than the configured rate.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: 1).
	BurstSize int
}

// LLMService delays Generate calls to respect the configured rate.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// Wrap returns next unchanged when RequestsPerSecond is not positive.
func Wrap(next driven.LLMService, cfg Config) driven.LLMService {
	if cfg.RequestsPerSecond <= 0 {
		return next
	}
	return New(next, cfg)
}

// New creates a rate-limited LLM service.
func New(next driven.LLMService, cfg Config) *LLMService {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Generate waits for a token then delegates.
// A context that ends while waiting returns its error.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.next.Generate(ctx, prompt, opts)
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not rate limited.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
