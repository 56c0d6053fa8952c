package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

type countingLLM struct {
	calls int
}

func (c *countingLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	c.calls++
	return "ok", nil
}
func (c *countingLLM) ModelName() string            { return "counting" }
func (c *countingLLM) Ping(_ context.Context) error { return nil }
func (c *countingLLM) Close() error                 { return nil }

func TestWrap_DisabledReturnsInner(t *testing.T) {
	inner := &countingLLM{}
	assert.Same(t, driven.LLMService(inner), Wrap(inner, Config{}))
}

func TestGenerate_Delegates(t *testing.T) {
	inner := &countingLLM{}
	s := New(inner, Config{RequestsPerSecond: 1000})

	out, err := s.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "counting", s.ModelName())
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}

func TestGenerate_WaitRespectsDeadline(t *testing.T) {
	inner := &countingLLM{}
	s := New(inner, Config{RequestsPerSecond: 0.01})

	_, err := s.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Generate(ctx, "p", driven.GenerateOptions{})
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
