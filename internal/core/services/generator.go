package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// Ensure Generator accepts a prompt store.
var _ driven.PromptStoreAware = (*Generator)(nil)

// Generator produces answers from a question and retrieved passages.
type Generator struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    driven.GenerateOptions
}

// NewGenerator creates a generator. opts.MaxTokens defaults to
// domain.DefaultMaxTokens.
func NewGenerator(llm driven.LLMService, opts driven.GenerateOptions) *Generator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = domain.DefaultMaxTokens
	}
	return &Generator{llm: llm, opts: opts}
}

// SetPromptStore sets the prompt store for loading the answer template.
func (g *Generator) SetPromptStore(store driven.PromptStore) {
	g.prompts = store
}

// Generate returns the model's raw answer. An empty passage list still
// produces an answer; the prompt says no context was found.
func (g *Generator) Generate(ctx context.Context, question string, passages []string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is empty", domain.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(g.template(), formatPassages(passages), question)
	logger.Debug("Generating with %s (%d passages, %d prompt chars)", g.llm.ModelName(), len(passages), len(prompt))

	out, err := g.llm.Generate(ctx, prompt, g.opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return out, nil
}

// template loads the answer template, falling back to the built-in one
// when the store is missing, fails, or holds a template with the wrong
// number of placeholders.
func (g *Generator) template() string {
	if g.prompts == nil {
		return driven.DefaultAnswerPrompt
	}
	tmpl, err := g.prompts.Load(driven.PromptAnswer)
	if err != nil {
		logger.Warn("Loading answer prompt: %v (using default)", err)
		return driven.DefaultAnswerPrompt
	}
	if strings.Count(tmpl, "%s") != 2 {
		logger.Warn("Answer prompt must contain exactly two %%s placeholders (using default)")
		return driven.DefaultAnswerPrompt
	}
	return tmpl
}

func formatPassages(passages []string) string {
	var kept []string
	for _, p := range passages {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return driven.NoContextPlaceholder
	}
	return strings.Join(kept, "\n\n")
}
