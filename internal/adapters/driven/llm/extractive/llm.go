// Package extractive provides an offline LLM service that answers by
// selecting the context sentence that best overlaps the question.
//
// It understands prompts shaped like the built-in answer template:
// a "Context:" block followed by a "Question:" line. Prompts without
// those markers are treated as all context, with the final line as the
// question.
package extractive

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Prompt markers recognised in the answer template.
const (
	ContextMarker  = "Context:"
	QuestionMarker = "Question:"
	AnswerMarker   = "Answer:"

	// noContextReply is returned when the prompt carries no usable context.
	noContextReply = "I'm not sure about that one, but taking a slow breath and talking to someone you trust can help."
)

var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// LLMService answers from prompt context without a model.
type LLMService struct{}

// NewLLMService creates a new extractive LLM service.
func NewLLMService() *LLMService {
	return &LLMService{}
}

// Generate returns the context sentence sharing the most terms with the question.
// Ties go to the earliest sentence, so passages ranked first by retrieval win.
func (s *LLMService) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contextText, question := splitPrompt(prompt)
	if strings.TrimSpace(contextText) == "" || strings.Contains(contextText, driven.NoContextPlaceholder) {
		return noContextReply, nil
	}

	sentences := splitSentences(contextText)
	if len(sentences) == 0 {
		return noContextReply, nil
	}

	qTerms := terms(question)
	best, bestScore := sentences[0], 0.0
	for _, sent := range sentences {
		if score := overlap(qTerms, terms(sent)); score > bestScore {
			best, bestScore = sent, score
		}
	}
	return best, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return "extractive"
}

// Ping always succeeds.
func (s *LLMService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// splitPrompt separates the context block from the question.
func splitPrompt(prompt string) (contextText, question string) {
	qi := strings.LastIndex(prompt, QuestionMarker)
	if qi < 0 {
		lines := strings.Split(strings.TrimSpace(prompt), "\n")
		return strings.Join(lines[:len(lines)-1], "\n"), lines[len(lines)-1]
	}

	question = prompt[qi+len(QuestionMarker):]
	if ai := strings.Index(question, AnswerMarker); ai >= 0 {
		question = question[:ai]
	}

	contextText = prompt[:qi]
	if ci := strings.Index(contextText, ContextMarker); ci >= 0 {
		contextText = contextText[ci+len(ContextMarker):]
	}
	return strings.TrimSpace(contextText), strings.TrimSpace(question)
}

// splitSentences breaks context into single-line sentences.
func splitSentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = sentenceEnd.ReplaceAllString(line, "$1\n")
		for _, s := range strings.Split(line, "\n") {
			s = strings.TrimSpace(strings.TrimLeft(s, "-*•0123456789) "))
			if len([]rune(s)) >= 3 {
				out = append(out, s)
			}
		}
	}
	return out
}

// terms returns lowercased content words.
func terms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if len(w) > 2 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// overlap scores exact matches as 1 and shared four-letter stems as 0.5.
func overlap(question, sentence []string) float64 {
	var score float64
	for _, q := range question {
		for _, w := range sentence {
			if q == w {
				score++
				break
			}
			if len(q) >= 4 && len(w) >= 4 && q[:4] == w[:4] {
				score += 0.5
				break
			}
		}
	}
	return score
}

var stopWords = map[string]bool{
	"the": true, "and": true, "how": true, "what": true, "why": true, "can": true, "does": true,
	"should": true, "when": true, "with": true, "for": true, "are": true, "you": true, "your": true,
	"this": true, "that": true, "from": true, "have": true, "feel": true, "some": true, "about": true,
	"help": true, "helps": true, "okay": true, "its": true, "was": true, "will": true, "into": true,
}
