// Package hashing provides an offline embedding service based on feature hashing.
//
// Words are lowercased, stripped of punctuation and stop words, and hashed
// into a fixed number of buckets together with a short prefix feature so
// related word forms ("anxiety", "anxious") share a component. Vectors are
// L2-normalised. The same text always yields the same vector.
package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions     = 384
	DefaultMaxInputLength = 8192

	// prefixLen is the rune length of the shared-stem feature.
	prefixLen    = 4
	prefixWeight = 0.5
)

// Config holds configuration for the hashing embedding service.
type Config struct {
	// Dimensions is the number of hash buckets (default: 384).
	Dimensions int

	// MaxInputLength is the longest accepted input in characters (default: 8192).
	MaxInputLength int
}

// EmbeddingService embeds text without any model or network access.
type EmbeddingService struct {
	dimensions int
	maxInput   int
}

// NewEmbeddingService creates a new hashing embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.MaxInputLength <= 0 {
		cfg.MaxInputLength = DefaultMaxInputLength
	}
	return &EmbeddingService{
		dimensions: cfg.Dimensions,
		maxInput:   cfg.MaxInputLength,
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrEncoding)
	}
	if n := utf8.RuneCountInString(text); n > s.maxInput {
		return nil, fmt.Errorf("%w: input of %d characters exceeds limit of %d", domain.ErrEncoding, n, s.maxInput)
	}

	vec := make([]float32, s.dimensions)
	words := tokenize(text)

	terms := words[:0:0]
	for _, w := range words {
		if !stopWords[w] {
			terms = append(terms, w)
		}
	}
	// Text made only of stop words still needs a usable vector.
	if len(terms) == 0 {
		terms = words
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no words in text", domain.ErrEncoding)
	}

	for _, w := range terms {
		vec[s.bucket(w)] += 1
		if r := []rune(w); len(r) > prefixLen {
			vec[s.bucket("~"+string(r[:prefixLen]))] += prefixWeight
		}
	}

	normalise(vec)
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return "hashing"
}

// Ping always succeeds; there is nothing to reach.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

func (s *EmbeddingService) bucket(term string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() % uint32(s.dimensions))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func normalise(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(1 / math.Sqrt(sumSq))
	for i := range vec {
		vec[i] *= norm
	}
}

var stopWords = map[string]bool{
	"i": true, "me": true, "my": true, "myself": true, "we": true, "our": true, "ours": true,
	"you": true, "your": true, "yours": true, "yourself": true, "he": true, "him": true, "his": true,
	"she": true, "her": true, "it": true, "its": true, "they": true, "them": true, "their": true,
	"what": true, "which": true, "who": true, "whom": true, "this": true, "that": true, "these": true,
	"those": true, "am": true, "is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "a": true, "an": true, "the": true, "and": true, "but": true, "if": true, "or": true,
	"because": true, "as": true, "until": true, "while": true, "of": true, "at": true, "by": true,
	"for": true, "with": true, "about": true, "into": true, "through": true, "to": true, "from": true,
	"in": true, "out": true, "on": true, "off": true, "then": true, "here": true, "there": true,
	"when": true, "where": true, "why": true, "how": true, "all": true, "any": true, "so": true,
	"than": true, "too": true, "very": true, "s": true, "t": true, "can": true, "will": true,
	"just": true, "should": true, "now": true, "i'm": true, "it's": true, "don't": true,
}
