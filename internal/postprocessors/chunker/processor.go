// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// chunkNamespace scopes chunk IDs so they are stable across runs.
var chunkNamespace = uuid.MustParse("6f1c2a4e-8d0b-4c53-9a57-3e2f1b7d9c10")

// Processor splits each document section into fixed-size chunks.
// Sizes are measured in characters (runes), not bytes.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room to advance.
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int { return p.chunkSize }

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int { return p.overlap }

// Process splits every section of the document into chunks.
// Input chunks are ignored; this processor creates new chunks.
// Chunks never cross section boundaries and whitespace-only sections yield nothing.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	position := 0

	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(section.Text) == "" {
			continue
		}

		runes := []rune(section.Text)
		for _, span := range p.spans(len(runes)) {
			chunks = append(chunks, domain.Chunk{
				ID:         ChunkID(doc.ID, section.Index, span[0]),
				DocumentID: doc.ID,
				Section:    section.Index,
				Offset:     span[0],
				Position:   position,
				Content:    string(runes[span[0]:span[1]]),
				Metadata: map[string]any{
					"section_title": section.Title,
				},
			})
			position++
		}
	}

	return chunks, nil
}

// spans returns [start, end) rune ranges covering n characters.
// The last span always ends at n, so no trailing chunk is a pure
// copy of the previous chunk's overlap.
func (p *Processor) spans(n int) [][2]int {
	if n == 0 {
		return nil
	}
	step := p.chunkSize - p.overlap
	out := make([][2]int, 0, n/step+1)
	for start := 0; ; start += step {
		end := min(start+p.chunkSize, n)
		out = append(out, [2]int{start, end})
		if end == n {
			break
		}
	}
	return out
}

// ChunkID derives a stable identifier for the chunk starting at offset
// within the given section of a document.
func ChunkID(documentID string, section, offset int) string {
	name := fmt.Sprintf("%s#%d:%d", documentID, section, offset)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
