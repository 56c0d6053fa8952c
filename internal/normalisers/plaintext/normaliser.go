// Package plaintext normalises plain text files.
package plaintext

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// pageBreak separates pages in text exported from paginated sources.
const pageBreak = "\f"

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts a text file into a document.
// Form feeds split the text into pages; otherwise the file is one section.
// Invalid UTF-8 is rejected as a parse error.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDocumentParse, raw.URI)
	}

	text := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")

	var sections []domain.Section
	for i, page := range strings.Split(text, pageBreak) {
		sections = append(sections, domain.Section{
			Index: i,
			Title: fmt.Sprintf("Page %d", i+1),
			Text:  page,
		})
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw.URI)).String(),
			URI:      raw.URI,
			Title:    titleFor(raw),
			MIMEType: raw.MIMEType,
			Sections: sections,
			Metadata: map[string]any{
				"format": "plaintext",
				"pages":  len(sections),
			},
		},
	}, nil
}

// titleFor prefers a title from metadata, then the file name.
func titleFor(raw *domain.RawDocument) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}
	name := filepath.Base(raw.URI)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
