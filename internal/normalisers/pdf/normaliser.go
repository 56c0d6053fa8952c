// Package pdf normalises PDF documents into one section per page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser extracts text from PDF pages.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the plain text of every page.
// Pages without extractable text are kept as empty sections so that
// section indexes line up with page numbers.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	sections, err := extractPages(ctx, raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocumentParse, raw.URI, err)
	}

	title := strings.TrimSuffix(filepath.Base(raw.URI), filepath.Ext(raw.URI))
	if t, ok := raw.Metadata["title"].(string); ok && t != "" {
		title = t
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw.URI)).String(),
			URI:      raw.URI,
			Title:    title,
			MIMEType: raw.MIMEType,
			Sections: sections,
			Metadata: map[string]any{
				"format": "pdf",
				"pages":  len(sections),
			},
		},
	}, nil
}

// extractPages reads page text. The pdf package panics on some malformed
// inputs, so panics are converted to errors.
func extractPages(ctx context.Context, content []byte) (sections []domain.Section, err error) {
	defer func() {
		if r := recover(); r != nil {
			sections = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	pages := reader.NumPage()
	if pages == 0 {
		return nil, fmt.Errorf("no pages")
	}

	sections = make([]domain.Section, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section := domain.Section{Index: i - 1, Title: fmt.Sprintf("Page %d", i)}
		page := reader.Page(i)
		if !page.V.IsNull() {
			text, err := page.GetPlainText(nil)
			if err != nil {
				logger.Warn("pdf page %d: %v", i, err)
			} else {
				section.Text = text
			}
		}
		sections = append(sections, section)
	}
	return sections, nil
}
