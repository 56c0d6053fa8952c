// Package markdown normalises Markdown documents into one section per heading.
package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	headingLine  = regexp.MustCompile(`^#{1,6}\s+(.*)$`)
	codeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	hr           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	emphasis     = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise splits the document at headings and strips formatting.
// Text before the first heading becomes an untitled leading section.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	content = codeBlock.ReplaceAllString(content, "")

	var sections []domain.Section
	var title string
	var heading string
	var body []string

	flush := func() {
		text := stripMarkdown(strings.Join(body, "\n"))
		if heading != "" {
			text = strings.TrimSpace(heading + "\n" + text)
		}
		if text != "" {
			sections = append(sections, domain.Section{
				Index: len(sections),
				Title: heading,
				Text:  text,
			})
		}
		body = body[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		m := headingLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			body = append(body, line)
			continue
		}
		flush()
		heading = stripInline(strings.TrimSpace(m[1]))
		if title == "" && strings.HasPrefix(strings.TrimSpace(line), "# ") {
			title = heading
		}
	}
	flush()

	if title == "" {
		title = titleFromURI(raw.URI)
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw.URI)).String(),
			URI:      raw.URI,
			Title:    title,
			MIMEType: raw.MIMEType,
			Sections: sections,
			Metadata: map[string]any{
				"format": "markdown",
			},
		},
	}, nil
}

// stripInline removes inline markup from a single line.
func stripInline(s string) string {
	s = images.ReplaceAllString(s, "")
	s = links.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = emphasis.ReplaceAllString(s, "$2")
	return s
}

// stripMarkdown reduces a block of markdown to plain text.
func stripMarkdown(content string) string {
	content = stripInline(content)
	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = multiNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

func titleFromURI(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
