package domain

import "strings"

// Document is a loaded support document.
// It is immutable once produced and is discarded after chunking.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path).
	URI string

	// Title is the human-readable title.
	Title string

	// MIMEType is the detected content type.
	MIMEType string

	// Sections holds the document text split at natural boundaries
	// (pages for PDF, headings for Markdown).
	Sections []Section

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}

// Section is a contiguous block of document text.
// Chunks never span two sections.
type Section struct {
	// Index is the zero-based position of the section in the document.
	Index int

	// Title is the page label or heading, if any.
	Title string

	// Text is the section content exactly as extracted.
	Text string
}

// Content returns the full document text with sections joined by blank lines.
func (d *Document) Content() string {
	parts := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Chunk is a retrievable span of a document section.
type Chunk struct {
	// ID is stable for a given document, section and offset.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Section is the index of the section this chunk was cut from.
	Section int

	// Offset is the character offset of the chunk inside its section.
	Offset int

	// Position is the ordinal position within the document.
	Position int

	// Content is the text content of this chunk.
	Content string

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// ScoredChunk is a chunk paired with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk

	// Score is the cosine similarity, higher is more similar.
	Score float64
}

// Passages returns the text of each scored chunk in order.
func Passages(set []ScoredChunk) []string {
	out := make([]string, len(set))
	for i, sc := range set {
		out[i] = sc.Chunk.Content
	}
	return out
}

// IndexInfo describes the indexed support document.
type IndexInfo struct {
	DocumentID    string
	DocumentTitle string
	DocumentPath  string
	Sections      int
	Chunks        int
	Dimensions    int
	ModelTag      string

	// Reused is true when vectors came from a stored snapshot.
	Reused bool
}
