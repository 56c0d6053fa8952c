package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service could not be created or reached.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service could not be created or reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Retrieval pipeline errors.

	// ErrDocumentNotFound indicates the support document path is missing or unreadable.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentParse indicates the document format is unsupported or corrupt.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrEncoding indicates text could not be turned into an embedding.
	ErrEncoding = errors.New("encoding failed")

	// ErrDimensionMismatch indicates vectors of different sizes were mixed.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrLengthMismatch indicates chunk and vector counts differ.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidArgument indicates a caller supplied an unusable argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrGeneration indicates the answer model failed or produced nothing usable.
	ErrGeneration = errors.New("generation failed")

	// ErrModelMismatch indicates the query encoder differs from the one that built the index.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// Wellness errors.

	// ErrUnknownMood indicates a mood name outside the supported set.
	ErrUnknownMood = errors.New("unknown mood")

	// ErrNoQuotes indicates the quote collection is empty.
	ErrNoQuotes = errors.New("no quotes available")
)
