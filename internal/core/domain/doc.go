// Package domain defines the core entities for EmotiCare.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A loaded support document split into sections
//   - Chunk: A retrievable span of a section
//   - ScoredChunk: A chunk returned by similarity search
//   - Answer: The grounded reply to a user question
//   - Mood: One of the moods a user can pick
//   - Conversation: The per-session question and answer log
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
