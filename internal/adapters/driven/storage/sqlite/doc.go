// Package sqlite provides a SQLite-based implementation of driven.IndexStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A snapshot holds the chunks of one
// document together with their embeddings, the content hash of the source file
// and the tag of the encoder that produced the vectors. Loading a snapshot lets
// the answer pipeline skip re-encoding when neither the document nor the model
// has changed.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.emoticare/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
