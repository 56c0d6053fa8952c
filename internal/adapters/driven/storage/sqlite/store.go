package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/emoticare/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "index.db"

// Verify interface compliance.
var _ driven.IndexStore = (*Store)(nil)

// Store persists index snapshots in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.emoticare/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".emoticare", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveSnapshot replaces any stored snapshot for the same document.
func (s *Store) SaveSnapshot(ctx context.Context, snap *driven.IndexSnapshot) error {
	if snap == nil || snap.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if len(snap.Chunks) != len(snap.Vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrLengthMismatch, len(snap.Chunks), len(snap.Vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Cascades to chunks.
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE document_id = ?`, snap.DocumentID); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (document_id, source_hash, model_tag, dimensions, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, snap.DocumentID, snap.SourceHash, snap.ModelTag, snap.Dimensions, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, section, char_offset, position, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range snap.Chunks {
		if len(snap.Vectors[i]) != snap.Dimensions {
			return fmt.Errorf("%w: chunk %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(snap.Vectors[i]), snap.Dimensions)
		}

		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, snap.DocumentID, chunk.Section, chunk.Offset,
			chunk.Position, chunk.Content, string(metadataJSON), float32SliceToBytes(snap.Vectors[i])); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot for a document.
func (s *Store) LoadSnapshot(ctx context.Context, documentID string) (*driven.IndexSnapshot, error) {
	snap := &driven.IndexSnapshot{DocumentID: documentID}

	row := s.db.QueryRowContext(ctx, `
		SELECT source_hash, model_tag, dimensions FROM snapshots WHERE document_id = ?
	`, documentID)
	if err := row.Scan(&snap.SourceHash, &snap.ModelTag, &snap.Dimensions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, section, char_offset, position, content, metadata, embedding
		FROM chunks WHERE document_id = ? ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			chunk        domain.Chunk
			metadataJSON string
			blob         []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.Section, &chunk.Offset, &chunk.Position,
			&chunk.Content, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling chunk metadata: %w", err)
		}
		chunk.DocumentID = documentID

		snap.Chunks = append(snap.Chunks, chunk)
		snap.Vectors = append(snap.Vectors, bytesToFloat32Slice(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return snap, nil
}

// DeleteSnapshot removes the stored snapshot for a document.
// Deleting a missing snapshot is not an error.
func (s *Store) DeleteSnapshot(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
