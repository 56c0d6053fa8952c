package file

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure QuoteStore implements the interface.
var _ driven.QuoteStore = (*QuoteStore)(nil)

// QuoteStore reads quotes from a text file, one per line.
type QuoteStore struct {
	path string
}

// NewQuoteStore creates a quote store for the file at path.
func NewQuoteStore(path string) *QuoteStore {
	return &QuoteStore{path: path}
}

// Path returns the quotes file path.
func (s *QuoteStore) Path() string {
	return s.path
}

// LoadQuotes reads the file on every call so edits show up without a restart.
func (s *QuoteStore) LoadQuotes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readContentFile(s.path)
	if err != nil {
		return nil, err
	}

	var quotes []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			quotes = append(quotes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading quotes %s: %w", s.path, err)
	}
	return quotes, nil
}

// readContentFile maps a missing file to domain.ErrNotFound.
func readContentFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
