package file

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure TipStore implements the interface.
var _ driven.TipStore = (*TipStore)(nil)

// TipStore reads a mood-keyed tip mapping. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
type TipStore struct {
	path string
}

// NewTipStore creates a tip store for the file at path.
func NewTipStore(path string) *TipStore {
	return &TipStore{path: path}
}

// Path returns the tips file path.
func (s *TipStore) Path() string {
	return s.path
}

// LoadTips returns every tip listed for mood. Mood keys match
// case-insensitively.
func (s *TipStore) LoadTips(ctx context.Context, mood domain.Mood) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	for key, tips := range all {
		if strings.EqualFold(key, mood.String()) {
			return nonBlank(tips), nil
		}
	}
	return []string{}, nil
}

// loadAll parses the whole mapping.
func (s *TipStore) loadAll() (map[string][]string, error) {
	data, err := readContentFile(s.path)
	if err != nil {
		return nil, err
	}

	var tips map[string][]string
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tips)
	default:
		err = json.Unmarshal(data, &tips)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing tips %s: %w", domain.ErrInvalidInput, s.path, err)
	}
	return tips, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
