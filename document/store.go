package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store keeps the working document between editor sessions.
type Store struct {
	Path string
}

// NewStore returns a store persisting to path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultStorePath is autosave.json under the user config directory.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("document: config dir: %w", err)
	}
	return filepath.Join(dir, "spriteanim", "autosave.json"), nil
}

// Save persists doc.
func (s *Store) Save(doc *Document) error {
	if s == nil || s.Path == "" {
		return nil
	}
	return SaveFile(s.Path, doc)
}

// Load returns the stored document, or an empty one when nothing was
// saved yet.
func (s *Store) Load() (*Document, error) {
	if s == nil || s.Path == "" {
		return New(), nil
	}
	doc, err := LoadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
