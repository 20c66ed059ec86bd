package adminconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the single configuration document as a JSON file.
// Writes go through a temp file and rename so a crash never leaves a
// half-written document.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current document. A missing or unparseable file
// degrades to an empty document rather than failing the caller.
func (s *Store) Load() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Empty()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Empty()
	}
	if doc.HiddenTabs == nil {
		doc.HiddenTabs = []string{}
	}
	if doc.GameCategories == nil {
		doc.GameCategories = map[string]string{}
	}
	return &doc
}

// Apply merges the update into the stored document and persists the
// result, returning the new document.
func (s *Store) Apply(update *Document) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLocked()
	doc.Merge(update)

	if err := s.writeLocked(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) writeLocked(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
