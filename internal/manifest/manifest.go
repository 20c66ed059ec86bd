// Package manifest imports and exports user state as a portable JSON
// document. An unparseable file rejects the whole import; a parsed file
// merges its settings and selection independently, so either may be
// absent.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FormatVersion is written to every exported manifest.
const FormatVersion = 1

// DefaultFileName is the conventional manifest file name.
const DefaultFileName = "gamecrate.json"

// Settings is the persisted view preference subset.
type Settings struct {
	SortKey string `json:"sortKey,omitempty"`
	SortDir string `json:"sortDir,omitempty"`
}

// Manifest is the exported document.
type Manifest struct {
	Version   int       `json:"version"`
	Settings  *Settings `json:"settings,omitempty"`
	Selection []string  `json:"selection,omitempty"`
}

// New creates a manifest from the given state.
func New(settings *Settings, selection []string) *Manifest {
	return &Manifest{
		Version:   FormatVersion,
		Settings:  settings,
		Selection: selection,
	}
}

// Write persists the manifest via a temp file and rename.
func (m *Manifest) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Read loads and validates a manifest. Parse failure rejects the whole
// file; nothing is partially applied.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if m.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}

	return &m, nil
}

// ImportResult reports which fields an import applied.
type ImportResult struct {
	SettingsApplied  bool
	SelectionApplied bool
	SelectionCount   int
}

// Applier receives the independently merged manifest fields.
type Applier interface {
	ApplySettings(sortKey, sortDir string) error
	ApplySelection(ids []string) error
}

// Import applies a parsed manifest through the applier. Settings and
// selection are applied independently; an absent field is skipped, not
// an error.
func Import(m *Manifest, applier Applier) (*ImportResult, error) {
	result := &ImportResult{}

	if m.Settings != nil {
		if err := applier.ApplySettings(m.Settings.SortKey, m.Settings.SortDir); err != nil {
			return result, fmt.Errorf("apply settings: %w", err)
		}
		result.SettingsApplied = true
	}

	if m.Selection != nil {
		if err := applier.ApplySelection(m.Selection); err != nil {
			return result, fmt.Errorf("apply selection: %w", err)
		}
		result.SelectionApplied = true
		result.SelectionCount = len(m.Selection)
	}

	return result, nil
}
