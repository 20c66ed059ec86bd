package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	sortKey   string
	sortDir   string
	selection []string
	settings  bool
}

func (f *fakeApplier) ApplySettings(sortKey, sortDir string) error {
	f.settings = true
	f.sortKey = sortKey
	f.sortDir = sortDir
	return nil
}

func (f *fakeApplier) ApplySelection(ids []string) error {
	f.selection = ids
	return nil
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	m := New(&Settings{SortKey: "size", SortDir: "desc"}, []string{"doom", "quake"})
	require.NoError(t, m.Write(path))

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, loaded.Version)
	assert.Equal(t, "size", loaded.Settings.SortKey)
	assert.Equal(t, []string{"doom", "quake"}, loaded.Selection)
}

func TestReadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	_, err := Read(path)
	require.Error(t, err)
}

func TestReadRejectsFutureVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))

	_, err := Read(path)
	require.Error(t, err)
}

func TestImportAppliesFieldsIndependently(t *testing.T) {
	applier := &fakeApplier{}

	// Settings only.
	result, err := Import(New(&Settings{SortKey: "name", SortDir: "asc"}, nil), applier)
	require.NoError(t, err)
	assert.True(t, result.SettingsApplied)
	assert.False(t, result.SelectionApplied)
	assert.Equal(t, "name", applier.sortKey)
	assert.Nil(t, applier.selection)

	// Selection only.
	applier = &fakeApplier{}
	result, err = Import(New(nil, []string{"doom"}), applier)
	require.NoError(t, err)
	assert.False(t, result.SettingsApplied)
	assert.True(t, result.SelectionApplied)
	assert.Equal(t, 1, result.SelectionCount)
	assert.False(t, applier.settings)
}

func TestImportEmptySelectionStillApplies(t *testing.T) {
	applier := &fakeApplier{selection: []string{"stale"}}

	result, err := Import(&Manifest{Version: 1, Selection: []string{}}, applier)
	require.NoError(t, err)
	assert.True(t, result.SelectionApplied)
	assert.Equal(t, 0, result.SelectionCount)
	assert.Empty(t, applier.selection)
}
