package library

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecrate/gamecrate/internal/adminconfig"
	"github.com/gamecrate/gamecrate/internal/db"
	"github.com/gamecrate/gamecrate/internal/hash"
	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/registry"
	"github.com/gamecrate/gamecrate/internal/session"
)

type fakeRegistry struct {
	mu      sync.Mutex
	tags    []models.RemoteTag
	err     error
	calls   int
	release chan struct{} // when set, FetchAllTags blocks until closed
}

func (f *fakeRegistry) FetchAllTags(ctx context.Context) (*registry.FetchResult, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &registry.FetchResult{Tags: f.tags, TotalCount: len(f.tags), Pages: 1}, nil
}

func (f *fakeRegistry) Repository() string { return "owner/repo" }

type fakeAdmin struct {
	doc *adminconfig.Document
	err error
}

func (f *fakeAdmin) Fetch(ctx context.Context) (*adminconfig.Document, error) {
	return f.doc, f.err
}

func testLibrary(t *testing.T, reg TagFetcher, admin ConfigFetcher) (*Library, *db.DB) {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	lib := New(Options{
		DB:          database,
		Registry:    reg,
		AdminConfig: admin,
		Gate:        session.NewGate(hash.SHA256Hex("admin")),
	})
	return lib, database
}

func TestSyncPopulatesCatalog(t *testing.T) {
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "superMario64"}, {Name: "doom"}}}
	lib, database := testLibrary(t, reg, nil)

	result, err := lib.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.TagCount)
	assert.ElementsMatch(t, []string{"superMario64", "doom"}, result.NewlyAdded)

	entries, err := database.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// First sync synthesizes the "new" tab.
	tabs, err := database.ListTabs()
	require.NoError(t, err)
	found := false
	for _, tab := range tabs {
		if tab.ID == models.CategoryNew {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSyncGuardSkipsOverlapping(t *testing.T) {
	release := make(chan struct{})
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}}, release: release}
	lib, _ := testLibrary(t, reg, nil)

	done := make(chan *SyncResult, 1)
	go func() {
		result, _ := lib.Sync(context.Background())
		done <- result
	}()

	// Wait for the first sync to be in flight.
	require.Eventually(t, lib.Syncing, time.Second, time.Millisecond)

	second, err := lib.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	close(release)
	first := <-done
	assert.False(t, first.Skipped)
	assert.Equal(t, 1, reg.calls)
}

func TestSyncFetchFailureDegrades(t *testing.T) {
	reg := &fakeRegistry{err: assert.AnError}
	lib, database := testLibrary(t, reg, nil)

	result, err := lib.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, result.FetchFailed)
	assert.NotEmpty(t, result.Errors)

	entries, err := database.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncAppliesOverridesAndAdminDefaults(t *testing.T) {
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}, {Name: "quake"}, {Name: "myst"}}}
	admin := &fakeAdmin{doc: &adminconfig.Document{
		HiddenTabs:     []string{"beta"},
		GameCategories: map[string]string{"doom": "action", "quake": "action"},
	}}
	lib, database := testLibrary(t, reg, admin)

	// A user override beats the admin default for the same id.
	require.NoError(t, database.SetCategoryOverride("quake", "finished"))

	_, err := lib.Sync(context.Background())
	require.NoError(t, err)

	entries, err := database.ListEntries()
	require.NoError(t, err)

	categories := make(map[string]string)
	for _, e := range entries {
		categories[e.ID] = e.Category
	}
	assert.Equal(t, "action", categories["doom"])
	assert.Equal(t, "finished", categories["quake"])
	assert.Equal(t, models.CategoryNew, categories["myst"])

	hidden, err := database.GetHiddenCategories()
	require.NoError(t, err)
	assert.True(t, hidden["beta"])
}

func TestSyncAppliesPlaytimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playtimes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"doom": 12.5}`), 0644))

	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}}}
	lib, database := testLibrary(t, reg, nil)
	lib.playtimesPath = path

	_, err := lib.Sync(context.Background())
	require.NoError(t, err)

	entries, err := database.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Hours)
	assert.Equal(t, 12.5, *entries[0].Hours)
}

func TestSelectionSet(t *testing.T) {
	lib, _ := testLibrary(t, &fakeRegistry{}, nil)

	assert.True(t, lib.ToggleSelection("Doom"))
	assert.True(t, lib.IsSelected("doom"))
	assert.False(t, lib.ToggleSelection("DOOM"))
	assert.Empty(t, lib.SelectedIDs())

	lib.SelectAllVisible([]models.Entry{{ID: "doom"}, {ID: "quake"}})
	assert.Equal(t, []string{"doom", "quake"}, lib.SelectedIDs())

	lib.DeselectAll()
	assert.Empty(t, lib.SelectedIDs())
}

func TestMoveSelectedToCategory(t *testing.T) {
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}, {Name: "quake"}}}
	lib, database := testLibrary(t, reg, nil)

	_, err := lib.Sync(context.Background())
	require.NoError(t, err)

	lib.SelectAllVisible([]models.Entry{{ID: "doom"}, {ID: "quake"}})

	changed, err := lib.MoveSelectedToCategory("action")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	// Moving again to the same category is a reported no-op.
	changed, err = lib.MoveSelectedToCategory("action")
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	// The moves persist as overrides and survive the next sync.
	_, err = lib.Sync(context.Background())
	require.NoError(t, err)

	entries, err := database.ListEntries()
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, "action", e.Category)
	}
}

func TestMoveEntry(t *testing.T) {
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}}}
	lib, _ := testLibrary(t, reg, nil)

	_, err := lib.Sync(context.Background())
	require.NoError(t, err)

	moved, err := lib.MoveEntry("doom", "action")
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = lib.MoveEntry("doom", "action")
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = lib.MoveEntry("nosuch", "action")
	require.Error(t, err)
}

func TestToggleInstalled(t *testing.T) {
	lib, database := testLibrary(t, &fakeRegistry{}, nil)

	state, err := lib.ToggleInstalled("doom")
	require.NoError(t, err)
	assert.True(t, state)

	installed, err := database.GetInstalled()
	require.NoError(t, err)
	assert.True(t, installed["doom"])

	state, err = lib.ToggleInstalled("doom")
	require.NoError(t, err)
	assert.False(t, state)
}

func TestToggleHiddenRequiresAdmin(t *testing.T) {
	lib, _ := testLibrary(t, &fakeRegistry{}, nil)

	_, err := lib.ToggleHidden("beta")
	require.Error(t, err)

	require.True(t, lib.Gate().Authenticate("admin"))

	hidden, err := lib.ToggleHidden("beta")
	require.NoError(t, err)
	assert.True(t, hidden)

	hidden, err = lib.ToggleHidden("beta")
	require.NoError(t, err)
	assert.False(t, hidden)
}

func TestNewSinceLastSeen(t *testing.T) {
	reg := &fakeRegistry{tags: []models.RemoteTag{{Name: "doom"}, {Name: "quake"}}}
	lib, _ := testLibrary(t, reg, nil)

	_, err := lib.Sync(context.Background())
	require.NoError(t, err)

	delta, err := lib.NewSinceLastSeen()
	require.NoError(t, err)
	assert.Equal(t, 2, delta)

	require.NoError(t, lib.AcknowledgeNew())

	delta, err = lib.NewSinceLastSeen()
	require.NoError(t, err)
	assert.Equal(t, 0, delta)
}

func TestLoadPlaytimes(t *testing.T) {
	assert.Nil(t, LoadPlaytimes(""))
	assert.Nil(t, LoadPlaytimes(filepath.Join(t.TempDir(), "missing.json")))

	path := filepath.Join(t.TempDir(), "playtimes.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0644))
	assert.Nil(t, LoadPlaytimes(path))

	require.NoError(t, os.WriteFile(path, []byte(`{"doom": 3}`), 0644))
	hours := LoadPlaytimes(path)
	assert.Equal(t, 3.0, hours["doom"])
}
