package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecrate/gamecrate/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := New(DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func floatPtr(v float64) *float64 { return &v }

func TestNewSeedsDefaults(t *testing.T) {
	database := testDB(t)

	tabs, err := database.ListTabs()
	require.NoError(t, err)
	assert.Len(t, tabs, len(models.DefaultTabs()))

	version, err := database.GetSyncMeta(models.SyncMetaSchemaVersion)
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	state, err := database.GetUserState()
	require.NoError(t, err)
	assert.Equal(t, "name", state.SortKey)
	assert.Equal(t, "asc", state.SortDir)
}

func TestReplaceCatalog(t *testing.T) {
	database := testDB(t)

	first := []models.Entry{
		{ID: "doom", DisplayName: "Doom", SizeGB: floatPtr(1.5)},
		{ID: "quake", DisplayName: "Quake"},
	}
	require.NoError(t, database.ReplaceCatalog(first))

	entries, err := database.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Replacing again drops entries that disappeared.
	second := []models.Entry{
		{ID: "doom", DisplayName: "Doom", Category: "action"},
	}
	require.NoError(t, database.ReplaceCatalog(second))

	entries, err = database.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doom", entries[0].ID)
	assert.Equal(t, "action", entries[0].Category)
}

func TestCategoryOverrides(t *testing.T) {
	database := testDB(t)

	require.NoError(t, database.SetCategoryOverride("Doom", "action"))
	require.NoError(t, database.SetCategoryOverride("quake", "action"))
	require.NoError(t, database.SetCategoryOverride("doom", "finished"))

	overrides, err := database.GetCategoryOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"doom":  "finished",
		"quake": "action",
	}, overrides)

	require.NoError(t, database.ReplaceCategoryOverrides(map[string]string{"doom": "rpg"}))
	overrides, err = database.GetCategoryOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"doom": "rpg"}, overrides)
}

func TestInstalledMarks(t *testing.T) {
	database := testDB(t)

	require.NoError(t, database.SetInstalled("Doom", true))
	require.NoError(t, database.SetInstalled("doom", true))

	installed, err := database.GetInstalled()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"doom": true}, installed)

	ok, err := database.IsInstalled("DOOM")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, database.SetInstalled("doom", false))
	ok, err = database.IsInstalled("doom")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHiddenCategories(t *testing.T) {
	database := testDB(t)

	require.NoError(t, database.SetHidden("finished", true))
	require.NoError(t, database.SetHidden("finished", true))

	hidden, err := database.GetHiddenCategories()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"finished": true}, hidden)

	err = database.SetHidden(models.TabAll, true)
	assert.Error(t, err)

	require.NoError(t, database.MergeHiddenCategories([]string{"rpg", "finished", models.TabAll}))
	hidden, err = database.GetHiddenCategories()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"finished": true, "rpg": true}, hidden)

	require.NoError(t, database.SetHidden("finished", false))
	hidden, err = database.GetHiddenCategories()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"rpg": true}, hidden)
}

func TestEnsureTab(t *testing.T) {
	database := testDB(t)

	created, err := database.EnsureTab(models.Tab{ID: "action", Name: "Action"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = database.EnsureTab(models.Tab{ID: models.CategoryNew, Name: "New", Position: 99})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = database.EnsureTab(models.Tab{ID: models.CategoryNew, Name: "New"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSyncMetaRoundTrip(t *testing.T) {
	database := testDB(t)

	value, err := database.GetSyncMeta("missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	stamp := time.Now().UTC().Format(time.RFC3339)
	require.NoError(t, database.SetSyncMeta(models.SyncMetaLastFullSync, stamp))

	value, err = database.GetSyncMeta(models.SyncMetaLastFullSync)
	require.NoError(t, err)
	assert.Equal(t, stamp, value)
}

func TestUserStatePersistence(t *testing.T) {
	database := testDB(t)

	require.NoError(t, database.UpdateSortDefaults("size", "desc"))
	require.NoError(t, database.UpdateLastSeenCount(42))

	state, err := database.GetUserState()
	require.NoError(t, err)
	assert.Equal(t, "size", state.SortKey)
	assert.Equal(t, "desc", state.SortDir)
	assert.Equal(t, 42, state.LastSeenCount)
}

func TestGetStats(t *testing.T) {
	database := testDB(t)

	require.NoError(t, database.ReplaceCatalog([]models.Entry{
		{ID: "doom", DisplayName: "Doom"},
	}))
	require.NoError(t, database.SetInstalled("doom", true))

	stats, err := database.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalEntries)
	assert.Equal(t, int64(1), stats.InstalledCount)
	assert.Positive(t, stats.DBSizeBytes)
}
