package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GAMECRATE_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "michadockermisha", cfg.Registry.Owner)
	assert.Equal(t, "backup", cfg.Registry.Repo)
	assert.Equal(t, 100, cfg.Registry.PageSize)
	assert.Len(t, cfg.Registry.Routes, 2)
	assert.Equal(t, DefaultAdminPasswordHash, cfg.Session.PasswordHash)
	assert.Equal(t, 15*time.Second, cfg.SyncInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GAMECRATE_HOME", t.TempDir())
	t.Setenv("DOCKERHUB_USER", "someoneelse")
	t.Setenv("GAMECRATE_REPO", "library")
	t.Setenv("GAMECRATE_ADMIN_HASH", "ABCDEF")
	t.Setenv("GAMECRATE_SYNC_INTERVAL", "60")
	t.Setenv("GAMECRATE_REGISTRY_ROUTES", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "someoneelse", cfg.Registry.Owner)
	assert.Equal(t, "library", cfg.Registry.Repo)
	assert.Equal(t, "abcdef", cfg.Session.PasswordHash)
	assert.Equal(t, 60*time.Second, cfg.SyncInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Registry.Routes)
}

func TestLoad_BadSyncIntervalIgnored(t *testing.T) {
	t.Setenv("GAMECRATE_HOME", t.TempDir())
	t.Setenv("GAMECRATE_SYNC_INTERVAL", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.SyncInterval)
}

func TestGetPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseDir = "/tmp/gamecrate-test"

	paths := GetPaths(cfg)
	assert.Equal(t, "/tmp/gamecrate-test/gamecrate.db", paths.Database)
	assert.Equal(t, "/tmp/gamecrate-test/logs", paths.Logs)
	assert.Equal(t, "/tmp/gamecrate-test/playtimes.json", paths.Playtimes)
}
