// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all Gamecrate data (~/.gamecrate)
	BaseDir string

	// Registry holds Docker Hub settings.
	Registry RegistryConfig

	// Admin holds the admin-config service settings.
	Admin AdminConfig

	// Session holds the admin session gate settings.
	Session SessionConfig

	// SyncInterval is the period of the background catalog sync in the TUI.
	SyncInterval time.Duration
}

// RegistryConfig holds Docker Hub API settings.
type RegistryConfig struct {
	// Owner and Repo identify the Docker Hub repository holding the
	// game images, e.g. michadockermisha/backup.
	Owner string
	Repo  string

	// PageSize is the page_size query parameter for tag listings.
	PageSize int

	// RateLimit is requests per minute against the registry.
	RateLimit int

	// CacheHours is the TTL for cached tag listings.
	CacheHours int

	// Routes are alternate base URLs raced for each page fetch. The first
	// successful response wins.
	Routes []string
}

// AdminConfig holds the admin configuration service settings.
type AdminConfig struct {
	// URL is the base URL of the admin-config service. Empty disables
	// remote defaults.
	URL string

	// Secret is the shared secret sent on POST /admin-config.
	Secret string
}

// SessionConfig holds the admin session gate settings.
type SessionConfig struct {
	// PasswordHash is the SHA256 hex of the admin password. The gate only
	// controls UI visibility of hidden categories; it is not real access
	// control.
	PasswordHash string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("GAMECRATE_HOME"); dir != "" {
		cfg.BaseDir = dir
	}
	if owner := os.Getenv("DOCKERHUB_USER"); owner != "" {
		cfg.Registry.Owner = owner
	}
	if repo := os.Getenv("GAMECRATE_REPO"); repo != "" {
		cfg.Registry.Repo = repo
	}
	if routes := os.Getenv("GAMECRATE_REGISTRY_ROUTES"); routes != "" {
		cfg.Registry.Routes = splitRoutes(routes)
	}
	if url := os.Getenv("GAMECRATE_ADMIN_URL"); url != "" {
		cfg.Admin.URL = url
	}
	if secret := os.Getenv("GAMECRATE_ADMIN_SECRET"); secret != "" {
		cfg.Admin.Secret = secret
	}
	if hash := os.Getenv("GAMECRATE_ADMIN_HASH"); hash != "" {
		cfg.Session.PasswordHash = strings.ToLower(hash)
	}
	if interval := os.Getenv("GAMECRATE_SYNC_INTERVAL"); interval != "" {
		if secs, err := strconv.Atoi(interval); err == nil && secs > 0 {
			cfg.SyncInterval = time.Duration(secs) * time.Second
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitRoutes parses a comma-separated route list, dropping empty items.
func splitRoutes(raw string) []string {
	var routes []string
	for _, r := range strings.Split(raw, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			routes = append(routes, r)
		}
	}
	return routes
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).Logs,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
