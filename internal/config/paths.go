package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database   string // Main SQLite database
	Logs       string // Log directory
	Playtimes  string // Local playtime metadata JSON (id -> hours)
	AdminStore string // File-backed admin-config document (serve mode)
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database:   filepath.Join(cfg.BaseDir, "gamecrate.db"),
		Logs:       filepath.Join(cfg.BaseDir, "logs"),
		Playtimes:  filepath.Join(cfg.BaseDir, "playtimes.json"),
		AdminStore: filepath.Join(cfg.BaseDir, "admin-config.json"),
	}
}

// DefaultBaseDir returns the default base directory (~/.gamecrate).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gamecrate"
	}
	return filepath.Join(home, ".gamecrate")
}
