package config

import "time"

// DefaultAdminPasswordHash is the SHA256 hex of the default admin password
// ("admin"). Override with GAMECRATE_ADMIN_HASH. The gate is cosmetic: it
// hides categories from the UI, nothing more.
const DefaultAdminPasswordHash = "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Registry: RegistryConfig{
			Owner:      "michadockermisha",
			Repo:       "backup",
			PageSize:   100,
			RateLimit:  30,
			CacheHours: 1,
			Routes: []string{
				"https://hub.docker.com",
				"https://registry.hub.docker.com",
			},
		},

		Admin: AdminConfig{},

		Session: SessionConfig{
			PasswordHash: DefaultAdminPasswordHash,
		},

		SyncInterval: 15 * time.Second,
	}
}
