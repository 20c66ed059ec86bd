package cli

import (
	"fmt"
	"time"

	"github.com/gamecrate/gamecrate/internal/adminconfig"
	"github.com/gamecrate/gamecrate/internal/config"
	"github.com/gamecrate/gamecrate/internal/db"
	"github.com/gamecrate/gamecrate/internal/library"
	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/registry"
	"github.com/gamecrate/gamecrate/internal/session"
)

// app bundles everything a command needs.
type app struct {
	cfg *config.Config
	db  *db.DB
	lib *library.Library
}

// openApp loads configuration, opens the database, and wires the
// library. Callers must Close.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	regCfg := registry.DefaultClientConfig(cfg.Registry.Owner, cfg.Registry.Repo)
	regCfg.Routes = cfg.Registry.Routes
	regCfg.PageSize = cfg.Registry.PageSize
	regCfg.RateLimit = cfg.Registry.RateLimit
	regCfg.CacheTTL = time.Duration(cfg.Registry.CacheHours) * time.Hour

	var admin library.ConfigFetcher
	if cfg.Admin.URL != "" {
		admin = adminconfig.NewClient(cfg.Admin.URL, cfg.Admin.Secret)
	}

	lib := library.New(library.Options{
		DB:            database,
		Registry:      registry.NewClient(regCfg),
		AdminConfig:   admin,
		Gate:          session.NewGate(cfg.Session.PasswordHash),
		PlaytimesPath: paths.Playtimes,
	})

	return &app{cfg: cfg, db: database, lib: lib}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

// formatSize renders a GiB value, "N/A" when unknown.
func formatSize(size *float64) string {
	if size == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f GB", *size)
}

// formatHours renders estimated playtime, "N/A" when unknown.
func formatHours(hours *float64) string {
	if hours == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f h", *hours)
}

// formatDate renders the catalog date, "N/A" when unknown.
func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

// formatCategory renders a category, "-" for uncategorized.
func formatCategory(entry models.Entry) string {
	if entry.Category == "" {
		return "-"
	}
	return entry.Category
}
