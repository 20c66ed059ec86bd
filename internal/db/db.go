// Package db provides a GORM-based database layer for Gamecrate.
// It uses the pure-Go SQLite driver.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gamecrate/gamecrate/internal/models"
)

// DB wraps the GORM database connection with Gamecrate-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling with the
	// pure-Go SQLite driver.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedSyncMeta(); err != nil {
		return nil, fmt.Errorf("seed sync meta: %w", err)
	}

	if err := wrapped.seedUserState(); err != nil {
		return nil, fmt.Errorf("seed user state: %w", err)
	}

	if err := wrapped.seedTabs(); err != nil {
		return nil, fmt.Errorf("seed tabs: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Entry{},
		&models.Tab{},
		&models.CategoryOverride{},
		&models.InstalledMark{},
		&models.HiddenCategory{},
		&models.SyncMeta{},
		&models.UserState{},
	)
}

// seedSyncMeta inserts default sync metadata if not present.
func (db *DB) seedSyncMeta() error {
	defaults := []models.SyncMeta{
		{Key: models.SyncMetaLastFullSync, Value: ""},
		{Key: models.SyncMetaLastTagCount, Value: "0"},
		{Key: models.SyncMetaSchemaVersion, Value: "1"},
	}

	for _, meta := range defaults {
		result := db.Where("key = ?", meta.Key).FirstOrCreate(&meta)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// seedUserState inserts the default settings row if not present.
func (db *DB) seedUserState() error {
	defaultState := models.UserState{
		ID:      "default",
		SortKey: "name",
		SortDir: "asc",
	}

	result := db.Where("id = ?", "default").FirstOrCreate(&defaultState)
	return result.Error
}

// seedTabs inserts the default tab set on first run only.
func (db *DB) seedTabs() error {
	var count int64
	if err := db.Model(&models.Tab{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, tab := range models.DefaultTabs() {
		if err := db.Create(&tab).Error; err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// Stats contains aggregate statistics about the local store.
type Stats struct {
	TotalEntries   int64     `json:"total_entries"`
	TotalTabs      int64     `json:"total_tabs"`
	InstalledCount int64     `json:"installed_count"`
	HiddenCount    int64     `json:"hidden_count"`
	DBSizeBytes    int64     `json:"db_size_bytes"`
	LastUpdated    time.Time `json:"last_updated"`
}

// GetStats returns aggregate statistics about the database.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.Entry{}).Count(&stats.TotalEntries).Error; err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	if err := db.Model(&models.Tab{}).Count(&stats.TotalTabs).Error; err != nil {
		return nil, fmt.Errorf("count tabs: %w", err)
	}
	if err := db.Model(&models.InstalledMark{}).Count(&stats.InstalledCount).Error; err != nil {
		return nil, fmt.Errorf("count installed: %w", err)
	}
	if err := db.Model(&models.HiddenCategory{}).Count(&stats.HiddenCount).Error; err != nil {
		return nil, fmt.Errorf("count hidden: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.DBSizeBytes = info.Size()
	}

	stats.LastUpdated = time.Now()

	return &stats, nil
}
