package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// ListEntries returns the cached catalog, ordered by primary key for a
// deterministic baseline (sorting for display is always explicit).
func (db *DB) ListEntries() ([]models.Entry, error) {
	var entries []models.Entry
	if err := db.Order("id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ReplaceCatalog replaces the cached catalog with the given entries in a
// single transaction. The cache is rebuilt wholesale after every
// reconciliation pass.
func (db *DB) ReplaceCatalog(entries []models.Entry) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Entry{}).Error; err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return fmt.Errorf("insert entry %s: %w", entries[i].ID, err)
			}
		}
		return nil
	})
}

// UpsertEntry inserts or updates a single catalog entry.
func (db *DB) UpsertEntry(entry *models.Entry) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "category", "size_gb", "hours", "date_added", "updated_at"}),
	}).Create(entry).Error
}
