package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// ListTabs returns all tabs ordered by position then id. The "all"
// pseudo-tab is not stored and is prepended by the caller.
func (db *DB) ListTabs() ([]models.Tab, error) {
	var tabs []models.Tab
	if err := db.Order("position, id").Find(&tabs).Error; err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	return tabs, nil
}

// UpsertTab inserts or updates a tab.
func (db *DB) UpsertTab(tab *models.Tab) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "position"}),
	}).Create(tab).Error
}

// EnsureTab creates a tab with the given id if it does not exist yet.
// Returns true if the tab was created.
func (db *DB) EnsureTab(tab models.Tab) (bool, error) {
	var count int64
	if err := db.Model(&models.Tab{}).Where("id = ?", tab.ID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := db.Create(&tab).Error; err != nil {
		return false, err
	}
	return true, nil
}
