package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// GetHiddenCategories returns the set of hidden category names.
func (db *DB) GetHiddenCategories() (map[string]bool, error) {
	var hidden []models.HiddenCategory
	if err := db.Find(&hidden).Error; err != nil {
		return nil, fmt.Errorf("list hidden categories: %w", err)
	}

	result := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		result[h.Name] = true
	}
	return result, nil
}

// SetHidden hides or unhides a category. The "all" pseudo-tab can never
// be hidden.
func (db *DB) SetHidden(category string, hidden bool) error {
	if category == models.TabAll {
		return fmt.Errorf("the %q tab cannot be hidden", models.TabAll)
	}

	if !hidden {
		return db.Delete(&models.HiddenCategory{}, "name = ?", category).Error
	}

	h := models.HiddenCategory{Name: category}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&h).Error
}

// MergeHiddenCategories adds the given category names to the hidden set
// without removing local additions. Used to apply admin-config defaults.
func (db *DB) MergeHiddenCategories(names []string) error {
	for _, name := range names {
		if name == models.TabAll {
			continue
		}
		h := models.HiddenCategory{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&h).Error; err != nil {
			return fmt.Errorf("merge hidden %s: %w", name, err)
		}
	}
	return nil
}
