package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// GetCategoryOverrides returns the saved id -> category map. Keys are
// lowercased entry ids.
func (db *DB) GetCategoryOverrides() (map[string]string, error) {
	var overrides []models.CategoryOverride
	if err := db.Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	result := make(map[string]string, len(overrides))
	for _, o := range overrides {
		result[o.ID] = o.Category
	}
	return result, nil
}

// SetCategoryOverride records one user category move.
func (db *DB) SetCategoryOverride(id, category string) error {
	override := models.CategoryOverride{ID: strings.ToLower(id), Category: category}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "updated_at"}),
	}).Create(&override).Error
}

// ReplaceCategoryOverrides persists the full id -> category map so user
// moves survive the next reconciliation.
func (db *DB) ReplaceCategoryOverrides(overrides map[string]string) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CategoryOverride{}).Error; err != nil {
			return fmt.Errorf("clear overrides: %w", err)
		}
		for id, category := range overrides {
			o := models.CategoryOverride{ID: strings.ToLower(id), Category: category}
			if err := tx.Create(&o).Error; err != nil {
				return fmt.Errorf("insert override %s: %w", id, err)
			}
		}
		return nil
	})
}
