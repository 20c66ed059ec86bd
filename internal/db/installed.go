package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// GetInstalled returns the set of lowercased entry ids marked installed.
func (db *DB) GetInstalled() (map[string]bool, error) {
	var marks []models.InstalledMark
	if err := db.Find(&marks).Error; err != nil {
		return nil, fmt.Errorf("list installed: %w", err)
	}

	result := make(map[string]bool, len(marks))
	for _, m := range marks {
		result[m.ID] = true
	}
	return result, nil
}

// SetInstalled marks or unmarks an entry as installed. Both directions
// are idempotent.
func (db *DB) SetInstalled(id string, installed bool) error {
	key := strings.ToLower(id)

	if !installed {
		return db.Delete(&models.InstalledMark{}, "id = ?", key).Error
	}

	mark := models.InstalledMark{ID: key, MarkedAt: time.Now()}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mark).Error
}

// IsInstalled reports whether the entry is marked installed.
func (db *DB) IsInstalled(id string) (bool, error) {
	var count int64
	err := db.Model(&models.InstalledMark{}).Where("id = ?", strings.ToLower(id)).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
