package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamecrate/gamecrate/internal/models"
)

// GetUserState retrieves the persisted user settings. A missing or
// unreadable row degrades to defaults rather than failing the caller.
func (db *DB) GetUserState() (*models.UserState, error) {
	var state models.UserState
	err := db.Where("id = ?", "default").First(&state).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.UserState{
				ID:      "default",
				SortKey: "name",
				SortDir: "asc",
			}, nil
		}
		return nil, err
	}
	return &state, nil
}

// UpdateSortDefaults persists the default sort key and direction.
func (db *DB) UpdateSortDefaults(sortKey, sortDir string) error {
	state := models.UserState{
		ID:      "default",
		SortKey: sortKey,
		SortDir: sortDir,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sort_key", "sort_dir", "updated_at"}),
	}).Create(&state).Error
}

// UpdateLastSeenCount persists the acknowledged catalog size.
func (db *DB) UpdateLastSeenCount(count int) error {
	state := models.UserState{
		ID:            "default",
		LastSeenCount: count,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_seen_count", "updated_at"}),
	}).Create(&state).Error
}
