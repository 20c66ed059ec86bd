package models

import "time"

// CategoryOverride records a user's manual category move for one entry.
// Overrides are re-applied on top of every reconciliation pass so a manual
// move survives registry refreshes.
type CategoryOverride struct {
	ID       string `gorm:"primaryKey;size:128" json:"id"` // lowercased entry id
	Category string `gorm:"size:64" json:"category"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CategoryOverride) TableName() string {
	return "category_overrides"
}

// InstalledMark flags an entry the user has marked as installed locally.
type InstalledMark struct {
	ID       string    `gorm:"primaryKey;size:128" json:"id"` // lowercased entry id
	MarkedAt time.Time `json:"marked_at"`
}

// TableName specifies the table name for GORM.
func (InstalledMark) TableName() string {
	return "installed_marks"
}

// HiddenCategory names a category hidden from non-admin sessions.
type HiddenCategory struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (HiddenCategory) TableName() string {
	return "hidden_categories"
}

// SyncMeta is a key/value row of sync bookkeeping.
type SyncMeta struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncMeta) TableName() string {
	return "sync_meta"
}

// Sync metadata keys.
const (
	SyncMetaLastFullSync  = "last_full_sync"
	SyncMetaLastTagCount  = "last_tag_count"
	SyncMetaSchemaVersion = "schema_version"
)

// UserState holds the single-row persisted user settings.
type UserState struct {
	ID string `gorm:"primaryKey;size:32" json:"id"` // always "default"

	// Sort defaults applied when the UI starts. These are the only pieces
	// of filter state that persist.
	SortKey string `gorm:"size:16;default:name" json:"sort_key"`
	SortDir string `gorm:"size:8;default:asc" json:"sort_dir"`

	// LastSeenCount is the catalog size last acknowledged by the user,
	// used to surface a "new entries" badge after a sync.
	LastSeenCount int `gorm:"default:0" json:"last_seen_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}
