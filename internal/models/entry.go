// Package models defines the core data structures for Gamecrate.
package models

import (
	"strings"
	"time"
)

// Entry represents one catalog entry backed by a Docker Hub tag.
// Identity is the lowercase form of ID; two entries whose IDs differ
// only in case are the same entity.
type Entry struct {
	ID          string `gorm:"primaryKey;size:128" json:"id"`
	DisplayName string `gorm:"size:255;index" json:"display_name"`

	// Category is owned by the user, never by the registry. Empty means
	// uncategorized. Reconciliation assigns "new" to freshly discovered
	// entries, but a saved override always wins.
	Category string `gorm:"size:64;index" json:"category"`

	// SizeGB is the image size in GiB rounded to 2 decimals. Nil means the
	// registry did not report a size; rendered as "N/A".
	SizeGB *float64 `json:"size_gb"`

	// Hours is the estimated playtime in hours, merged from the local
	// metadata file. Nil means unknown.
	Hours *float64 `json:"time_hours"`

	// DateAdded is when the tag was first seen, taken from the registry's
	// last_updated when available.
	DateAdded *time.Time `json:"date_added"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "entries"
}

// Key returns the canonical identity key for the entry.
func (e *Entry) Key() string {
	return strings.ToLower(e.ID)
}

// RemoteTag is a typed view of one tag from the registry listing.
// Optional fields are zero-valued when the registry omits them.
type RemoteTag struct {
	Name        string
	FullSize    int64
	LastUpdated *time.Time
}

// CategoryNew is the synthetic category assigned to entries discovered
// during reconciliation.
const CategoryNew = "new"
