package models

// Tab groups catalog entries that share a category.
type Tab struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Name string `gorm:"size:128" json:"name"`
	Icon string `gorm:"size:16" json:"icon,omitempty"`

	// Position orders tabs in the UI. Lower comes first.
	Position int `gorm:"default:0;index" json:"position"`
}

// TableName specifies the table name for GORM.
func (Tab) TableName() string {
	return "tabs"
}

// TabAll is the pseudo-tab that matches every entry. It is never stored,
// never hidden, and always shown first.
const TabAll = "all"

// DefaultTabs returns the seeded tab set for a fresh database.
func DefaultTabs() []Tab {
	return []Tab{
		{ID: "action", Name: "Action", Position: 1},
		{ID: "adventure", Name: "Adventure", Position: 2},
		{ID: "rpg", Name: "RPG", Position: 3},
		{ID: "strategy", Name: "Strategy", Position: 4},
		{ID: "finished", Name: "Finished", Position: 5},
	}
}
