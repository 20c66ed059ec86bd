package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/view"
)

func TestNextSortKeyCycles(t *testing.T) {
	key := view.SortByName
	seen := map[view.SortKey]bool{key: true}
	for i := 0; i < 4; i++ {
		key = nextSortKey(key)
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Equal(t, view.SortByName, nextSortKey(key))

	// Unknown keys reset to name.
	assert.Equal(t, view.SortByName, nextSortKey(view.SortKey("bogus")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "longer th…", truncate("longer than ten", 10))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "N/A", sizeLabel(nil))
	assert.Equal(t, "N/A", hoursLabel(nil))
	assert.Equal(t, "N/A", dateLabel(nil))

	size := 2.5
	assert.Equal(t, "2.50 GB", sizeLabel(&size))

	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01", dateLabel(&d))
}

func TestTabName(t *testing.T) {
	tabs := []models.Tab{
		{ID: "action", Name: "Action", Icon: "⚔"},
		{ID: "rpg", Name: "RPG"},
	}

	assert.Equal(t, "⚔ Action", tabName("action", tabs))
	assert.Equal(t, "RPG", tabName("rpg", tabs))
	assert.Equal(t, "All", tabName(models.TabAll, tabs))
	assert.Equal(t, "new", tabName("new", tabs))
}

func TestDirectionArrow(t *testing.T) {
	assert.Equal(t, "↑", directionArrow(view.Ascending))
	assert.Equal(t, "↓", directionArrow(view.Descending))
}
