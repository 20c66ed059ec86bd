// Package view derives the filtered, sorted view of the catalog from
// the current filter state. Projection is a pure function: identical
// inputs always produce identical ordering.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/gamecrate/gamecrate/internal/models"
)

// SortKey selects the field entries are ordered by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByTime     SortKey = "time"
	SortByCategory SortKey = "category"
	SortBySize     SortKey = "size"
	SortByDate     SortKey = "date"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Missing-value sentinels. Absent time and size sort last in ascending
// order, an absent date sorts first, an absent category sorts last.
const (
	missingNumeric  = 999
	missingCategory = "zzz"
)

// FilterState describes the current view selection.
type FilterState struct {
	ActiveTab     string
	SearchQuery   string
	SortKey       SortKey
	SortDirection Direction
	InstalledOnly bool
}

// DefaultFilterState returns the initial view: all entries, sorted by
// name ascending.
func DefaultFilterState() FilterState {
	return FilterState{
		ActiveTab:     models.TabAll,
		SortKey:       SortByName,
		SortDirection: Ascending,
	}
}

// Projection is the ordered, counted result of applying a FilterState.
type Projection struct {
	Entries      []models.Entry
	TotalCount   int
	VisibleCount int
}

// Project applies category scope, hidden-category visibility, search,
// the installed filter, and a stable sort to the catalog. Hidden
// categories are dropped for non-admins regardless of the active tab.
// Ties keep their pre-sort order.
func Project(catalog []models.Entry, state FilterState, hidden map[string]bool, isAdmin bool, installed map[string]bool) Projection {
	filtered := make([]models.Entry, 0, len(catalog))
	query := strings.ToLower(state.SearchQuery)

	for _, entry := range catalog {
		if state.ActiveTab != "" && state.ActiveTab != models.TabAll && entry.Category != state.ActiveTab {
			continue
		}
		if !isAdmin && hidden[entry.Category] {
			continue
		}
		if query != "" && !matchesQuery(entry, query) {
			continue
		}
		if state.InstalledOnly && !installed[entry.Key()] {
			continue
		}
		filtered = append(filtered, entry)
	}

	compare := comparator(state.SortKey)
	desc := state.SortDirection == Descending

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compare(&filtered[i], &filtered[j])
		if desc {
			c = -c
		}
		return c < 0
	})

	return Projection{
		Entries:      filtered,
		TotalCount:   len(catalog),
		VisibleCount: len(filtered),
	}
}

// CountByCategory returns per-tab entry counts over the visible portion
// of the catalog, keyed by category, plus the total under TabAll.
func CountByCategory(catalog []models.Entry, hidden map[string]bool, isAdmin bool) map[string]int {
	counts := make(map[string]int)
	for _, entry := range catalog {
		if !isAdmin && hidden[entry.Category] {
			continue
		}
		counts[models.TabAll]++
		if entry.Category != "" {
			counts[entry.Category]++
		}
	}
	return counts
}

// matchesQuery reports whether the lowercased name, id, or category
// contains the query substring.
func matchesQuery(entry models.Entry, query string) bool {
	return strings.Contains(strings.ToLower(entry.DisplayName), query) ||
		strings.Contains(entry.Key(), query) ||
		strings.Contains(strings.ToLower(entry.Category), query)
}

// comparator returns a three-way compare for the given sort key.
func comparator(key SortKey) func(a, b *models.Entry) int {
	switch key {
	case SortByTime:
		return func(a, b *models.Entry) int {
			return compareFloat(floatOr(a.Hours, missingNumeric), floatOr(b.Hours, missingNumeric))
		}
	case SortBySize:
		return func(a, b *models.Entry) int {
			return compareFloat(floatOr(a.SizeGB, missingNumeric), floatOr(b.SizeGB, missingNumeric))
		}
	case SortByDate:
		return func(a, b *models.Entry) int {
			return dateOr(a.DateAdded).Compare(dateOr(b.DateAdded))
		}
	case SortByCategory:
		return func(a, b *models.Entry) int {
			return strings.Compare(categoryOr(a), categoryOr(b))
		}
	default:
		return func(a, b *models.Entry) int {
			return strings.Compare(strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName))
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func dateOr(v *time.Time) time.Time {
	if v == nil {
		return time.Unix(0, 0)
	}
	return *v
}

func categoryOr(e *models.Entry) string {
	if e.Category == "" {
		return missingCategory
	}
	return strings.ToLower(e.Category)
}
