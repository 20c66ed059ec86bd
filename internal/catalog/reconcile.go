// Package catalog merges remote registry tag listings with the locally
// cached catalog. Reconciliation is a pure function so it can run on
// every sync cycle without side effects; persistence is the caller's
// concern.
package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/gamecrate/gamecrate/internal/models"
)

// bytesPerGiB converts registry byte counts to the GiB values shown in
// the catalog.
const bytesPerGiB = 1024 * 1024 * 1024

// Result describes the outcome of one reconciliation pass.
type Result struct {
	Entries         []models.Entry
	NewlyAdded      []string
	ChangedMetadata int
	NewTabNeeded    bool
}

// Reconcile merges remote tags into the current catalog. New tags are
// appended with the "new" category, existing entries get their size and
// date refreshed in place, and saved category overrides are re-applied
// last so a user's manual move always wins. The category of an existing
// entry is never touched by registry data.
//
// Running Reconcile twice with the same snapshot yields the same catalog
// and reports zero changes on the second pass.
func Reconcile(current []models.Entry, remote []models.RemoteTag, overrides map[string]string) *Result {
	result := &Result{}

	entries := make([]models.Entry, len(current))
	copy(entries, current)

	index := make(map[string]int, len(entries))
	for i := range entries {
		index[entries[i].Key()] = i
	}

	for _, tag := range remote {
		key := strings.ToLower(tag.Name)
		if key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			if refreshEntry(&entries[i], tag) {
				result.ChangedMetadata++
			}
			continue
		}

		entries = append(entries, newEntry(tag))
		index[key] = len(entries) - 1
		result.NewlyAdded = append(result.NewlyAdded, tag.Name)
	}

	for id, category := range overrides {
		if i, ok := index[strings.ToLower(id)]; ok {
			entries[i].Category = category
		}
	}

	result.Entries = entries
	result.NewTabNeeded = len(result.NewlyAdded) > 0

	return result
}

// newEntry synthesizes a catalog entry for a tag seen for the first
// time. Missing metadata stays nil and renders as "N/A" downstream.
func newEntry(tag models.RemoteTag) models.Entry {
	entry := models.Entry{
		ID:          tag.Name,
		DisplayName: FormatName(tag.Name),
		Category:    models.CategoryNew,
		SizeGB:      sizeGB(tag.FullSize),
	}

	if tag.LastUpdated != nil {
		added := *tag.LastUpdated
		entry.DateAdded = &added
	} else {
		now := time.Now()
		entry.DateAdded = &now
	}

	return entry
}

// refreshEntry updates size and date from the registry, reporting
// whether anything actually changed. A zero remote size keeps the
// existing value so a flaky listing never erases known metadata.
func refreshEntry(entry *models.Entry, tag models.RemoteTag) bool {
	changed := false

	if size := sizeGB(tag.FullSize); size != nil {
		if entry.SizeGB == nil || *entry.SizeGB != *size {
			entry.SizeGB = size
			changed = true
		}
	}

	if tag.LastUpdated != nil {
		if entry.DateAdded == nil || !entry.DateAdded.Equal(*tag.LastUpdated) {
			updated := *tag.LastUpdated
			entry.DateAdded = &updated
			changed = true
		}
	}

	return changed
}

// sizeGB converts a byte count to GiB rounded to two decimals. Zero
// means the registry did not report a size.
func sizeGB(bytes int64) *float64 {
	if bytes <= 0 {
		return nil
	}
	gb := math.Round(float64(bytes)/bytesPerGiB*100) / 100
	return &gb
}

// ApplyHours copies estimated playtime hours onto matching entries by
// lowercased id. Returns the number of entries that received a value.
func ApplyHours(entries []models.Entry, hours map[string]float64) int {
	if len(hours) == 0 {
		return 0
	}

	normalized := make(map[string]float64, len(hours))
	for id, h := range hours {
		normalized[strings.ToLower(id)] = h
	}

	applied := 0
	for i := range entries {
		if h, ok := normalized[entries[i].Key()]; ok {
			value := h
			entries[i].Hours = &value
			applied++
		}
	}
	return applied
}
