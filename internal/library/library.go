// Package library is the stateful shell around the pure catalog core.
// It owns the database handle, the registry client, the transient
// selection set, and the sync reentrancy guard; reconciliation and
// projection themselves stay pure.
package library

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gamecrate/gamecrate/internal/adminconfig"
	"github.com/gamecrate/gamecrate/internal/catalog"
	"github.com/gamecrate/gamecrate/internal/db"
	"github.com/gamecrate/gamecrate/internal/log"
	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/internal/registry"
	"github.com/gamecrate/gamecrate/internal/session"
)

// TagFetcher is the registry surface the library needs.
type TagFetcher interface {
	FetchAllTags(ctx context.Context) (*registry.FetchResult, error)
	Repository() string
}

// ConfigFetcher retrieves the shared admin configuration document.
type ConfigFetcher interface {
	Fetch(ctx context.Context) (*adminconfig.Document, error)
}

// Options configures a Library.
type Options struct {
	DB            *db.DB
	Registry      TagFetcher
	AdminConfig   ConfigFetcher // optional
	Gate          *session.Gate
	PlaytimesPath string
}

// Library coordinates sync, selection, and user edits.
type Library struct {
	db       *db.DB
	registry TagFetcher
	admin    ConfigFetcher
	gate     *session.Gate

	playtimesPath string

	mu        sync.Mutex
	selection map[string]bool
	syncing   bool
}

// New creates a library.
func New(opts Options) *Library {
	return &Library{
		db:            opts.DB,
		registry:      opts.Registry,
		admin:         opts.AdminConfig,
		gate:          opts.Gate,
		playtimesPath: opts.PlaytimesPath,
		selection:     make(map[string]bool),
	}
}

// Gate returns the session gate.
func (l *Library) Gate() *session.Gate {
	return l.gate
}

// Catalog returns the cached catalog from the local store.
func (l *Library) Catalog() ([]models.Entry, error) {
	return l.db.ListEntries()
}

// SyncResult reports the outcome of one sync cycle.
type SyncResult struct {
	Skipped         bool
	FetchFailed     bool
	Partial         bool
	TagCount        int
	NewlyAdded      []string
	ChangedMetadata int
	Errors          []error
	Duration        time.Duration
}

// Sync fetches the remote tag listing and reconciles it into the local
// store. A sync already in flight makes this call a no-op with
// Skipped set; periodic and manual syncs share the guard so two passes
// never interleave. A registry failure degrades to "no new data this
// cycle" rather than an error.
func (l *Library) Sync(ctx context.Context) (*SyncResult, error) {
	l.mu.Lock()
	if l.syncing {
		l.mu.Unlock()
		return &SyncResult{Skipped: true}, nil
	}
	l.syncing = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.syncing = false
		l.mu.Unlock()
	}()

	start := time.Now()
	result := &SyncResult{}

	fetch, err := l.registry.FetchAllTags(ctx)
	if err != nil {
		log.Errorf("sync: registry unreachable: %v", err)
		result.FetchFailed = true
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		return result, nil
	}

	result.TagCount = len(fetch.Tags)
	result.Partial = fetch.Partial()
	result.Errors = append(result.Errors, fetch.Errors...)

	overrides, err := l.db.GetCategoryOverrides()
	if err != nil {
		return result, fmt.Errorf("load overrides: %w", err)
	}

	// Admin defaults apply beneath user overrides.
	merged := l.applyAdminDefaults(ctx, overrides)

	current, err := l.db.ListEntries()
	if err != nil {
		return result, fmt.Errorf("load catalog: %w", err)
	}

	rec := catalog.Reconcile(current, fetch.Tags, merged)
	result.NewlyAdded = rec.NewlyAdded
	result.ChangedMetadata = rec.ChangedMetadata

	if hours := LoadPlaytimes(l.playtimesPath); len(hours) > 0 {
		catalog.ApplyHours(rec.Entries, hours)
	}

	if rec.NewTabNeeded {
		if _, err := l.db.EnsureTab(models.Tab{ID: models.CategoryNew, Name: "New", Position: -1}); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("ensure new tab: %w", err))
		}
	}

	if err := l.db.ReplaceCatalog(rec.Entries); err != nil {
		return result, fmt.Errorf("store catalog: %w", err)
	}

	_ = l.db.SetSyncMeta(models.SyncMetaLastFullSync, time.Now().Format(time.RFC3339))
	_ = l.db.SetSyncMeta(models.SyncMetaLastTagCount, strconv.Itoa(result.TagCount))

	result.Duration = time.Since(start)
	return result, nil
}

// applyAdminDefaults fetches the shared admin document and folds its
// defaults beneath the user's own overrides. Failures degrade to the
// user overrides alone.
func (l *Library) applyAdminDefaults(ctx context.Context, overrides map[string]string) map[string]string {
	if l.admin == nil {
		return overrides
	}

	doc, err := l.admin.Fetch(ctx)
	if err != nil {
		log.Printf("sync: admin config unavailable: %v", err)
		return overrides
	}

	if len(doc.HiddenTabs) > 0 {
		if err := l.db.MergeHiddenCategories(doc.HiddenTabs); err != nil {
			log.Errorf("sync: merge hidden tabs: %v", err)
		}
	}

	if len(doc.GameCategories) == 0 {
		return overrides
	}

	merged := make(map[string]string, len(doc.GameCategories)+len(overrides))
	for id, category := range doc.GameCategories {
		merged[strings.ToLower(id)] = category
	}
	for id, category := range overrides {
		merged[id] = category
	}
	return merged
}

// Syncing reports whether a sync is currently in flight.
func (l *Library) Syncing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.syncing
}

// ToggleSelection flips one entry in the transient selection set and
// returns its new state.
func (l *Library) ToggleSelection(id string) bool {
	key := strings.ToLower(id)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.selection[key] {
		delete(l.selection, key)
		return false
	}
	l.selection[key] = true
	return true
}

// SelectAllVisible adds every given entry to the selection.
func (l *Library) SelectAllVisible(entries []models.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range entries {
		l.selection[e.Key()] = true
	}
}

// DeselectAll clears the selection.
func (l *Library) DeselectAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selection = make(map[string]bool)
}

// SelectedIDs returns the selection as a sorted slice.
func (l *Library) SelectedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.selection))
	for id := range l.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSelected reports whether the entry is in the selection set.
func (l *Library) IsSelected(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selection[strings.ToLower(id)]
}

// MoveSelectedToCategory assigns every selected entry to the given
// category, persists the full id-to-category map so the moves survive
// the next reconciliation, and reports how many entries actually
// changed. A selection already entirely in the category is a no-op that
// writes nothing.
func (l *Library) MoveSelectedToCategory(tabID string) (int, error) {
	selected := l.SelectedIDs()
	if len(selected) == 0 {
		return 0, nil
	}

	entries, err := l.db.ListEntries()
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}

	wanted := make(map[string]bool, len(selected))
	for _, id := range selected {
		wanted[id] = true
	}

	changed := 0
	for i := range entries {
		if wanted[entries[i].Key()] && entries[i].Category != tabID {
			entries[i].Category = tabID
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}

	overrides := make(map[string]string, len(entries))
	for i := range entries {
		if entries[i].Category != "" {
			overrides[entries[i].Key()] = entries[i].Category
		}
	}

	if err := l.db.ReplaceCatalog(entries); err != nil {
		return 0, fmt.Errorf("store catalog: %w", err)
	}
	if err := l.db.ReplaceCategoryOverrides(overrides); err != nil {
		return 0, fmt.Errorf("store overrides: %w", err)
	}

	return changed, nil
}

// MoveEntry moves a single entry without touching the selection.
func (l *Library) MoveEntry(id, tabID string) (bool, error) {
	if err := l.db.SetCategoryOverride(id, tabID); err != nil {
		return false, fmt.Errorf("store override: %w", err)
	}

	entries, err := l.db.ListEntries()
	if err != nil {
		return false, fmt.Errorf("load catalog: %w", err)
	}

	key := strings.ToLower(id)
	for i := range entries {
		if entries[i].Key() == key {
			if entries[i].Category == tabID {
				return false, nil
			}
			entries[i].Category = tabID
			if err := l.db.UpsertEntry(&entries[i]); err != nil {
				return false, fmt.Errorf("store entry: %w", err)
			}
			return true, nil
		}
	}
	return false, fmt.Errorf("unknown entry %q", id)
}

// ToggleInstalled flips the installed mark and returns the new state.
func (l *Library) ToggleInstalled(id string) (bool, error) {
	installed, err := l.db.IsInstalled(id)
	if err != nil {
		return false, err
	}
	if err := l.db.SetInstalled(id, !installed); err != nil {
		return false, err
	}
	return !installed, nil
}

// ToggleHidden flips a category's hidden state. Only admins may do so.
func (l *Library) ToggleHidden(category string) (bool, error) {
	if l.gate != nil && !l.gate.IsAdmin() {
		return false, fmt.Errorf("admin session required")
	}

	hidden, err := l.db.GetHiddenCategories()
	if err != nil {
		return false, err
	}
	next := !hidden[category]
	if err := l.db.SetHidden(category, next); err != nil {
		return false, err
	}
	return next, nil
}

// NewSinceLastSeen reports how many entries appeared since the user
// last acknowledged the catalog size.
func (l *Library) NewSinceLastSeen() (int, error) {
	entries, err := l.db.ListEntries()
	if err != nil {
		return 0, err
	}
	state, err := l.db.GetUserState()
	if err != nil {
		return 0, err
	}

	delta := len(entries) - state.LastSeenCount
	if delta < 0 {
		delta = 0
	}
	return delta, nil
}

// AcknowledgeNew records the current catalog size as seen.
func (l *Library) AcknowledgeNew() error {
	entries, err := l.db.ListEntries()
	if err != nil {
		return err
	}
	return l.db.UpdateLastSeenCount(len(entries))
}
