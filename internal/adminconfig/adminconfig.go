// Package adminconfig implements both sides of the shared admin
// configuration service: a small HTTP service holding a single JSON
// document of catalog-wide defaults, and the client that fetches and
// publishes it. The document carries default hidden tabs and category
// assignments pushed to every installation.
package adminconfig

import "time"

// Document is the single shared configuration record.
type Document struct {
	// HiddenTabs is the default set of hidden category names.
	HiddenTabs []string `json:"hiddenTabs"`

	// GameCategories maps lowercased entry ids to categories.
	GameCategories map[string]string `json:"gameCategories"`

	// LastUpdated is maintained server-side on every accepted write.
	LastUpdated time.Time `json:"lastUpdated"`
}

// Empty returns a document with no defaults.
func Empty() *Document {
	return &Document{
		HiddenTabs:     []string{},
		GameCategories: map[string]string{},
	}
}

// Merge folds an incoming update into the document. Category
// assignments merge key-wise so independent admins do not clobber each
// other; the hidden-tab set is replaced wholesale since it is edited as
// a unit.
func (d *Document) Merge(update *Document) {
	if update == nil {
		return
	}

	if update.HiddenTabs != nil {
		d.HiddenTabs = append([]string(nil), update.HiddenTabs...)
	}

	if len(update.GameCategories) > 0 {
		if d.GameCategories == nil {
			d.GameCategories = make(map[string]string, len(update.GameCategories))
		}
		for id, category := range update.GameCategories {
			d.GameCategories[id] = category
		}
	}

	d.LastUpdated = time.Now().UTC()
}
