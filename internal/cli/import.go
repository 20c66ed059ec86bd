package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/db"
	"github.com/gamecrate/gamecrate/internal/manifest"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import settings and selection from a manifest",
	Long: `Import sort settings and an entry selection from a manifest file.

A file that fails to parse is rejected as a whole. When it parses,
settings and selection are applied independently; either may be absent.

Examples:
  gamecrate import gamecrate.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// dbApplier routes manifest fields into the local store.
type dbApplier struct {
	db *db.DB
}

func (a *dbApplier) ApplySettings(sortKey, sortDir string) error {
	if sortKey == "" && sortDir == "" {
		return nil
	}
	state, err := a.db.GetUserState()
	if err != nil {
		return err
	}
	if sortKey == "" {
		sortKey = state.SortKey
	}
	if sortDir == "" {
		sortDir = state.SortDir
	}
	return a.db.UpdateSortDefaults(sortKey, sortDir)
}

func (a *dbApplier) ApplySelection(ids []string) error {
	for _, id := range ids {
		if err := a.db.SetInstalled(id, true); err != nil {
			return err
		}
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := manifest.Read(args[0])
	if err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	result, err := manifest.Import(m, &dbApplier{db: a.db})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if result.SettingsApplied {
		fmt.Println("Applied sort settings.")
	}
	if result.SelectionApplied {
		fmt.Printf("Marked %d entries as installed.\n", result.SelectionCount)
	}
	if !result.SettingsApplied && !result.SelectionApplied {
		fmt.Println("Manifest contained nothing to apply.")
	}
	return nil
}
