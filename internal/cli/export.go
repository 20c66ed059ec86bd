package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/manifest"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [id]...",
	Short: "Export settings and a selection to gamecrate.json",
	Long: `Export the current sort settings and an optional entry selection
to a portable manifest file.

Examples:
  gamecrate export
  gamecrate export doom quake -o backup.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", manifest.DefaultFileName, "manifest file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.db.GetUserState()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	m := manifest.New(&manifest.Settings{
		SortKey: state.SortKey,
		SortDir: state.SortDir,
	}, args)

	if err := m.Write(exportOutput); err != nil {
		return err
	}

	fmt.Printf("Exported settings and %d selected entries to %s\n", len(args), exportOutput)
	return nil
}
