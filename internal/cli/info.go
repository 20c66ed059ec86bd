package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/models"
	"github.com/gamecrate/gamecrate/pkg/version"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show catalog and configuration status",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.db.GetStats()
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	lastSync := "never"
	if raw, err := a.db.GetSyncMeta(models.SyncMetaLastFullSync); err == nil && raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			lastSync = t.Format("2006-01-02 15:04:05")
		}
	}

	newCount, err := a.lib.NewSinceLastSeen()
	if err != nil {
		return fmt.Errorf("count new entries: %w", err)
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(headerStyle.Render(version.Full()))
	fmt.Println()
	fmt.Printf("  Repository:    %s/%s\n", a.cfg.Registry.Owner, a.cfg.Registry.Repo)
	fmt.Printf("  Database:      %s (%d bytes)\n", a.db.Path(), stats.DBSizeBytes)
	fmt.Printf("  Entries:       %d (%d new since last seen)\n", stats.TotalEntries, newCount)
	fmt.Printf("  Tabs:          %d\n", stats.TotalTabs)
	fmt.Printf("  Installed:     %d\n", stats.InstalledCount)
	fmt.Printf("  Hidden tabs:   %d\n", stats.HiddenCount)
	fmt.Printf("  Last sync:     %s\n", lastSync)

	return nil
}
