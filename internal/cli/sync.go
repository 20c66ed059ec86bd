package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the remote tag listing and update the local catalog",
	Long: `Fetch all tags from the configured Docker Hub repository and
reconcile them into the local catalog.

Newly appeared tags land in the "new" category; your own category moves
are preserved across syncs.

Examples:
  gamecrate sync`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (%s/%s)\n", headerStyle.Render("SYNCING"), a.cfg.Registry.Owner, a.cfg.Registry.Repo)
	fmt.Println(strings.Repeat("─", 50))

	result, err := a.lib.Sync(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	switch {
	case result.Skipped:
		fmt.Println("A sync is already in progress.")
		return nil
	case result.FetchFailed:
		fmt.Println("Registry unreachable; catalog left unchanged.")
		for _, e := range result.Errors {
			fmt.Printf("  %v\n", e)
		}
		return nil
	}

	fmt.Printf("Fetched %d tags in %s\n", result.TagCount, result.Duration.Round(10*time.Millisecond))
	if result.Partial {
		fmt.Printf("Partial listing: %d page(s) failed\n", len(result.Errors))
	}
	if len(result.NewlyAdded) > 0 {
		fmt.Printf("New entries (%d):\n", len(result.NewlyAdded))
		for _, id := range result.NewlyAdded {
			fmt.Printf("  + %s\n", id)
		}
	} else {
		fmt.Println("No new entries.")
	}
	if result.ChangedMetadata > 0 {
		fmt.Printf("Updated metadata for %d entries\n", result.ChangedMetadata)
	}

	return nil
}
