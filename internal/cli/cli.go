// Package cli provides the command-line interface for Gamecrate.
package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "gamecrate",
	Short: "Docker image game catalog manager",
	Long: `Docker image game catalog manager

Browses a Docker Hub repository of game backup images, keeps a local
catalog in sync with the remote tag listing, and generates pull scripts
for selected entries.

Run without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(installedCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(infoCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
