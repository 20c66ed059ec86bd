package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/config"
	"github.com/gamecrate/gamecrate/internal/log"
	"github.com/gamecrate/gamecrate/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	paths := config.GetPaths(a.cfg)
	if err := log.Init(paths.Logs); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = log.Close() }()

	model := tui.New(a.lib, a.db, a.cfg)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
