package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the reusable Lipgloss styles for the TUI.
type Styles struct {
	Header    lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	TabHidden lipgloss.Style
	Badge     lipgloss.Style

	Row         lipgloss.Style
	RowFocused  lipgloss.Style
	RowSelected lipgloss.Style

	Muted  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		TabIdle:   lipgloss.NewStyle().Faint(true).Padding(0, 1),
		TabHidden: lipgloss.NewStyle().Faint(true).Strikethrough(true).Padding(0, 1),
		Badge:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),

		Row:         lipgloss.NewStyle(),
		RowFocused:  lipgloss.NewStyle().Reverse(true),
		RowSelected: lipgloss.NewStyle().Bold(true),

		Muted:  lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Prompt: lipgloss.NewStyle().Bold(true),
	}
}
