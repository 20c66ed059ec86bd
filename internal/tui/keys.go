package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines all key bindings for the TUI.
type Keymap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	// Actions
	Toggle     key.Binding
	SelectAll  key.Binding
	ClearSel   key.Binding
	Move       key.Binding
	Installed  key.Binding
	OnlyInst   key.Binding
	Hide       key.Binding
	Unlock     key.Binding
	Search     key.Binding
	Sort       key.Binding
	Direction  key.Binding
	Sync       key.Binding
	CopyScript key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle selection"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all visible"),
		),
		ClearSel: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "clear selection"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move selection to category"),
		),
		Installed: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle installed"),
		),
		OnlyInst: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "installed only"),
		),
		Hide: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "hide/unhide tab (admin)"),
		),
		Unlock: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "admin unlock"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle sort key"),
		),
		Direction: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "flip sort direction"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync now"),
		),
		CopyScript: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "copy pull script"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpText returns condensed help text for the footer.
func (k Keymap) HelpText() string {
	return "/ search • tab switch • space select • m move • g script • s sync • q quit"
}
