package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <category> <id>...",
	Short: "Move entries to a category",
	Long: `Move one or more catalog entries to a category.

The move is stored as a user override and survives every later sync.
Moving entries that are already in the category reports zero changes.

Examples:
  gamecrate move action superMario64 doom
  gamecrate move finished quake`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	category := args[0]
	ids := args[1:]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range ids {
		a.lib.ToggleSelection(id)
	}

	changed, err := a.lib.MoveSelectedToCategory(category)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}

	if changed == 0 {
		fmt.Printf("Nothing to do: %d entries already in %q.\n", len(ids), category)
		return nil
	}
	fmt.Printf("Moved %d of %d entries to %q.\n", changed, len(ids), category)
	return nil
}
