package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "Manage installed marks",
	Long: `Mark entries as installed, unmark them, or list the current set.

Examples:
  gamecrate installed add doom quake
  gamecrate installed remove doom
  gamecrate installed list`,
}

var installedAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Mark entries as installed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstalledAdd,
}

var installedRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Unmark entries as installed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstalledRemove,
}

var installedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed entries",
	Args:  cobra.NoArgs,
	RunE:  runInstalledList,
}

func init() {
	installedCmd.AddCommand(installedAddCmd)
	installedCmd.AddCommand(installedRemoveCmd)
	installedCmd.AddCommand(installedListCmd)
}

func runInstalledAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.db.SetInstalled(id, true); err != nil {
			return fmt.Errorf("mark %s: %w", id, err)
		}
	}
	fmt.Printf("Marked %d entries as installed.\n", len(args))
	return nil
}

func runInstalledRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.db.SetInstalled(id, false); err != nil {
			return fmt.Errorf("unmark %s: %w", id, err)
		}
	}
	fmt.Printf("Unmarked %d entries.\n", len(args))
	return nil
}

func runInstalledList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	installed, err := a.db.GetInstalled()
	if err != nil {
		return fmt.Errorf("load installed marks: %w", err)
	}

	if len(installed) == 0 {
		fmt.Println("No entries marked installed.")
		return nil
	}

	ids := make([]string, 0, len(installed))
	for id := range installed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("  ✓ %s\n", id)
	}
	fmt.Printf("\n%d installed\n", len(ids))
	return nil
}
