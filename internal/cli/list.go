package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/view"
)

var (
	listTab       string
	listSearch    string
	listSort      string
	listDirection string
	listInstalled bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Long: `List the cached catalog with the same filtering and sorting the
TUI uses.

Examples:
  gamecrate list
  gamecrate list --tab action --sort size --direction desc
  gamecrate list --search mario
  gamecrate list --installed`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTab, "tab", "all", "category tab to show")
	listCmd.Flags().StringVar(&listSearch, "search", "", "substring filter on name, id, or category")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort key: name, time, category, size, date")
	listCmd.Flags().StringVar(&listDirection, "direction", "", "sort direction: asc or desc")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "only entries marked installed")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.lib.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	state, err := a.db.GetUserState()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	filter := view.FilterState{
		ActiveTab:     listTab,
		SearchQuery:   listSearch,
		SortKey:       view.SortKey(state.SortKey),
		SortDirection: view.Direction(state.SortDir),
		InstalledOnly: listInstalled,
	}
	if listSort != "" {
		filter.SortKey = view.SortKey(listSort)
	}
	if listDirection != "" {
		filter.SortDirection = view.Direction(listDirection)
	}

	hidden, err := a.db.GetHiddenCategories()
	if err != nil {
		return fmt.Errorf("load hidden categories: %w", err)
	}
	installed, err := a.db.GetInstalled()
	if err != nil {
		return fmt.Errorf("load installed marks: %w", err)
	}

	p := view.Project(entries, filter, hidden, a.lib.Gate().IsAdmin(), installed)

	if len(p.Entries) == 0 {
		fmt.Println("No entries. Run 'gamecrate sync' to fetch the catalog.")
		return nil
	}

	dimStyle := lipgloss.NewStyle().Faint(true)
	for _, e := range p.Entries {
		mark := " "
		if installed[e.Key()] {
			mark = "✓"
		}
		fmt.Printf("  %s %-32s %-12s %10s %8s  %s\n",
			mark, e.DisplayName, formatCategory(e), formatSize(e.SizeGB), formatHours(e.Hours), dimStyle.Render(formatDate(e.DateAdded)))
	}
	fmt.Printf("\n%d of %d entries\n", p.VisibleCount, p.TotalCount)

	return nil
}
