package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var hideCmd = &cobra.Command{
	Use:   "hide <category>",
	Short: "Hide a category tab (admin)",
	Long: `Hide a category so its entries disappear for non-admin sessions.

Prompts for the admin password. The "all" tab can never be hidden.

Examples:
  gamecrate hide beta`,
	Args: cobra.ExactArgs(1),
	RunE: runHide,
}

var unhideCmd = &cobra.Command{
	Use:   "unhide <category>",
	Short: "Unhide a category tab (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnhide,
}

func runHide(cmd *cobra.Command, args []string) error {
	return setHidden(args[0], true)
}

func runUnhide(cmd *cobra.Command, args []string) error {
	return setHidden(args[0], false)
}

func setHidden(category string, hidden bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := promptAdmin(a); err != nil {
		return err
	}

	if err := a.db.SetHidden(category, hidden); err != nil {
		return err
	}

	if hidden {
		fmt.Printf("Category %q is now hidden.\n", category)
	} else {
		fmt.Printf("Category %q is now visible.\n", category)
	}
	return nil
}

// promptAdmin reads the admin password from the terminal and
// authenticates the session gate.
func promptAdmin(a *app) error {
	fmt.Print("Admin password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if !a.lib.Gate().Authenticate(string(password)) {
		return fmt.Errorf("authentication rejected")
	}
	return nil
}
