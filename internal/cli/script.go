package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/script"
)

var (
	scriptPlatform string
	scriptMount    string
	scriptOutput   string
	scriptCopy     bool
)

var scriptCmd = &cobra.Command{
	Use:   "script <id>...",
	Short: "Generate a pull script for entries",
	Long: `Generate a shell script that pulls the given entries' images and
unpacks them into a mount path.

The script checks the Docker daemon and registry reachability, pulls
each image with retries, then runs them one at a time to extract their
contents.

Examples:
  gamecrate script doom quake
  gamecrate script --platform windows --mount D:\Games doom
  gamecrate script --copy doom
  gamecrate script --output pull.sh doom`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().StringVar(&scriptPlatform, "platform", "posix", "script dialect: posix or windows")
	scriptCmd.Flags().StringVar(&scriptMount, "mount", "/mnt/games", "host path images are unpacked into")
	scriptCmd.Flags().StringVarP(&scriptOutput, "output", "o", "", "write the script to a file instead of stdout")
	scriptCmd.Flags().BoolVar(&scriptCopy, "copy", false, "copy the script to the clipboard")
}

func runScript(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := script.Options{
		Platform:   script.Platform(scriptPlatform),
		EntryIDs:   args,
		DockerUser: a.cfg.Registry.Owner,
		RepoName:   a.cfg.Registry.Repo,
		MountPath:  scriptMount,
	}

	text, err := script.Emit(opts)
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}

	if scriptCopy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Script for %d entries copied to clipboard.\n", len(args))
		return nil
	}

	if scriptOutput != "" {
		if err := os.WriteFile(scriptOutput, []byte(text), 0755); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", scriptOutput)
		return nil
	}

	fmt.Print(text)
	return nil
}
