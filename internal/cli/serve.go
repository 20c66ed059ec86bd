package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamecrate/gamecrate/internal/adminconfig"
	"github.com/gamecrate/gamecrate/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the shared admin-config service",
	Long: `Run the HTTP service that holds the shared admin configuration
document (default hidden tabs and category assignments).

GET /admin-config is public; POST requires the shared secret in the
X-Admin-Secret header. Prometheus metrics are exposed at /metrics.

The write secret comes from GAMECRATE_ADMIN_SECRET; without it the
service is read-only.

Examples:
  gamecrate serve
  gamecrate serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8640", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	paths := config.GetPaths(cfg)

	srv := adminconfig.NewServer(adminconfig.ServerConfig{
		Addr:      serveAddr,
		StorePath: paths.AdminStore,
		Secret:    cfg.Admin.Secret,
	})

	mode := "read-only"
	if cfg.Admin.Secret != "" {
		mode = "read-write"
	}
	fmt.Printf("admin-config service listening on %s (%s)\n", serveAddr, mode)

	return srv.ListenAndServe(cmd.Context())
}
