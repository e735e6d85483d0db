// Command suplementorctl runs maintenance and query tasks against the
// Suplementor database without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/suplementor-backend/internal/app"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

var (
	configPath string
	verbose    bool
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "suplementorctl",
		Short:        "Maintenance CLI for the Suplementor backend",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults to CONFIG_PATH)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr while running")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newGraphSyncCmd(),
		newRecommendCmd(),
		newStackCmd(),
		newGoalsCmd(),
		newAdminTokenCmd(),
	)
	return root
}

func loadConfig() (*app.Config, error) {
	return app.LoadConfigFrom(configPath)
}

func cliLogger(cfg *app.Config) (*logger.Logger, error) {
	if !verbose {
		return logger.Nop(), nil
	}
	return logger.NewWithLevel(cfg.Log.Mode, cfg.Log.Level)
}

// openApp wires the full application without serving HTTP.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := cliLogger(cfg)
	if err != nil {
		return nil, err
	}
	// The CLI never serves /metrics.
	cfg.Metrics.Enabled = false
	return app.NewWithOptions(ctx, app.Options{Config: cfg, Log: log})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
