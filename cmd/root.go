package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"timetabler/pkg/catalog"
	"timetabler/pkg/config"
	"timetabler/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.AppConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "timetabler",
	Short: "A CLI, TUI and HTTP API for planning lecture timetables",
	Long: `timetabler searches the university lecture catalog, places lectures on
weekly timetable grids and exports the result to an .ics file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; variables may come from the real environment
		envErr := godotenv.Load()

		loaded, err := config.LoadWithEnv()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.Init(cfg.LogLevel)

		if envErr != nil {
			logger.Debug("no .env file loaded", "error", envErr)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newCatalogCache wires the HTTP client and the disk snapshot behind the process-wide cache.
func newCatalogCache(ctx context.Context) *catalog.Cache {
	opts := catalog.CacheOptions{
		RetryOnFailure: true,
		Logger:         logger,
	}

	if !cfg.DisableSnapshot {
		snapshot, err := catalog.NewSnapshot(cfg.Catalog(), cfg.SnapshotDuration())
		if err != nil {
			logger.Warn("catalog snapshot disabled", "error", err)
		} else {
			opts.Snapshot = snapshot
		}
	}

	return catalog.NewCache(ctx, catalog.NewClient(cfg.Catalog()), opts)
}
