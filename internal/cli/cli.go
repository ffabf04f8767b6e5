package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/config"
	"github.com/pfrederiksen/tourboard/internal/logger"
	"github.com/pfrederiksen/tourboard/internal/storage"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNoEvents = 2
)

var (
	flagConfig  string
	flagDBPath  string
	flagDBDSN   string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tourboard",
		Short: "Track concert tour box office reports",
		Long: `Scrapes touring-data box office pages into a local database and reports
on tour stops, revenue snapshots, and country totals.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path")
	cmd.PersistentFlags().StringVar(&flagDBDSN, "dsn", "", "Postgres DSN (overrides --db)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newUpdateCmd(),
		newEventsCmd(),
		newSnapshotsCmd(),
		newRollupCmd(),
		newSongsCmd(),
		newServeCmd(),
	)

	return cmd
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagDBDSN != "" {
		cfg.DBDSN = flagDBDSN
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.DBPath, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return store, nil
}

func newLog() (*zap.Logger, error) {
	return logger.New(flagVerbose)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
