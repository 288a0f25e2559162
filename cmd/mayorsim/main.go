// Command mayorsim runs the mayor simulation: a live HTTP game, a headless
// seeded run, or maintenance on the stored save.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/mayor-sim/internal/config"
	"github.com/talgya/mayor-sim/internal/engine"
	"github.com/talgya/mayor-sim/internal/persistence"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "mayorsim",
		Short:        "Turn-based city management: run the city, survive the term",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "mayorsim.yaml", "path to the YAML config file")

	root.AddCommand(
		newServeCmd(&cfgPath),
		newSimulateCmd(&cfgPath),
		newResetCmd(&cfgPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config and installs the process logger.
func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// stores is the persistence a command runs against.
type stores struct {
	save    persistence.SaveStore
	history engine.HistoryStore
	close   func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Dialect {
	case "memory":
		return &stores{
			save:    persistence.NewMemoryStore(),
			history: &persistence.MemoryHistory{},
			close:   func() {},
		}, nil
	case "sqlite":
		if dir := filepath.Dir(cfg.Storage.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return openDB(ctx, persistence.DialectSQLite, cfg.Storage.SQLitePath)
	case "postgres":
		return openDB(ctx, persistence.DialectPostgres, cfg.Storage.PostgresDSN)
	}
	return nil, fmt.Errorf("unknown storage dialect %q", cfg.Storage.Dialect)
}

func openDB(ctx context.Context, dialect persistence.Dialect, dsn string) (*stores, error) {
	db, err := persistence.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}
	return &stores{
		save:    db,
		history: db,
		close: func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		},
	}, nil
}
