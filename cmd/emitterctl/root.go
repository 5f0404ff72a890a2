package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/emitter/pkg/emitter/config"
	"github.com/randalmurphal/emitter/pkg/emitter/failstore"
)

// cliConfig holds the persistent flags shared by every subcommand.
type cliConfig struct {
	db         string
	configPath string
	logLevel   string
	logger     *slog.Logger
}

// buildRootCmd constructs the command tree writing results to out.
func buildRootCmd(out io.Writer) *cobra.Command {
	cfg := &cliConfig{}

	root := &cobra.Command{
		Use:           "emitterctl",
		Short:         "Inspect the emitter failure journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&cfg.db, "db", "", "Path to the sqlite failure journal (defaults to failure_store_path from --config, then failures.db)")
	root.PersistentFlags().StringVar(&cfg.configPath, "config", "", "Emitter config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&cfg.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults log_level from --config, then info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		_, settings, err := config.Load(cfg.configPath)
		if err != nil {
			return err
		}
		if cfg.db == "" {
			cfg.db = settings.FailureStorePath
		}
		if cfg.logLevel == "" {
			cfg.logLevel = settings.LogLevel
		}
		cfg.logger = newLogger(cmd.ErrOrStderr(), cfg.logLevel)
		return nil
	}

	root.AddCommand(buildFailuresCmd(cfg))
	return root
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// openStore opens the journal, refusing to create a new file.
func (c *cliConfig) openStore() (*failstore.SQLiteStore, error) {
	if _, err := os.Stat(c.db); err != nil {
		return nil, fmt.Errorf("open journal %s: %w", c.db, err)
	}
	c.logger.Debug("opening failure journal", slog.String("path", c.db))
	return failstore.NewSQLiteStore(c.db)
}
