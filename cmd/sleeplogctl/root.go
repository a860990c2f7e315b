package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/sleeplog/internal/config"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/storage"

	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagUser       int64
	flagMigrations string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "sleeplogctl",
	Short:         "Sleep diary CLI",
	Long:          "Record nights, look up last night's sleep and report rolling averages.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.yaml", "Path to config file")
	rootCmd.PersistentFlags().Int64VarP(&flagUser, "user", "u", 1, "User id to act for")
	rootCmd.PersistentFlags().StringVar(&flagMigrations, "migrations", "migrations", "Path to migrations directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log to stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openService is the shared setup path used by all data commands.
// The returned cleanup closes the database.
func openService(ctx context.Context) (*service.SleepLogService, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagUser <= 0 {
		return nil, nil, fmt.Errorf("--user must be positive, got %d", flagUser)
	}
	repo, err := storage.Open(ctx, cfg.Database, flagMigrations)
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(repo, newLogger(), service.WithWindowDays(cfg.Report.WindowDays))
	return svc, func() { _ = repo.Close() }, nil
}
