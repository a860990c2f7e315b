package main

import (
	"fmt"

	"github.com/claude/sleeplog/internal/config"
	"github.com/claude/sleeplog/internal/storage"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverSQLite {
		s, err := storage.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return err
		}
		fmt.Printf("  SQLite schema ready at %s\n", cfg.Database.Path)
		return s.Close()
	}
	if err := storage.RunMigrations(cfg.Database.DSN(), flagMigrations); err != nil {
		return err
	}
	fmt.Println("  Migrations applied.")
	return nil
}
