package storage

import (
	"context"
	"fmt"

	"github.com/claude/sleeplog/internal/config"
)

// Open connects the Repository selected by cfg.Driver. For PostgreSQL the
// migrations in migrationsPath are applied first; SQLite carries its own schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, migrationsPath string) (Repository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.Path)
	case config.DriverPostgres, "":
		if migrationsPath != "" {
			if err := RunMigrations(cfg.DSN(), migrationsPath); err != nil {
				return nil, err
			}
		}
		return New(ctx, cfg.DSN())
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
