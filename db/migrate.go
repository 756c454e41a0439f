package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog/log"
)

// Embedded so `momo-store migrate` works regardless of the working directory.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationNames lists the embedded migrations in apply order.
func MigrationNames() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMigrations runs every embedded migration in name order. Migrations are
// written to be re-runnable.
func ApplyMigrations(ctx context.Context, verbose bool) error {
	if Pool == nil {
		return errors.New("migrate: database not initialized")
	}
	names, err := MigrationNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := Pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if verbose {
			log.Info().Str("migration", name).Msg("migration applied")
		}
	}
	return nil
}
