package db

import (
	"context"
	"fmt"

	"momo-store/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

// DSN builds the connection string for cfg.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func Init(ctx context.Context, cfg config.DBConfig) error {
	pool, err := pgxpool.New(ctx, DSN(cfg))
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	Pool = pool
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
