package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"momo-store/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DBConfig{Host: "db", Port: 5433, User: "momo", Password: "secret", Database: "restaurant"})
	want := "postgres://momo:secret@db:5433/restaurant"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestMigrationNamesSorted(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}
	for i, n := range names {
		if !strings.HasSuffix(n, ".sql") {
			t.Errorf("names[%d] = %q, want .sql suffix", i, n)
		}
		if i > 0 && names[i-1] > n {
			t.Errorf("migrations out of order: %q before %q", names[i-1], n)
		}
	}
}

func TestApplyMigrationsWithoutPool(t *testing.T) {
	Pool = nil
	if err := ApplyMigrations(context.Background(), false); err == nil {
		t.Error("ApplyMigrations without pool: want error")
	}
}

func TestApplyMigrationsIntegration(t *testing.T) {
	if testing.Short() || os.Getenv("DB_HOST") == "" {
		t.Skip("set DB_HOST to run against PostgreSQL")
	}
	cfg, _ := config.Load()
	ctx := context.Background()
	if err := Init(ctx, cfg.DB); err != nil {
		t.Skipf("db unavailable: %v", err)
	}
	defer Close()

	// twice: migrations must be re-runnable
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(ctx, false); err != nil {
			t.Fatalf("ApplyMigrations run %d: %v", i+1, err)
		}
	}
}
