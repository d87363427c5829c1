// Package testutil opens a migrated Postgres pool for adapter contract tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/need-mission/site-api/internal/adapters/postgres"
	"github.com/need-mission/site-api/internal/adapters/postgres/migrate"
)

// OpenMigratedPool connects to TEST_DATABASE_URL, applies migrations and truncates all
// tables. The test is skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres test")
	}
	if err := migrate.Run(dsn, migrate.DirectionUp); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{ConnectTimeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE memberships, contact_messages, programs`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
