// Package dbtest connects repository tests to a scratch Postgres database.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sfsking/pizza-party-hq/internal/connections/database"
)

// Pool connects to PIZZA_TEST_DATABASE_URL and applies the schema. The test is
// skipped when the variable is unset or the server does not answer.
func Pool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PIZZA_TEST_DATABASE_URL")
	if url == "" {
		t.Skipf("PIZZA_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Postgres not available: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// SeedProfile inserts an employee profile with a unique id and email.
func SeedProfile(t testing.TB, pool *pgxpool.Pool, fullName string) string {
	t.Helper()
	id := "test-" + uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO profiles (id, full_name, email, role, active)
		VALUES ($1, $2, $3, 'employee', TRUE)
	`, id, fullName, id+"@example.test")
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t testing.TB, pool *pgxpool.Pool, name, price string, active bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, name, price, active, quantity)
		VALUES ($1, $2, $3, $4, 10)
	`, id, name, decimal.RequireFromString(price).String(), active)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}
