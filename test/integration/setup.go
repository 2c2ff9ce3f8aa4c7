package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// The container picks a random host port, so connect with the
	// container's own connection string.
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			unit_price DECIMAL(12,2) NOT NULL CHECK (unit_price >= 0),
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS print_tariffs (
			format TEXT NOT NULL,
			color BOOLEAN NOT NULL,
			per_page DECIMAL(12,2) NOT NULL CHECK (per_page >= 0),
			active BOOLEAN NOT NULL DEFAULT TRUE,
			PRIMARY KEY (format, color)
		);

		CREATE TABLE IF NOT EXISTS discount_tiers (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			percent INTEGER NOT NULL CHECK (percent BETWEEN 0 AND 100)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			discount_percent INTEGER NOT NULL CHECK (discount_percent BETWEEN 0 AND 100),
			state TEXT NOT NULL,
			correction_reason TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			version BIGINT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_lines (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(12,2) NOT NULL CHECK (unit_price >= 0),
			product_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			page_count INTEGER NOT NULL DEFAULT 0,
			format TEXT NOT NULL DEFAULT '',
			color BOOLEAN NOT NULL DEFAULT FALSE,
			file_ref TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS order_history (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			at TIMESTAMPTZ NOT NULL,
			state TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (order_id, seq)
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts test products, print tariffs, and discount tiers.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id    string
		name  string
		price string
	}{
		{"P001", "Cuaderno A4", "2500"},
		{"P002", "Lapicera", "800"},
		{"P003", "Carpeta", "1500"},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, unit_price) VALUES ($1, $2, $3)",
			p.id, p.name, p.price,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}

	tariffs := []struct {
		format  string
		color   bool
		perPage string
	}{
		{"A4", false, "50"},
		{"A4", true, "150"},
		{"A3", false, "100"},
		{"A3", true, "300"},
		{"A5", false, "30"},
		{"A5", true, "80"},
	}
	for _, tr := range tariffs {
		_, err := pool.Exec(ctx,
			"INSERT INTO print_tariffs (format, color, per_page) VALUES ($1, $2, $3)",
			tr.format, tr.color, tr.perPage,
		)
		if err != nil {
			t.Fatalf("failed to seed tariff %s: %v", tr.format, err)
		}
	}

	tiers := []struct {
		id      string
		percent int
	}{
		{"estudiante", 10},
		{"docente", 15},
		{"cliente", 0},
	}
	for _, tier := range tiers {
		_, err := pool.Exec(ctx,
			"INSERT INTO discount_tiers (id, percent) VALUES ($1, $2)",
			tier.id, tier.percent,
		)
		if err != nil {
			t.Fatalf("failed to seed tier %s: %v", tier.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_history", "order_lines", "orders", "discount_tiers", "print_tariffs", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
