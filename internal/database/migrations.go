package database

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "001_tables",
		sql: `
			CREATE TABLE IF NOT EXISTS tables (
				number INT PRIMARY KEY CHECK (number > 0)
			);
			CREATE TABLE IF NOT EXISTS table_sessions (
				id UUID PRIMARY KEY,
				table_number INT NOT NULL REFERENCES tables(number),
				started_at TIMESTAMPTZ NOT NULL,
				ended_at TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS idx_table_sessions_active
				ON table_sessions (table_number) WHERE ended_at IS NULL;
		`,
	},
	{
		name: "002_catalog",
		sql: `
			CREATE TABLE IF NOT EXISTS categories (
				id UUID PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				description VARCHAR(500) NOT NULL DEFAULT ''
			);
			CREATE TABLE IF NOT EXISTS products (
				id UUID PRIMARY KEY,
				name VARCHAR(200) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				price_amount NUMERIC(10,2) NOT NULL CHECK (price_amount >= 0),
				price_currency CHAR(3) NOT NULL,
				category_id UUID NOT NULL REFERENCES categories(id),
				allergens TEXT[] NOT NULL DEFAULT '{}',
				available BOOLEAN NOT NULL DEFAULT TRUE
			);
			CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);
		`,
	},
	{
		name: "003_orders",
		sql: `
			CREATE TABLE IF NOT EXISTS orders (
				id UUID PRIMARY KEY,
				table_number INT NOT NULL REFERENCES tables(number),
				session_id UUID NOT NULL,
				status VARCHAR(16) NOT NULL,
				total_amount NUMERIC(10,2) NOT NULL,
				total_currency CHAR(3) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				confirmed_at TIMESTAMPTZ
			);
			CREATE TABLE IF NOT EXISTS order_lines (
				id UUID PRIMARY KEY,
				order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
				position INT NOT NULL,
				product_id UUID NOT NULL,
				product_name VARCHAR(200) NOT NULL,
				unit_price_amount NUMERIC(10,2) NOT NULL,
				unit_price_currency CHAR(3) NOT NULL,
				quantity INT NOT NULL CHECK (quantity BETWEEN 1 AND 100)
			);
			CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id);
			CREATE INDEX IF NOT EXISTS idx_orders_table_status ON orders (table_number, status);
		`,
	},
	{
		name: "004_payments",
		sql: `
			CREATE TABLE IF NOT EXISTS payments (
				id UUID PRIMARY KEY,
				order_id UUID NOT NULL REFERENCES orders(id),
				amount NUMERIC(10,2) NOT NULL,
				currency CHAR(3) NOT NULL,
				status VARCHAR(16) NOT NULL,
				transaction_id TEXT,
				failure_reason TEXT,
				created_at TIMESTAMPTZ NOT NULL,
				processed_at TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS idx_payments_order ON payments (order_id, created_at DESC);
		`,
	},
	{
		name: "005_outbox",
		sql: `
			CREATE TABLE IF NOT EXISTS outbox (
				id BIGSERIAL PRIMARY KEY,
				aggregate_type TEXT NOT NULL,
				aggregate_id TEXT NOT NULL,
				type TEXT NOT NULL,
				payload JSONB NOT NULL,
				traceparent TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'pending',
				relay_id TEXT,
				lease_until TIMESTAMPTZ,
				retry_count INT NOT NULL DEFAULT 0,
				last_error TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (id) WHERE status = 'pending';
		`,
	},
}

// Migrate applies the embedded schema migrations that have not run yet.
func Migrate(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name=$1)`, m.name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.name); err != nil {
			return err
		}
		log.Info("migration applied", "name", m.name)
	}
	return nil
}
