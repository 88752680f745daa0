package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS networks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT PRIMARY KEY,
		network_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		town TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		network_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		base_price BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS restaurant_prices (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		restaurant_id TEXT NOT NULL,
		price BIGINT NOT NULL,
		is_stop_list BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (product_id, restaurant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS additives (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_zones (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL,
		title TEXT NOT NULL,
		price BIGINT NOT NULL,
		min_order BIGINT NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		radius_km DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS surcharges (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		percent DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS discounts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		code TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		min_order_amount BIGINT NOT NULL DEFAULT 0,
		order_types TEXT[] NOT NULL DEFAULT '{}',
		restaurant_ids TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS discounts_code_idx ON discounts (code) WHERE code <> ''`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		restaurant_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		delivery_zone_id TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		table_number INT NOT NULL DEFAULT 0,
		customer_phone TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		base_price BIGINT NOT NULL,
		total BIGINT NOT NULL,
		savings BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price BIGINT NOT NULL,
		additive_ids TEXT[] NOT NULL DEFAULT '{}',
		line_total BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_adjustments (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		adjustment_id TEXT NOT NULL,
		title TEXT NOT NULL,
		amount BIGINT NOT NULL,
		is_discount BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payment_integrations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		provider TEXT NOT NULL,
		credentials JSONB NOT NULL DEFAULT '{}',
		enabled BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		phone TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		bonus_balance BIGINT NOT NULL DEFAULT 0,
		order_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema at startup. Statements are idempotent so a
// restart is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
