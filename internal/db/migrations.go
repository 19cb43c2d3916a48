package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS category (
		id SERIAL PRIMARY KEY,
		category_name TEXT NOT NULL,
		created_at DATE DEFAULT CURRENT_DATE
	)`,
	`CREATE TABLE IF NOT EXISTS unit (
		unit_id SERIAL PRIMARY KEY,
		unit_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		id SERIAL PRIMARY KEY,
		product_name TEXT NOT NULL,
		product_type TEXT NOT NULL,
		category_id INTEGER REFERENCES category(id),
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		unit_id INTEGER REFERENCES unit(unit_id),
		stock_status TEXT DEFAULT 'out of stock',
		status TEXT DEFAULT 'active',
		created_at DATE DEFAULT CURRENT_DATE
	)`,
	`CREATE TABLE IF NOT EXISTS purchase (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES product(id),
		batch_number TEXT,
		purchase_quantity INTEGER NOT NULL,
		remaining_quantity INTEGER NOT NULL,
		expiration_date DATE,
		status TEXT DEFAULT 'active',
		purchase_date DATE DEFAULT CURRENT_DATE
	)`,
	`CREATE TABLE IF NOT EXISTS "Order" (
		order_id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES product(id),
		order_quantity INTEGER NOT NULL,
		batch_number TEXT,
		order_date DATE DEFAULT CURRENT_DATE
	)`,
	`CREATE TABLE IF NOT EXISTS stock_transaction (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES product(id),
		quantity INTEGER NOT NULL,
		transaction_type TEXT NOT NULL,
		actor TEXT,
		created_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notification (
		id SERIAL PRIMARY KEY,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now(),
		is_read BOOLEAN DEFAULT FALSE,
		type TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_status ON purchase (status, expiration_date)`,
	`CREATE INDEX IF NOT EXISTS idx_notification_created_at ON notification (created_at DESC)`,
}

// Migrate creates every table the service needs. It is safe to run on each start.
func Migrate(ctx context.Context, db Beginner) error {
	return WithTx(ctx, db, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d failed: %w", i+1, err)
			}
		}
		return nil
	})
}
