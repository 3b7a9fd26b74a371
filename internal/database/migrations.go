package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schema creates the orders and order_items tables
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	reference VARCHAR(32) UNIQUE NOT NULL,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL,
	postal_code VARCHAR(32) NOT NULL,
	subtotal BIGINT NOT NULL,
	tax BIGINT NOT NULL,
	total BIGINT NOT NULL,
	currency VARCHAR(3) NOT NULL,
	status VARCHAR(50) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	product_slug VARCHAR(255) NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	price BIGINT NOT NULL,
	PRIMARY KEY (order_id, position)
);

CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create order tables: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
