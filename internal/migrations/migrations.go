package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the POS backend.
func Run(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "pgx" {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SQLite has no exact decimal type, so money columns hold decimal strings.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            plu INTEGER NOT NULL UNIQUE,
            name TEXT NOT NULL,
            stock_qty INTEGER NOT NULL DEFAULT 0,
            cost_price TEXT NOT NULL,
            sale_price TEXT NOT NULL,
            supplier TEXT NOT NULL,
            last_restock_date TEXT NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS materials (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            existence TEXT NOT NULL,
            price TEXT NOT NULL,
            supplier TEXT NOT NULL,
            buy_link TEXT NOT NULL DEFAULT '',
            last_income TEXT NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS services (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL,
            commission TEXT NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS orders (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            finished INTEGER NOT NULL DEFAULT 0,
            order_date TEXT NOT NULL,
            description TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            phone_number TEXT NOT NULL DEFAULT '',
            price TEXT NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS daily_sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            item_kind TEXT NOT NULL,
            item_id INTEGER NOT NULL,
            item_name TEXT NOT NULL,
            sale_date TEXT NOT NULL,
            units_out INTEGER NOT NULL DEFAULT 0,
            revenue_generated TEXT NOT NULL DEFAULT '0',
            UNIQUE(item_kind, item_id, sale_date)
        );`,
	`CREATE INDEX IF NOT EXISTS idx_daily_sales_date ON daily_sales (sale_date);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            plu BIGINT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            stock_qty BIGINT NOT NULL DEFAULT 0,
            cost_price NUMERIC(14,2) NOT NULL,
            sale_price NUMERIC(14,2) NOT NULL,
            supplier TEXT NOT NULL,
            last_restock_date TEXT NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS materials (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            existence NUMERIC(14,3) NOT NULL,
            price NUMERIC(14,2) NOT NULL,
            supplier TEXT NOT NULL,
            buy_link TEXT NOT NULL DEFAULT '',
            last_income TEXT NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS services (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL,
            commission NUMERIC(14,2) NOT NULL,
            image_path TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            finished BOOLEAN NOT NULL DEFAULT FALSE,
            order_date TEXT NOT NULL,
            description TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            phone_number TEXT NOT NULL DEFAULT '',
            price NUMERIC(14,2) NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS daily_sales (
            id SERIAL PRIMARY KEY,
            item_kind TEXT NOT NULL,
            item_id BIGINT NOT NULL,
            item_name TEXT NOT NULL,
            sale_date TEXT NOT NULL,
            units_out BIGINT NOT NULL DEFAULT 0,
            revenue_generated NUMERIC(14,2) NOT NULL DEFAULT 0,
            UNIQUE(item_kind, item_id, sale_date)
        );`,
	`CREATE INDEX IF NOT EXISTS idx_daily_sales_date ON daily_sales (sale_date);`,
}
