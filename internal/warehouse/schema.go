//-------------------------------------------------------------------------
//
// Retail Data Warehouse ETL
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"

	"github.com/retaildw/retaildw/internal/logging"
)

// Star-schema DDL for the retail warehouse.
const createSchemaSQL = `
-- Date Dimension
CREATE TABLE IF NOT EXISTS dim_date (
    date_id      INTEGER PRIMARY KEY,
    full_date    DATE NOT NULL,
    day          INTEGER NOT NULL,
    month        INTEGER NOT NULL,
    month_name   VARCHAR(9) NOT NULL,
    quarter      INTEGER NOT NULL,
    year         INTEGER NOT NULL,
    week_of_year INTEGER NOT NULL,
    day_of_week  VARCHAR(9) NOT NULL,
    is_weekend   BOOLEAN NOT NULL
);

-- Customer Dimension
CREATE TABLE IF NOT EXISTS dim_customer (
    customer_id INTEGER PRIMARY KEY,
    first_name  VARCHAR(50) NOT NULL,
    last_name   VARCHAR(50) NOT NULL,
    full_name   VARCHAR(101) NOT NULL,
    email       VARCHAR(100) NOT NULL,
    city        VARCHAR(50) NOT NULL,
    segment     VARCHAR(20) NOT NULL
);

-- Product Dimension
CREATE TABLE IF NOT EXISTS dim_product (
    product_id   INTEGER PRIMARY KEY,
    product_name VARCHAR(100) NOT NULL,
    category     VARCHAR(50) NOT NULL,
    unit_cost    NUMERIC(10,4) NOT NULL,
    supplier     VARCHAR(50) NOT NULL
);

-- Channel Dimension (static seed data)
CREATE TABLE IF NOT EXISTS dim_channel (
    channel_id   INTEGER PRIMARY KEY,
    channel_name VARCHAR(20) NOT NULL
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS fact_sales (
    order_item_id INTEGER PRIMARY KEY,
    order_id      INTEGER NOT NULL,
    date_id       INTEGER NOT NULL REFERENCES dim_date(date_id),
    customer_id   INTEGER NOT NULL REFERENCES dim_customer(customer_id),
    product_id    INTEGER NOT NULL REFERENCES dim_product(product_id),
    channel_id    INTEGER NOT NULL REFERENCES dim_channel(channel_id),
    quantity      INTEGER NOT NULL,
    unit_price    NUMERIC(10,4) NOT NULL,
    unit_cost     NUMERIC(10,4) NOT NULL,
    discount      NUMERIC(6,4) NOT NULL,
    gross_revenue NUMERIC(12,4) NOT NULL,
    net_revenue   NUMERIC(12,4) NOT NULL,
    cogs          NUMERIC(12,4) NOT NULL,
    gross_margin  NUMERIC(12,4) NOT NULL,
    status        VARCHAR(20) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(date_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_id);
`

const seedChannelsSQL = `
INSERT INTO dim_channel (channel_id, channel_name) VALUES
    (1, 'online'),
    (2, 'mobile_app'),
    (3, 'store')
ON CONFLICT (channel_id) DO NOTHING
`

// refreshTables are replaced in full on every pipeline run; dim_channel is
// static seed data and survives.
var refreshTables = []string{"fact_sales", "dim_date", "dim_customer", "dim_product"}

var allTables = []string{"fact_sales", "dim_date", "dim_customer", "dim_product", "dim_channel"}

// EnsureSchema creates the warehouse tables if they do not exist and seeds
// the channel dimension.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.pool.Exec(ctx, seedChannelsSQL); err != nil {
		return fmt.Errorf("failed to seed dim_channel: %w", err)
	}
	logging.Debug().Msg("Warehouse schema ensured")
	return nil
}

// DropSchema drops all warehouse tables.
func (s *Store) DropSchema(ctx context.Context) error {
	for _, table := range allTables {
		if _, err := s.pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	logging.Info().Msg("Dropped warehouse schema")
	return nil
}
