package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/transform"
)

// batchSize is the number of queued inserts sent per round trip.
const batchSize = 1000

// StoreWriteError reports a failed warehouse write. The load transaction is
// rolled back, so the prior warehouse content survives.
type StoreWriteError struct {
	Table string
	Err   error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Table, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// Store loads transform output into the PostgreSQL warehouse.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an established connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const (
	insertDateSQL = `
        INSERT INTO dim_date (date_id, full_date, day, month, month_name,
            quarter, year, week_of_year, day_of_week, is_weekend)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (date_id) DO UPDATE SET
            full_date = EXCLUDED.full_date, day = EXCLUDED.day,
            month = EXCLUDED.month, month_name = EXCLUDED.month_name,
            quarter = EXCLUDED.quarter, year = EXCLUDED.year,
            week_of_year = EXCLUDED.week_of_year,
            day_of_week = EXCLUDED.day_of_week,
            is_weekend = EXCLUDED.is_weekend`

	insertCustomerSQL = `
        INSERT INTO dim_customer (customer_id, first_name, last_name,
            full_name, email, city, segment)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (customer_id) DO UPDATE SET
            first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
            full_name = EXCLUDED.full_name, email = EXCLUDED.email,
            city = EXCLUDED.city, segment = EXCLUDED.segment`

	insertProductSQL = `
        INSERT INTO dim_product (product_id, product_name, category,
            unit_cost, supplier)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (product_id) DO UPDATE SET
            product_name = EXCLUDED.product_name,
            category = EXCLUDED.category, unit_cost = EXCLUDED.unit_cost,
            supplier = EXCLUDED.supplier`

	insertFactSQL = `
        INSERT INTO fact_sales (order_item_id, order_id, date_id,
            customer_id, product_id, channel_id, quantity, unit_price,
            unit_cost, discount, gross_revenue, net_revenue, cogs,
            gross_margin, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (order_item_id) DO UPDATE SET
            order_id = EXCLUDED.order_id, date_id = EXCLUDED.date_id,
            customer_id = EXCLUDED.customer_id,
            product_id = EXCLUDED.product_id,
            channel_id = EXCLUDED.channel_id, quantity = EXCLUDED.quantity,
            unit_price = EXCLUDED.unit_price, unit_cost = EXCLUDED.unit_cost,
            discount = EXCLUDED.discount,
            gross_revenue = EXCLUDED.gross_revenue,
            net_revenue = EXCLUDED.net_revenue, cogs = EXCLUDED.cogs,
            gross_margin = EXCLUDED.gross_margin, status = EXCLUDED.status`
)

// Replace performs the full-refresh load as a single transaction: truncate
// the four refresh tables, then bulk-insert all rows. Any failure rolls the
// whole load back, leaving the previous warehouse generation untouched.
// The transform output must be fully materialized before this is called.
func (s *Store) Replace(ctx context.Context, out *transform.Result) error {
	logging.Info().Msg("LOAD: replacing warehouse tables")

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &StoreWriteError{Table: "warehouse", Err: err}
	}
	defer tx.Rollback(ctx)

	// One TRUNCATE over all four tables so foreign keys between the fact
	// and the dimensions never block the refresh.
	if _, err := tx.Exec(ctx,
		"TRUNCATE "+strings.Join(refreshTables, ", ")); err != nil {
		return &StoreWriteError{Table: "warehouse", Err: err}
	}

	if err := insertRows(ctx, tx, "dim_date", len(out.Dates), func(i int) (string, []any) {
		d := out.Dates[i]
		return insertDateSQL, []any{
			d.DateID, d.FullDate, d.Day, d.Month, d.MonthName,
			d.Quarter, d.Year, d.WeekOfYear, d.DayOfWeek, d.IsWeekend,
		}
	}); err != nil {
		return err
	}

	if err := insertRows(ctx, tx, "dim_customer", len(out.Customers), func(i int) (string, []any) {
		c := out.Customers[i]
		return insertCustomerSQL, []any{
			c.CustomerID, c.FirstName, c.LastName, c.FullName,
			c.Email, c.City, c.Segment,
		}
	}); err != nil {
		return err
	}

	if err := insertRows(ctx, tx, "dim_product", len(out.Products), func(i int) (string, []any) {
		p := out.Products[i]
		return insertProductSQL, []any{
			p.ProductID, p.ProductName, p.Category, p.UnitCost, p.Supplier,
		}
	}); err != nil {
		return err
	}

	if err := insertRows(ctx, tx, "fact_sales", len(out.Facts), func(i int) (string, []any) {
		f := out.Facts[i]
		return insertFactSQL, []any{
			f.OrderItemID, f.OrderID, f.DateID, f.CustomerID, f.ProductID,
			f.ChannelID, f.Quantity, f.UnitPrice, f.UnitCost, f.Discount,
			f.GrossRevenue, f.NetRevenue, f.COGS, f.GrossMargin, f.Status,
		}
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &StoreWriteError{Table: "warehouse", Err: err}
	}

	logging.Info().
		Int("dim_date", len(out.Dates)).
		Int("dim_customer", len(out.Customers)).
		Int("dim_product", len(out.Products)).
		Int("fact_sales", len(out.Facts)).
		Msg("Load complete")

	return nil
}

// insertRows sends n parameterized inserts in batches of batchSize within
// the given transaction.
func insertRows(ctx context.Context, tx pgx.Tx, table string, n int, row func(int) (string, []any)) error {
	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			sql, args := row(i)
			batch.Queue(sql, args...)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return &StoreWriteError{Table: table, Err: err}
		}
	}

	logging.Debug().Str("table", table).Int("rows", n).Msg("Table loaded")
	return nil
}
