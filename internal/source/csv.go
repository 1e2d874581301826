//-------------------------------------------------------------------------
//
// Retail Data Warehouse ETL
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads and writes the flat CSV record sets that feed the
// pipeline. Parsing is strict: a malformed field aborts the record set
// instead of being coerced to a zero value.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
)

// Source file names within the data directory.
const (
	CustomersFile  = "customers.csv"
	ProductsFile   = "products.csv"
	OrdersFile     = "orders.csv"
	OrderItemsFile = "order_items.csv"
)

// SourceUnavailableError reports a record set that could not be obtained
// at all (missing file, unreadable file, missing header columns).
type SourceUnavailableError struct {
	Set string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Set, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// Reader extracts the four source record sets from CSV files in a
// directory.
type Reader struct {
	dir string
}

// NewReader creates a Reader over the given data directory.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Extract reads all four record sets. Any failure is fatal; no partial
// source data is returned.
func (r *Reader) Extract(ctx context.Context) (*model.SourceData, error) {
	logging.Info().Str("dir", r.dir).Msg("EXTRACT: loading source files")

	src := &model.SourceData{}

	customers, err := readSet(r.dir, "customers", CustomersFile,
		[]string{"customer_id", "first_name", "last_name", "email", "city", "segment", "registered_at"},
		func(r *row) model.Customer {
			return model.Customer{
				CustomerID:   r.intField("customer_id"),
				FirstName:    r.str("first_name"),
				LastName:     r.str("last_name"),
				Email:        r.str("email"),
				City:         r.str("city"),
				Segment:      r.str("segment"),
				RegisteredAt: r.str("registered_at"),
			}
		})
	if err != nil {
		return nil, err
	}
	src.Customers = customers

	products, err := readSet(r.dir, "products", ProductsFile,
		[]string{"product_id", "product_name", "category", "unit_price", "unit_cost", "supplier"},
		func(r *row) model.Product {
			return model.Product{
				ProductID:   r.intField("product_id"),
				ProductName: r.str("product_name"),
				Category:    r.str("category"),
				UnitPrice:   r.floatField("unit_price"),
				UnitCost:    r.floatField("unit_cost"),
				Supplier:    r.str("supplier"),
			}
		})
	if err != nil {
		return nil, err
	}
	src.Products = products

	orders, err := readSet(r.dir, "orders", OrdersFile,
		[]string{"order_id", "customer_id", "order_date", "status", "channel", "payment_method", "order_total"},
		func(r *row) model.Order {
			return model.Order{
				OrderID:       r.intField("order_id"),
				CustomerID:    r.intField("customer_id"),
				OrderDate:     r.str("order_date"),
				Status:        r.str("status"),
				Channel:       r.str("channel"),
				PaymentMethod: r.str("payment_method"),
				OrderTotal:    r.floatField("order_total"),
			}
		})
	if err != nil {
		return nil, err
	}
	src.Orders = orders

	items, err := readSet(r.dir, "order_items", OrderItemsFile,
		[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "discount", "subtotal"},
		func(r *row) model.OrderItem {
			return model.OrderItem{
				OrderItemID: r.intField("order_item_id"),
				OrderID:     r.intField("order_id"),
				ProductID:   r.intField("product_id"),
				Quantity:    r.quantityField("quantity"),
				UnitPrice:   r.floatField("unit_price"),
				Discount:    r.discountField("discount"),
				Subtotal:    r.floatField("subtotal"),
			}
		})
	if err != nil {
		return nil, err
	}
	src.Items = items

	logging.Info().
		Int("customers", len(src.Customers)).
		Int("products", len(src.Products)).
		Int("orders", len(src.Orders)).
		Int("order_items", len(src.Items)).
		Msg("Extract complete")

	return src, nil
}

// row gives parse helpers access to one CSV record by column name.
// The first parse failure is latched so a decode function can read all
// fields without per-field error plumbing.
type row struct {
	set    string
	rownum int
	index  map[string]int
	record []string
	err    error
}

func (r *row) fail(field, value string, err error) {
	if r.err == nil {
		r.err = &model.DataTypeError{
			Set:   r.set,
			Row:   r.rownum,
			Field: field,
			Value: value,
			Err:   err,
		}
	}
}

func (r *row) str(field string) string {
	return r.record[r.index[field]]
}

func (r *row) intField(field string) int {
	raw := r.str(field)
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(field, raw, errors.New("not an integer"))
		return 0
	}
	return v
}

func (r *row) floatField(field string) float64 {
	raw := r.str(field)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(field, raw, errors.New("not a number"))
		return 0
	}
	return v
}

func (r *row) quantityField(field string) int {
	v := r.intField(field)
	if r.err == nil && v < 1 {
		r.fail(field, r.str(field), errors.New("quantity must be at least 1"))
	}
	return v
}

func (r *row) discountField(field string) float64 {
	v := r.floatField(field)
	if r.err == nil && (v < 0 || v >= 1) {
		r.fail(field, r.str(field), errors.New("discount must be in [0,1)"))
	}
	return v
}

func readSet[T any](dir, set, filename string, columns []string, decode func(*row) T) ([]T, error) {
	path := filepath.Join(dir, filename)

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Set: set, Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &SourceUnavailableError{Set: set, Err: err}
	}
	if len(records) == 0 {
		return nil, &SourceUnavailableError{Set: set, Err: errors.New("missing header row")}
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, &SourceUnavailableError{
				Set: set,
				Err: fmt.Errorf("missing column %q", c),
			}
		}
	}

	out := make([]T, 0, len(records)-1)
	for i, record := range records[1:] {
		r := &row{set: set, rownum: i + 1, index: index, record: record}
		v := decode(r)
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, v)
	}

	return out, nil
}
