//go:build integration
// +build integration

// Integration tests for the warehouse store.
// Run with: go test -tags=integration ./internal/warehouse/...
// Requires PostgreSQL to be available.
// Set RETAILDW_TEST_CONN environment variable to override connection string.

package warehouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/retaildw/retaildw/internal/model"
	"github.com/retaildw/retaildw/internal/testutil"
	"github.com/retaildw/retaildw/internal/transform"
	"github.com/retaildw/retaildw/internal/warehouse"
)

func sampleResult(t *testing.T) *transform.Result {
	t.Helper()

	src := &model.SourceData{
		Customers: []model.Customer{
			{CustomerID: 1, FirstName: "Emma", LastName: "Smith",
				Email: "customer1@example.com", City: "Chicago", Segment: "Retail"},
			{CustomerID: 2, FirstName: "Liam", LastName: "Garcia",
				Email: "customer2@example.com", City: "Lima", Segment: "Online"},
		},
		Products: []model.Product{
			{ProductID: 1, ProductName: "Laptop", Category: "Electronics",
				UnitPrice: 900, UnitCost: 540, Supplier: "Supplier_1"},
		},
		Orders: []model.Order{
			{OrderID: 1, CustomerID: 1, OrderDate: "2023-04-10",
				Status: "completed", Channel: "online", PaymentMethod: "paypal"},
			{OrderID: 2, CustomerID: 2, OrderDate: "2023-04-11",
				Status: "returned", Channel: "store", PaymentMethod: "cash"},
		},
		Items: []model.OrderItem{
			{OrderItemID: 1, OrderID: 1, ProductID: 1, Quantity: 1, UnitPrice: 900},
			{OrderItemID: 2, OrderID: 2, ProductID: 1, Quantity: 2, UnitPrice: 900, Discount: 0.10},
		},
	}

	out, err := transform.Run(src)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	return out
}

func TestStoreReplace(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, baseConn)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := warehouse.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	store := warehouse.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	out := sampleResult(t)
	if err := store.Replace(ctx, out); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	counts := map[string]int{
		"dim_date":     len(out.Dates),
		"dim_customer": len(out.Customers),
		"dim_product":  len(out.Products),
		"dim_channel":  3,
		"fact_sales":   len(out.Facts),
	}
	for table, want := range counts {
		var got int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("Count %s failed: %v", table, err)
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}

	var margin float64
	err = pool.QueryRow(ctx,
		"SELECT gross_margin FROM fact_sales WHERE order_item_id = 2").Scan(&margin)
	if err != nil {
		t.Fatalf("Query fact failed: %v", err)
	}
	if margin != 540.00 {
		t.Errorf("gross_margin = %v, want 540.00", margin)
	}
}

func TestStoreReplaceIsIdempotent(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, baseConn)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := warehouse.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	store := warehouse.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	out := sampleResult(t)
	for i := 0; i < 2; i++ {
		if err := store.Replace(ctx, out); err != nil {
			t.Fatalf("Replace run %d failed: %v", i+1, err)
		}
	}

	var got int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&got); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if got != len(out.Facts) {
		t.Errorf("fact_sales has %d rows after double load, want %d", got, len(out.Facts))
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, baseConn)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := warehouse.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	store := warehouse.New(pool)
	for i := 0; i < 2; i++ {
		if err := store.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}

	var channels int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM dim_channel").Scan(&channels); err != nil {
		t.Fatalf("Count dim_channel failed: %v", err)
	}
	if channels != 3 {
		t.Errorf("dim_channel has %d rows, want 3", channels)
	}
}
