package transform

import (
	"reflect"
	"testing"

	"github.com/retaildw/retaildw/internal/model"
)

func TestBuildCustomerDim(t *testing.T) {
	customers := []model.Customer{
		{CustomerID: 1, FirstName: "Emma", LastName: "Smith",
			Email: "customer1@example.com", City: "Chicago", Segment: "Retail",
			RegisteredAt: "2020-06-01"},
		{CustomerID: 2, FirstName: "Liam", LastName: "Garcia",
			Email: "customer2@example.com", City: "Lima", Segment: "Wholesale",
			RegisteredAt: "2021-03-15"},
	}

	rows := BuildCustomerDim(customers)

	if len(rows) != len(customers) {
		t.Fatalf("Expected %d rows, got %d", len(customers), len(rows))
	}

	want := model.CustomerDim{
		CustomerID: 1, FirstName: "Emma", LastName: "Smith",
		FullName: "Emma Smith", Email: "customer1@example.com",
		City: "Chicago", Segment: "Retail",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("Row mismatch:\n got  %+v\n want %+v", rows[0], want)
	}
	if rows[1].FullName != "Liam Garcia" {
		t.Errorf("Expected full_name 'Liam Garcia', got %q", rows[1].FullName)
	}
}

func TestBuildCustomerDimEmpty(t *testing.T) {
	rows := BuildCustomerDim(nil)
	if len(rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(rows))
	}
}

func TestBuildProductDim(t *testing.T) {
	products := []model.Product{
		{ProductID: 5, ProductName: "Laptop", Category: "Electronics",
			UnitPrice: 899.99, UnitCost: 540.25, Supplier: "Supplier_3"},
	}

	rows := BuildProductDim(products)

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	want := model.ProductDim{
		ProductID: 5, ProductName: "Laptop", Category: "Electronics",
		UnitCost: 540.25, Supplier: "Supplier_3",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("Row mismatch:\n got  %+v\n want %+v", rows[0], want)
	}
}

func TestDimensionsAreOneToOne(t *testing.T) {
	customers := make([]model.Customer, 50)
	for i := range customers {
		customers[i] = model.Customer{CustomerID: i + 1}
	}
	products := make([]model.Product, 30)
	for i := range products {
		products[i] = model.Product{ProductID: i + 1}
	}

	if got := len(BuildCustomerDim(customers)); got != 50 {
		t.Errorf("Expected 50 customer rows, got %d", got)
	}
	if got := len(BuildProductDim(products)); got != 30 {
		t.Errorf("Expected 30 product rows, got %d", got)
	}
}

func TestCostLookup(t *testing.T) {
	products := []model.Product{
		{ProductID: 1, UnitCost: 6.00},
		{ProductID: 2, UnitCost: 12.50},
	}

	costs := CostLookup(products)

	if len(costs) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(costs))
	}
	if costs[1] != 6.00 {
		t.Errorf("costs[1] = %v, want 6.00", costs[1])
	}
	if costs[2] != 12.50 {
		t.Errorf("costs[2] = %v, want 12.50", costs[2])
	}
}

func TestOrderLookup(t *testing.T) {
	orders := []model.Order{
		{OrderID: 1, CustomerID: 7, OrderDate: "2023-01-01"},
		{OrderID: 2, CustomerID: 9, OrderDate: "2023-01-02"},
	}

	byID := OrderLookup(orders)

	if len(byID) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(byID))
	}
	if byID[2].CustomerID != 9 {
		t.Errorf("byID[2].CustomerID = %d, want 9", byID[2].CustomerID)
	}
}
