// Package model defines the source records consumed by the pipeline and
// the dimensional rows it produces.
package model

// Source record sets. Dates are carried as ISO (YYYY-MM-DD) strings exactly
// as they appear in the source files; the date dimension builder is the
// single place they are parsed.

// Customer is a flat source customer record.
type Customer struct {
	CustomerID   int
	FirstName    string
	LastName     string
	Email        string
	City         string
	Segment      string
	RegisteredAt string
}

// Product is a flat source product record.
type Product struct {
	ProductID   int
	ProductName string
	Category    string
	UnitPrice   float64
	UnitCost    float64
	Supplier    string
}

// Order is a flat source order header record.
type Order struct {
	OrderID       int
	CustomerID    int
	OrderDate     string
	Status        string
	Channel       string
	PaymentMethod string
	OrderTotal    float64
}

// OrderItem is a flat source order line record.
type OrderItem struct {
	OrderItemID int
	OrderID     int
	ProductID   int
	Quantity    int
	UnitPrice   float64
	Discount    float64
	Subtotal    float64
}

// SourceData aggregates the four source record sets handed from the
// extract stage to the transform stage.
type SourceData struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
	Items     []OrderItem
}

// DateDim is one calendar row per distinct order date.
// DateID is the date formatted as an 8-digit YYYYMMDD integer, which makes
// the key both collision-free and sortable in calendar order.
type DateDim struct {
	DateID     int
	FullDate   string
	Day        int
	Month      int
	MonthName  string
	Quarter    int
	Year       int
	WeekOfYear int
	DayOfWeek  string
	IsWeekend  bool
}

// CustomerDim is the customer dimension row. The source customer_id is
// reused verbatim as the surrogate key.
type CustomerDim struct {
	CustomerID int
	FirstName  string
	LastName   string
	FullName   string
	Email      string
	City       string
	Segment    string
}

// ProductDim is the product dimension row. The source product_id is
// reused verbatim as the surrogate key.
type ProductDim struct {
	ProductID   int
	ProductName string
	Category    string
	UnitCost    float64
	Supplier    string
}

// FactSales is one sales fact per order line item, with all foreign keys
// resolved and derived financial measures rounded to 4 decimal places.
type FactSales struct {
	OrderID      int
	OrderItemID  int
	DateID       int
	CustomerID   int
	ProductID    int
	ChannelID    int
	Quantity     int
	UnitPrice    float64
	UnitCost     float64
	Discount     float64
	GrossRevenue float64
	NetRevenue   float64
	COGS         float64
	GrossMargin  float64
	Status       string
}
