package datagen

import (
	"fmt"
	"math"
	"time"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
)

// Reference data for source generation.
var segments = []string{"Retail", "Wholesale", "Online"}

var productCatalog = []struct {
	category string
	names    []string
}{
	{"Electronics", []string{"Laptop", "Smartphone", "Tablet", "Headphones", "Smartwatch", "Keyboard", "Monitor"}},
	{"Clothing", []string{"T-Shirt", "Jeans", "Jacket", "Sneakers", "Dress", "Hoodie", "Shorts"}},
	{"Home & Garden", []string{"Blender", "Coffee Maker", "Vacuum", "Lamp", "Pillow", "Rug", "Plant Pot"}},
	{"Sports", []string{"Running Shoes", "Yoga Mat", "Bicycle", "Dumbbell", "Tennis Racket", "Backpack"}},
	{"Books", []string{"Fiction Novel", "Self-Help", "Cookbook", "Science", "Biography", "Children Book"}},
}

var (
	statuses       = []string{"completed", "returned", "cancelled"}
	statusWeights  = []int{3, 1, 1}
	channels       = []string{"online", "store", "mobile_app"}
	channelWeights = []int{2, 2, 1}
	payments       = []string{"credit_card", "debit_card", "paypal", "bank_transfer", "cash"}
	discounts      = []float64{0, 0, 0, 0.05, 0.10, 0.15}
)

const dateLayout = "2006-01-02"

// SourceConfig controls synthetic source generation.
type SourceConfig struct {
	Customers int
	Products  int
	Orders    int
	StartDate string
	EndDate   string

	// Seed makes generation reproducible. Zero means a time-based seed.
	Seed uint64
}

// DefaultSourceConfig returns the standard small dataset.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Customers: 500,
		Products:  80,
		Orders:    3000,
		StartDate: "2022-01-01",
		EndDate:   "2024-12-31",
		Seed:      42,
	}
}

// Validate checks generation parameters.
func (c SourceConfig) Validate() error {
	if c.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Orders < 0 {
		return fmt.Errorf("orders must be non-negative")
	}
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q", c.StartDate)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q", c.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date is before start_date")
	}
	return nil
}

// RetailGenerator produces the four flat source record sets.
type RetailGenerator struct {
	faker *Faker
	cfg   SourceConfig
}

// NewRetailGenerator creates a generator for the given configuration.
func NewRetailGenerator(cfg SourceConfig) *RetailGenerator {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}
	return &RetailGenerator{faker: f, cfg: cfg}
}

// Generate builds the full source data set in memory.
func (g *RetailGenerator) Generate() (*model.SourceData, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse(dateLayout, g.cfg.StartDate)
	end, _ := time.Parse(dateLayout, g.cfg.EndDate)

	logging.Info().
		Int("customers", g.cfg.Customers).
		Int("products", g.cfg.Products).
		Int("orders", g.cfg.Orders).
		Msg("Generating source data")

	src := &model.SourceData{
		Customers: g.generateCustomers(start),
		Products:  g.generateProducts(),
	}
	src.Orders, src.Items = g.generateOrders(src.Customers, src.Products, start, end)

	return src, nil
}

func (g *RetailGenerator) generateCustomers(registeredBefore time.Time) []model.Customer {
	customers := make([]model.Customer, 0, g.cfg.Customers)
	registerStart := registeredBefore.AddDate(-2, 0, 0)

	for i := 1; i <= g.cfg.Customers; i++ {
		customers = append(customers, model.Customer{
			CustomerID:   i,
			FirstName:    g.faker.FirstName(),
			LastName:     g.faker.LastName(),
			Email:        fmt.Sprintf("customer%d@example.com", i),
			City:         g.faker.City(),
			Segment:      Choose(g.faker, segments),
			RegisteredAt: g.faker.DateRange(registerStart, registeredBefore).Format(dateLayout),
		})
	}
	return customers
}

func (g *RetailGenerator) generateProducts() []model.Product {
	products := make([]model.Product, 0, g.cfg.Products)

	pid := 1
	for pid <= g.cfg.Products {
		for _, group := range productCatalog {
			for _, name := range group.names {
				price := round2(g.faker.Price(8, 900))
				cost := round2(price * g.faker.Float64(0.40, 0.65))
				products = append(products, model.Product{
					ProductID:   pid,
					ProductName: name,
					Category:    group.category,
					UnitPrice:   price,
					UnitCost:    cost,
					Supplier:    fmt.Sprintf("Supplier_%d", g.faker.Int(1, 15)),
				})
				pid++
				if pid > g.cfg.Products {
					return products
				}
			}
		}
	}
	return products
}

func (g *RetailGenerator) generateOrders(
	customers []model.Customer,
	products []model.Product,
	start, end time.Time,
) ([]model.Order, []model.OrderItem) {
	orders := make([]model.Order, 0, g.cfg.Orders)
	items := make([]model.OrderItem, 0, g.cfg.Orders*3)

	itemID := 1
	for oid := 1; oid <= g.cfg.Orders; oid++ {
		customer := Choose(g.faker, customers)
		numItems := g.faker.Int(1, 5)
		if numItems > len(products) {
			numItems = len(products)
		}

		orderTotal := 0.0
		for _, product := range g.sampleProducts(products, numItems) {
			qty := g.faker.Int(1, 4)
			discount := Choose(g.faker, discounts)
			subtotal := round2(product.UnitPrice * float64(qty) * (1 - discount))
			orderTotal += subtotal

			items = append(items, model.OrderItem{
				OrderItemID: itemID,
				OrderID:     oid,
				ProductID:   product.ProductID,
				Quantity:    qty,
				UnitPrice:   product.UnitPrice,
				Discount:    discount,
				Subtotal:    subtotal,
			})
			itemID++
		}

		orders = append(orders, model.Order{
			OrderID:       oid,
			CustomerID:    customer.CustomerID,
			OrderDate:     g.faker.DateRange(start, end).Format(dateLayout),
			Status:        ChooseWeighted(g.faker, statuses, statusWeights),
			Channel:       ChooseWeighted(g.faker, channels, channelWeights),
			PaymentMethod: Choose(g.faker, payments),
			OrderTotal:    round2(orderTotal),
		})
	}

	return orders, items
}

// sampleProducts picks n distinct products via a partial Fisher-Yates
// shuffle over indices.
func (g *RetailGenerator) sampleProducts(products []model.Product, n int) []model.Product {
	idx := make([]int, len(products))
	for i := range idx {
		idx[i] = i
	}
	picked := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		j := g.faker.Int(i, len(idx)-1)
		idx[i], idx[j] = idx[j], idx[i]
		picked = append(picked, products[idx[i]])
	}
	return picked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
