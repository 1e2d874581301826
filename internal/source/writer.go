package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
)

// WriteFiles writes the four source record sets as CSV files into dir,
// creating the directory if needed. Files are fully rewritten.
func WriteFiles(dir string, src *model.SourceData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := writeFile(dir, CustomersFile,
		[]string{"customer_id", "first_name", "last_name", "email", "city", "segment", "registered_at"},
		len(src.Customers), func(i int) []string {
			c := src.Customers[i]
			return []string{
				strconv.Itoa(c.CustomerID), c.FirstName, c.LastName,
				c.Email, c.City, c.Segment, c.RegisteredAt,
			}
		}); err != nil {
		return err
	}

	if err := writeFile(dir, ProductsFile,
		[]string{"product_id", "product_name", "category", "unit_price", "unit_cost", "supplier"},
		len(src.Products), func(i int) []string {
			p := src.Products[i]
			return []string{
				strconv.Itoa(p.ProductID), p.ProductName, p.Category,
				formatMoney(p.UnitPrice), formatMoney(p.UnitCost), p.Supplier,
			}
		}); err != nil {
		return err
	}

	if err := writeFile(dir, OrdersFile,
		[]string{"order_id", "customer_id", "order_date", "status", "channel", "payment_method", "order_total"},
		len(src.Orders), func(i int) []string {
			o := src.Orders[i]
			return []string{
				strconv.Itoa(o.OrderID), strconv.Itoa(o.CustomerID), o.OrderDate,
				o.Status, o.Channel, o.PaymentMethod, formatMoney(o.OrderTotal),
			}
		}); err != nil {
		return err
	}

	return writeFile(dir, OrderItemsFile,
		[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "discount", "subtotal"},
		len(src.Items), func(i int) []string {
			it := src.Items[i]
			return []string{
				strconv.Itoa(it.OrderItemID), strconv.Itoa(it.OrderID),
				strconv.Itoa(it.ProductID), strconv.Itoa(it.Quantity),
				formatMoney(it.UnitPrice), formatMoney(it.Discount), formatMoney(it.Subtotal),
			}
		})
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeFile(dir, filename string, header []string, n int, record func(int) []string) error {
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(record(i)); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}

	logging.Info().Str("file", filename).Int("rows", n).Msg("Wrote source file")
	return nil
}
