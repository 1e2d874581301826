package transform

import "github.com/retaildw/retaildw/internal/model"

// BuildCustomerDim projects each source customer 1:1 into a dimension row.
// full_name is derived by concatenation; everything else passes through.
func BuildCustomerDim(customers []model.Customer) []model.CustomerDim {
	rows := make([]model.CustomerDim, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, model.CustomerDim{
			CustomerID: c.CustomerID,
			FirstName:  c.FirstName,
			LastName:   c.LastName,
			FullName:   c.FirstName + " " + c.LastName,
			Email:      c.Email,
			City:       c.City,
			Segment:    c.Segment,
		})
	}
	return rows
}

// BuildProductDim projects each source product 1:1 into a dimension row.
func BuildProductDim(products []model.Product) []model.ProductDim {
	rows := make([]model.ProductDim, 0, len(products))
	for _, p := range products {
		rows = append(rows, model.ProductDim{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.Category,
			UnitCost:    p.UnitCost,
			Supplier:    p.Supplier,
		})
	}
	return rows
}

// CostLookup maps product_id to unit_cost for fact derivation.
func CostLookup(products []model.Product) map[int]float64 {
	costs := make(map[int]float64, len(products))
	for _, p := range products {
		costs[p.ProductID] = p.UnitCost
	}
	return costs
}

// OrderLookup maps order_id to its order header for fact derivation.
func OrderLookup(orders []model.Order) map[int]model.Order {
	byID := make(map[int]model.Order, len(orders))
	for _, o := range orders {
		byID[o.OrderID] = o
	}
	return byID
}
