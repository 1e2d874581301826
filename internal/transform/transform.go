package transform

import (
	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
)

// Result holds the four output record sets of one transform run, fully
// materialized in memory, plus the count of order items dropped for lack
// of a parent order.
type Result struct {
	Dates        []model.DateDim
	Customers    []model.CustomerDim
	Products     []model.ProductDim
	Facts        []model.FactSales
	SkippedItems int
}

// Run builds the complete dimensional model from the source record sets.
func Run(src *model.SourceData) (*Result, error) {
	logging.Info().Msg("TRANSFORM: building dimensional model")

	dates, dateLookup, err := BuildDateDim(src.Orders)
	if err != nil {
		return nil, err
	}

	customers := BuildCustomerDim(src.Customers)
	products := BuildProductDim(src.Products)

	facts, skipped, err := DeriveFacts(
		src.Items,
		OrderLookup(src.Orders),
		CostLookup(src.Products),
		dateLookup,
	)
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		logging.Warn().
			Int("skipped", skipped).
			Msg("Skipped order items with no matching order")
	}

	logging.Info().
		Int("dim_date", len(dates)).
		Int("dim_customer", len(customers)).
		Int("dim_product", len(products)).
		Int("fact_sales", len(facts)).
		Msg("Transform complete")

	return &Result{
		Dates:        dates,
		Customers:    customers,
		Products:     products,
		Facts:        facts,
		SkippedItems: skipped,
	}, nil
}
