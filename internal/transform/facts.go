package transform

import (
	"fmt"
	"math"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/model"
)

// channelIDs is the fixed channel dimension mapping. Unrecognized channel
// strings fall back to online rather than failing the run.
var channelIDs = map[string]int{
	"online":     1,
	"mobile_app": 2,
	"store":      3,
}

const defaultChannelID = 1

// ReferenceDefectError reports an order date missing from the date lookup
// built from the same order set. This cannot happen when both stages
// observe the same orders, so it signals an internal invariant violation
// rather than bad source data.
type ReferenceDefectError struct {
	OrderID   int
	OrderDate string
}

func (e *ReferenceDefectError) Error() string {
	return fmt.Sprintf("order %d: date %q missing from date dimension lookup",
		e.OrderID, e.OrderDate)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// DeriveFacts produces one FactSales row per order item, resolving all
// foreign keys and computing the financial measures. Items whose parent
// order is absent are dropped and counted; that is the only tolerated
// partial failure. Output preserves the input item order.
func DeriveFacts(
	items []model.OrderItem,
	orders map[int]model.Order,
	costs map[int]float64,
	dates map[string]int,
) ([]model.FactSales, int, error) {
	facts := make([]model.FactSales, 0, len(items))
	skipped := 0

	for _, item := range items {
		order, ok := orders[item.OrderID]
		if !ok {
			skipped++
			logging.Debug().
				Int("order_item_id", item.OrderItemID).
				Int("order_id", item.OrderID).
				Msg("Dropping order item with no matching order")
			continue
		}

		// A cost miss is non-fatal: margin for an unrecognized product is
		// still computable with unit_cost 0.
		unitCost, ok := costs[item.ProductID]
		if !ok {
			unitCost = 0.0
			logging.Warn().
				Int("order_item_id", item.OrderItemID).
				Int("product_id", item.ProductID).
				Msg("Unknown product, defaulting unit_cost to 0")
		}

		grossRevenue := round4(float64(item.Quantity) * item.UnitPrice)
		netRevenue := round4(grossRevenue * (1 - item.Discount))
		cogs := round4(float64(item.Quantity) * unitCost)
		grossMargin := round4(netRevenue - cogs)

		dateID, ok := dates[order.OrderDate]
		if !ok {
			return nil, skipped, &ReferenceDefectError{
				OrderID:   order.OrderID,
				OrderDate: order.OrderDate,
			}
		}

		channelID, ok := channelIDs[order.Channel]
		if !ok {
			channelID = defaultChannelID
		}

		facts = append(facts, model.FactSales{
			OrderID:      item.OrderID,
			OrderItemID:  item.OrderItemID,
			DateID:       dateID,
			CustomerID:   order.CustomerID,
			ProductID:    item.ProductID,
			ChannelID:    channelID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			UnitCost:     unitCost,
			Discount:     item.Discount,
			GrossRevenue: grossRevenue,
			NetRevenue:   netRevenue,
			COGS:         cogs,
			GrossMargin:  grossMargin,
			Status:       order.Status,
		})
	}

	return facts, skipped, nil
}
