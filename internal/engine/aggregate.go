package engine

import "valuator/types"

// positionGroup is one ticker's orders in insertion order, before
// resolution.
type positionGroup struct {
	ticker string
	orders []types.Order
}

// groupOrders groups orders by ticker, preserving first-seen ticker order
// and within-ticker insertion order. Identical orders stay distinct lots.
// Pure, no I/O.
func groupOrders(orders []types.Order) []*positionGroup {
	var groups []*positionGroup
	index := make(map[string]int)

	for _, order := range orders {
		i, ok := index[order.Ticker]
		if !ok {
			i = len(groups)
			index[order.Ticker] = i
			groups = append(groups, &positionGroup{ticker: order.Ticker})
		}
		groups[i].orders = append(groups[i].orders, order)
	}
	return groups
}

// validateOrders splits orders into valid ones and rejections. A bad order
// never aborts the batch.
func validateOrders(orders []types.Order) ([]types.Order, []types.RejectedOrder) {
	var valid []types.Order
	var rejected []types.RejectedOrder

	for _, order := range orders {
		if err := order.Validate(); err != nil {
			rejected = append(rejected, types.RejectedOrder{Order: order, Reason: err.Error()})
			continue
		}
		valid = append(valid, order)
	}
	return valid, rejected
}
