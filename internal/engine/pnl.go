package engine

import (
	"valuator/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// buildLot derives a lot's quantity and P&L figures from its resolved buy
// and valuation quotes:
//
//	quantity     = amount / buyPrice
//	currentValue = quantity * valuationPrice
//	pnl          = currentValue - amount
//	pnlPercent   = pnl / amount * 100
func buildLot(order types.Order, index int, buy, valuation types.PriceQuote) types.Lot {
	quantity := order.Amount.Div(buy.Price)
	currentValue := quantity.Mul(valuation.Price)
	pnl := currentValue.Sub(order.Amount)

	return types.Lot{
		Order:          order,
		Index:          index,
		BuyQuote:       buy,
		ValuationQuote: valuation,
		Quantity:       quantity,
		CurrentValue:   currentValue,
		PnL:            pnl,
		PnLPercent:     pnl.Div(order.Amount).Mul(hundred),
	}
}

// buildPosition sums a ticker's resolved lots. Totals cover resolved lots
// only; skipped lots ride along for reporting.
func buildPosition(ticker string, lots []types.Lot, skipped []types.SkippedLot) types.Position {
	pos := types.Position{
		Ticker:  ticker,
		Lots:    lots,
		Skipped: skipped,
	}
	for _, lot := range lots {
		pos.Quantity = pos.Quantity.Add(lot.Quantity)
		pos.Invested = pos.Invested.Add(lot.Order.Amount)
		pos.CurrentValue = pos.CurrentValue.Add(lot.CurrentValue)
	}
	pos.PnL = pos.CurrentValue.Sub(pos.Invested)
	if pos.Invested.IsPositive() {
		pos.PnLPercent = pos.PnL.Div(pos.Invested).Mul(hundred)
	}
	return pos
}
