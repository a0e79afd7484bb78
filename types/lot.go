package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is one resolved buy order with its derived quantity and valuation.
// Derived once at snapshot assembly, never mutated after.
type Lot struct {
	Order          Order
	Index          int // 1-based position index within the ticker
	BuyQuote       PriceQuote
	ValuationQuote PriceQuote
	Quantity       decimal.Decimal
	CurrentValue   decimal.Decimal
	PnL            decimal.Decimal
	PnLPercent     decimal.Decimal
}

// SkippedLot records a lot that could not be valued, with the reason.
type SkippedLot struct {
	Ticker    string
	Index     int
	TradeDate time.Time
	Reason    string
}

// RejectedOrder records an order that failed validation before resolution.
type RejectedOrder struct {
	Order  Order
	Reason string
}
