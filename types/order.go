package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidOrder = errors.New("invalid order")

type InvalidOrderError struct {
	Ticker string
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("order %s: %s", e.Ticker, e.Reason)
}

func (e *InvalidOrderError) Is(target error) bool {
	return target == ErrInvalidOrder
}

// Order is a single buy order: a fixed notional amount allocated to a ticker
// on a trade date. Offset, when set, is the execution time expressed as a
// duration after market open. SellDate, when set, marks the order as a
// realized trade valued at its sell date instead of the evaluation date.
type Order struct {
	Ticker    string
	TradeDate time.Time
	Amount    decimal.Decimal
	Offset    *time.Duration
	SellDate  *time.Time
}

func NewOrder(ticker string, tradeDate time.Time, amount decimal.Decimal) Order {
	return Order{
		Ticker:    ticker,
		TradeDate: tradeDate,
		Amount:    amount,
	}
}

func (o Order) Realized() bool {
	return o.SellDate != nil
}

func (o Order) Validate() error {
	if o.Ticker == "" {
		return &InvalidOrderError{Ticker: o.Ticker, Reason: "missing ticker"}
	}
	if o.TradeDate.IsZero() {
		return &InvalidOrderError{Ticker: o.Ticker, Reason: "missing trade date"}
	}
	if !o.Amount.IsPositive() {
		return &InvalidOrderError{Ticker: o.Ticker, Reason: fmt.Sprintf("amount %s is not positive", o.Amount)}
	}
	if o.Offset != nil && *o.Offset < 0 {
		return &InvalidOrderError{Ticker: o.Ticker, Reason: "negative execution offset"}
	}
	if o.SellDate != nil && o.SellDate.Before(o.TradeDate) {
		return &InvalidOrderError{
			Ticker: o.Ticker,
			Reason: fmt.Sprintf("sell date %s before trade date %s",
				o.SellDate.Format(DateFormat), o.TradeDate.Format(DateFormat)),
		}
	}
	return nil
}
