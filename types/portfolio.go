package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position holds every lot for one ticker, in order-list order. Totals cover
// resolved lots only.
type Position struct {
	Ticker       string
	Lots         []Lot
	Skipped      []SkippedLot
	Quantity     decimal.Decimal
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	PnL          decimal.Decimal
	PnLPercent   decimal.Decimal
}

// Unresolved reports whether no lot of this position could be valued.
// Unresolved positions are excluded from portfolio totals.
func (p Position) Unresolved() bool {
	return len(p.Lots) == 0
}

// PortfolioSnapshot is the immutable result of one valuation run. Positions
// keep first-seen ticker order regardless of resolution concurrency.
type PortfolioSnapshot struct {
	EvaluationDate time.Time
	Positions      []Position
	Rejected       []RejectedOrder
	Invested       decimal.Decimal
	CurrentValue   decimal.Decimal
	PnL            decimal.Decimal
	PnLPercent     decimal.Decimal
}

// Lots returns every resolved lot across positions, in snapshot order.
func (s *PortfolioSnapshot) Lots() []Lot {
	var lots []Lot
	for _, pos := range s.Positions {
		lots = append(lots, pos.Lots...)
	}
	return lots
}

// Skipped returns every unresolved lot across positions, in snapshot order.
func (s *PortfolioSnapshot) Skipped() []SkippedLot {
	var skipped []SkippedLot
	for _, pos := range s.Positions {
		skipped = append(skipped, pos.Skipped...)
	}
	return skipped
}

// OrderCount returns the number of orders carried by the snapshot, resolved
// or not.
func (s *PortfolioSnapshot) OrderCount() int {
	n := 0
	for _, pos := range s.Positions {
		n += len(pos.Lots) + len(pos.Skipped)
	}
	return n
}
