package types

import "github.com/shopspring/decimal"

// Extremum is the best or worst lot-level result and the ticker it came from.
type Extremum struct {
	Ticker string
	PnL    decimal.Decimal
}

// Statistics partitions the resolved lot set into gains (pnl >= 0) and
// losses (pnl < 0). Mean and extremum fields are nil when their partition is
// empty, never zero.
type Statistics struct {
	Resolved    int
	GainCount   int
	LossCount   int
	GainPercent decimal.Decimal
	LossPercent decimal.Decimal
	MeanGain    *decimal.Decimal
	MeanLoss    *decimal.Decimal
	BestGain    *Extremum
	WorstLoss   *Extremum
}
