package engine

import (
	"valuator/types"

	"github.com/shopspring/decimal"
)

// ComputeStatistics partitions the snapshot's resolved lots into gains
// (pnl >= 0) and losses (pnl < 0). Every resolved lot lands in exactly one
// partition. Means and extrema are omitted (nil) for empty partitions; ties
// on the extrema go to the first-encountered lot.
func ComputeStatistics(snapshot *types.PortfolioSnapshot) types.Statistics {
	stats := types.Statistics{}

	gainSum := decimal.Zero
	lossSum := decimal.Zero

	for _, lot := range snapshot.Lots() {
		stats.Resolved++
		if lot.PnL.GreaterThanOrEqual(decimal.Zero) {
			stats.GainCount++
			gainSum = gainSum.Add(lot.PnL)
			if stats.BestGain == nil || lot.PnL.GreaterThan(stats.BestGain.PnL) {
				stats.BestGain = &types.Extremum{Ticker: lot.Order.Ticker, PnL: lot.PnL}
			}
		} else {
			stats.LossCount++
			lossSum = lossSum.Add(lot.PnL)
			if stats.WorstLoss == nil || lot.PnL.LessThan(stats.WorstLoss.PnL) {
				stats.WorstLoss = &types.Extremum{Ticker: lot.Order.Ticker, PnL: lot.PnL}
			}
		}
	}

	if stats.Resolved == 0 {
		return stats
	}

	total := decimal.NewFromInt(int64(stats.Resolved))
	stats.GainPercent = decimal.NewFromInt(int64(stats.GainCount)).Div(total).Mul(hundred)
	stats.LossPercent = decimal.NewFromInt(int64(stats.LossCount)).Div(total).Mul(hundred)

	if stats.GainCount > 0 {
		mean := gainSum.Div(decimal.NewFromInt(int64(stats.GainCount)))
		stats.MeanGain = &mean
	}
	if stats.LossCount > 0 {
		mean := lossSum.Div(decimal.NewFromInt(int64(stats.LossCount)))
		stats.MeanLoss = &mean
	}
	return stats
}
