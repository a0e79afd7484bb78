package engine

import (
	"fmt"
	"io"
	"strings"

	"valuator/types"

	"github.com/shopspring/decimal"
)

const reportWidth = 100

// WriteReport prints the valuation report: one block per position, the
// portfolio summary, win/loss statistics and the list of skipped lots and
// rejected orders. timeLabel is the market timezone label shown next to
// intraday execution times.
func WriteReport(w io.Writer, snapshot *types.PortfolioSnapshot, stats types.Statistics, timeLabel string) {
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PORTFOLIO VALUATION")
	fmt.Fprintf(w, "Evaluation date: %s\n", snapshot.EvaluationDate.Format(types.DateFormat))
	fmt.Fprintln(w, rule)

	for _, pos := range snapshot.Positions {
		fmt.Fprintln(w, thin)
		fmt.Fprintf(w, "%s - %d position(s)\n", pos.Ticker, len(pos.Lots)+len(pos.Skipped))
		fmt.Fprintln(w, thin)

		for _, lot := range pos.Lots {
			status := "GAIN"
			if lot.PnL.IsNegative() {
				status = "LOSS"
			}
			fmt.Fprintf(w, "  #%d %s\n", lot.Index, status)
			if label := executionLabel(lot.BuyQuote, timeLabel); label != "" {
				fmt.Fprintf(w, "    bought    : %s at %s\n", lot.Order.TradeDate.Format(types.DateFormat), label)
			} else {
				fmt.Fprintf(w, "    bought    : %s\n", lot.Order.TradeDate.Format(types.DateFormat))
			}
			fmt.Fprintf(w, "    buy price : %s (%s)\n", lot.BuyQuote.Price.StringFixed(2), lot.BuyQuote.Confidence)
			fmt.Fprintf(w, "    shares    : %s\n", lot.Quantity.StringFixed(4))
			fmt.Fprintf(w, "    invested  : %s\n", lot.Order.Amount.StringFixed(2))
			fmt.Fprintf(w, "    value     : %s\n", lot.CurrentValue.StringFixed(2))
			fmt.Fprintf(w, "    pnl       : %s (%s%%)\n", signed(lot.PnL), signed(lot.PnLPercent))
		}
		for _, skip := range pos.Skipped {
			fmt.Fprintf(w, "  #%d SKIPPED: %s\n", skip.Index, skip.Reason)
		}

		if pos.Unresolved() {
			fmt.Fprintf(w, "  UNRESOLVED POSITION - excluded from portfolio totals\n")
			continue
		}
		fmt.Fprintf(w, "  total: %d lot(s), %s shares, invested %s, value %s, pnl %s (%s%%)\n",
			len(pos.Lots), pos.Quantity.StringFixed(4), pos.Invested.StringFixed(2),
			pos.CurrentValue.StringFixed(2), signed(pos.PnL), signed(pos.PnLPercent))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PORTFOLIO SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Tickers:          %d\n", len(snapshot.Positions))
	fmt.Fprintf(w, "Orders:           %d\n", snapshot.OrderCount()+len(snapshot.Rejected))
	fmt.Fprintf(w, "Total invested:   %s\n", snapshot.Invested.StringFixed(2))
	fmt.Fprintf(w, "Current value:    %s\n", snapshot.CurrentValue.StringFixed(2))
	fmt.Fprintf(w, "Total P&L:        %s\n", signed(snapshot.PnL))
	if snapshot.Invested.IsPositive() {
		fmt.Fprintf(w, "Return:           %s%%\n", signed(snapshot.PnLPercent))
	}

	writeStatistics(w, stats)

	if skipped := snapshot.Skipped(); len(skipped) > 0 || len(snapshot.Rejected) > 0 {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "SKIPPED")
		fmt.Fprintln(w, rule)
		for _, skip := range skipped {
			fmt.Fprintf(w, "%s #%d (%s): %s\n", skip.Ticker, skip.Index,
				skip.TradeDate.Format(types.DateFormat), skip.Reason)
		}
		for _, rej := range snapshot.Rejected {
			fmt.Fprintf(w, "%s (rejected): %s\n", rej.Order.Ticker, rej.Reason)
		}
	}
}

func writeStatistics(w io.Writer, stats types.Statistics) {
	if stats.Resolved == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintln(w, "STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "Winning lots:     %d (%s%%)\n", stats.GainCount, stats.GainPercent.StringFixed(1))
	fmt.Fprintf(w, "Losing lots:      %d (%s%%)\n", stats.LossCount, stats.LossPercent.StringFixed(1))
	if stats.MeanGain != nil {
		fmt.Fprintf(w, "Mean gain:        %s\n", signed(*stats.MeanGain))
	}
	if stats.BestGain != nil {
		fmt.Fprintf(w, "Best gain:        %s (%s)\n", signed(stats.BestGain.PnL), stats.BestGain.Ticker)
	}
	if stats.MeanLoss != nil {
		fmt.Fprintf(w, "Mean loss:        %s\n", signed(*stats.MeanLoss))
	}
	if stats.WorstLoss != nil {
		fmt.Fprintf(w, "Worst loss:       %s (%s)\n", signed(stats.WorstLoss.PnL), stats.WorstLoss.Ticker)
	}
}

// executionLabel renders the intraday execution time of a quote, or "" for
// daily quotes: "11:25 ET" for a matched bar, "~11:30 ET (est.)" for an
// estimate.
func executionLabel(q types.PriceQuote, timeLabel string) string {
	switch q.Confidence {
	case types.ConfidenceNearestIntraday:
		return q.Timestamp.Format("15:04") + " " + timeLabel
	case types.ConfidenceDailyEstimate:
		return "~" + q.Timestamp.Format("15:04") + " " + timeLabel + " (est.)"
	default:
		return ""
	}
}

// signed renders a decimal with an explicit sign, matching the report's
// +200.00 / -13.50 convention.
func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}
