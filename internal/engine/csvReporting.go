package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"valuator/types"
)

// WriteLotsCSVFile writes one row per resolved lot to a CSV file at the
// given path.
func WriteLotsCSVFile(path string, snapshot *types.PortfolioSnapshot, timeLabel string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create lots file: %w", err)
	}
	defer f.Close()

	return writeLotsCSV(f, snapshot, timeLabel)
}

// writeLotsCSV writes lots to any io.Writer as CSV. You can pass os.Stdout
// for debugging, or a file.
func writeLotsCSV(w io.Writer, snapshot *types.PortfolioSnapshot, timeLabel string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"ticker",
		"position", // 1-based index, "-" for single-lot tickers
		"trade_date",
		"execution_time", // empty outside intraday runs
		"buy_price",
		"valuation_price",
		"quantity",
		"invested",
		"current_value",
		"pnl",
		"pnl_percent",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, pos := range snapshot.Positions {
		multi := len(pos.Lots)+len(pos.Skipped) > 1
		for _, lot := range pos.Lots {
			if err := writeLotRow(cw, lot, multi, timeLabel); err != nil {
				return err
			}
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeLotRow(cw *csv.Writer, lot types.Lot, multi bool, timeLabel string) error {
	position := "-"
	if multi {
		position = fmt.Sprintf("%d", lot.Index)
	}

	record := []string{
		lot.Order.Ticker,
		position,
		lot.Order.TradeDate.Format(types.DateFormat),
		executionLabel(lot.BuyQuote, timeLabel),
		lot.BuyQuote.Price.String(),
		lot.ValuationQuote.Price.String(),
		lot.Quantity.String(),
		lot.Order.Amount.String(),
		lot.CurrentValue.String(),
		lot.PnL.String(),
		lot.PnLPercent.String(),
	}

	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
