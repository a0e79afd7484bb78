package engine

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"valuator/types"
)

func TestWriteLotsCSV(t *testing.T) {
	intradayBuy := quote("100", types.ConfidenceNearestIntraday)
	intradayBuy.Timestamp = time.Date(2025, 10, 6, 11, 25, 0, 0, time.UTC)

	shopA := buildLot(order("SHOP", 2025, 10, 6), 1, intradayBuy, quote("120", types.ConfidenceExact))
	shopB := buildLot(order("SHOP", 2025, 10, 13), 2, quote("50", types.ConfidenceExact), quote("120", types.ConfidenceExact))
	pltr := buildLot(order("PLTR", 2025, 10, 7), 1, quote("20", types.ConfidenceExact), quote("25", types.ConfidenceExact))

	snapshot := &types.PortfolioSnapshot{
		EvaluationDate: types.Date(2025, 11, 5),
		Positions: []types.Position{
			buildPosition("SHOP", []types.Lot{shopA, shopB}, nil),
			buildPosition("PLTR", []types.Lot{pltr}, nil),
		},
	}

	var buf bytes.Buffer
	if err := writeLotsCSV(&buf, snapshot, "ET"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3 lots", len(records))
	}

	header := records[0]
	wantHeader := []string{
		"ticker", "position", "trade_date", "execution_time",
		"buy_price", "valuation_price", "quantity",
		"invested", "current_value", "pnl", "pnl_percent",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Fatalf("header[%d]: got %q, want %q", i, header[i], wantHeader[i])
		}
	}

	tests := []struct {
		row           int
		ticker        string
		position      string
		tradeDate     string
		executionTime string
		buyPrice      string
		pnl           string
	}{
		{row: 1, ticker: "SHOP", position: "1", tradeDate: "2025-10-06", executionTime: "11:25 ET", buyPrice: "100", pnl: "200"},
		{row: 2, ticker: "SHOP", position: "2", tradeDate: "2025-10-13", executionTime: "", buyPrice: "50", pnl: "1400"},
		{row: 3, ticker: "PLTR", position: "-", tradeDate: "2025-10-07", executionTime: "", buyPrice: "20", pnl: "250"},
	}

	for _, tc := range tests {
		rec := records[tc.row]
		if rec[0] != tc.ticker {
			t.Fatalf("row %d ticker: got %q, want %q", tc.row, rec[0], tc.ticker)
		}
		if rec[1] != tc.position {
			t.Fatalf("row %d position: got %q, want %q", tc.row, rec[1], tc.position)
		}
		if rec[2] != tc.tradeDate {
			t.Fatalf("row %d trade date: got %q, want %q", tc.row, rec[2], tc.tradeDate)
		}
		if rec[3] != tc.executionTime {
			t.Fatalf("row %d execution time: got %q, want %q", tc.row, rec[3], tc.executionTime)
		}
		if rec[4] != tc.buyPrice {
			t.Fatalf("row %d buy price: got %q, want %q", tc.row, rec[4], tc.buyPrice)
		}
		if rec[9] != tc.pnl {
			t.Fatalf("row %d pnl: got %q, want %q", tc.row, rec[9], tc.pnl)
		}
	}
}

func TestWriteLotsCSVSkipsUnresolved(t *testing.T) {
	snapshot := &types.PortfolioSnapshot{
		Positions: []types.Position{
			buildPosition("DLST", nil, []types.SkippedLot{
				{Ticker: "DLST", Index: 1, TradeDate: types.Date(2025, 10, 7), Reason: "no price"},
			}),
		},
	}

	var buf bytes.Buffer
	if err := writeLotsCSV(&buf, snapshot, "ET"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
}
