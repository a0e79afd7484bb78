package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"valuator/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// mockQuerier records Exec calls and serves a canned row; Query is only
// reached with a supported interval, which these tests avoid.
type mockQuerier struct {
	execSQL  []string
	execArgs [][]any
	execErr  error
	rowErr   error
}

func (m *mockQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (m *mockQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return errRow{err: m.rowErr}
}

func (m *mockQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execSQL = append(m.execSQL, sql)
	m.execArgs = append(m.execArgs, args)
	return pgconn.NewCommandTag("INSERT 0 1"), m.execErr
}

type errRow struct {
	err error
}

func (r errRow) Scan(_ ...any) error {
	return r.err
}

func TestGetBarsUnsupportedInterval(t *testing.T) {
	db := &Database{db: &mockQuerier{}}

	_, err := db.GetBars(context.Background(), "SHOP", types.Interval("W"), time.Now(), time.Now())
	if !errors.Is(err, ErrIntervalNotSupported) {
		t.Fatalf("got error %v, want ErrIntervalNotSupported", err)
	}
}

func TestSaveBars(t *testing.T) {
	mock := &mockQuerier{}
	db := &Database{db: mock}

	ts := time.Date(2025, 10, 6, 13, 30, 0, 0, time.UTC)
	candles := []types.Candle{
		{
			Ticker:    "SHOP",
			Open:      decimal.RequireFromString("100"),
			High:      decimal.RequireFromString("102"),
			Low:       decimal.RequireFromString("99"),
			Close:     decimal.RequireFromString("101"),
			Volume:    decimal.RequireFromString("5000"),
			Interval:  types.FiveMinutes,
			Timestamp: ts,
		},
		{
			Ticker:    "SHOP",
			Close:     decimal.RequireFromString("103"),
			Interval:  types.Day,
			Timestamp: ts,
		},
	}

	if err := db.SaveBars(context.Background(), candles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.execArgs) != 2 {
		t.Fatalf("got %d inserts, want 2", len(mock.execArgs))
	}
	if col := mock.execArgs[0][1]; col != "5m" {
		t.Fatalf("first insert interval column: got %v, want 5m", col)
	}
	if col := mock.execArgs[1][1]; col != "1d" {
		t.Fatalf("second insert interval column: got %v, want 1d", col)
	}
}

func TestSaveBarsUnsupportedInterval(t *testing.T) {
	mock := &mockQuerier{}
	db := &Database{db: mock}

	err := db.SaveBars(context.Background(), []types.Candle{{Ticker: "SHOP", Interval: types.Interval("W")}})
	if !errors.Is(err, ErrIntervalNotSupported) {
		t.Fatalf("got error %v, want ErrIntervalNotSupported", err)
	}
	if len(mock.execArgs) != 0 {
		t.Fatalf("unsupported interval reached the database")
	}
}
