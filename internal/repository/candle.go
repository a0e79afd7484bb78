package repository

import (
	"context"
	"fmt"
	"time"

	"valuator/types"
)

var intervalColumn = map[types.Interval]string{
	types.FiveMinutes: "5m",
	types.Day:         "1d",
}

const getBarsSQL = `
SELECT ticker, ts, open, high, low, close, volume
FROM candles
WHERE ticker = $1 AND interval = $2 AND ts >= $3 AND ts < $4
ORDER BY ts`

const insertBarSQL = `
INSERT INTO candles (ticker, interval, ts, open, high, low, close, volume)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (ticker, interval, ts) DO UPDATE
SET open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
    close = EXCLUDED.close, volume = EXCLUDED.volume`

// GetBars serves stored bars for the half-open range [start, end). An empty
// result is returned as-is; the resolver treats it as "no bars".
func (db *Database) GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	column, ok := intervalColumn[interval]
	if !ok {
		return nil, ErrIntervalNotSupported
	}

	rows, err := db.db.Query(ctx, getBarsSQL, ticker, column, start, end)
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	var candles []types.Candle
	for rows.Next() {
		candle := types.Candle{Interval: interval}
		err := rows.Scan(&candle.Ticker, &candle.Timestamp,
			&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume)
		if err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		candles = append(candles, candle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read candles: %w", err)
	}
	return candles, nil
}

// SaveBars upserts fetched bars so later runs can value offline.
func (db *Database) SaveBars(ctx context.Context, candles []types.Candle) error {
	for _, candle := range candles {
		column, ok := intervalColumn[candle.Interval]
		if !ok {
			return ErrIntervalNotSupported
		}
		_, err := db.db.Exec(ctx, insertBarSQL,
			candle.Ticker, column, candle.Timestamp,
			candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)
		if err != nil {
			return fmt.Errorf("insert candle %s %s: %w", candle.Ticker, candle.Timestamp, err)
		}
	}
	return nil
}
