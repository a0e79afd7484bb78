package pricing

import (
	"context"
	"time"

	"valuator/types"
)

// BarSource supplies historical bars for a ticker over a half-open time
// range [start, end). Implementations may return bars in any order and may
// return an empty slice; the resolver sorts and handles both.
type BarSource interface {
	GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error)
}
