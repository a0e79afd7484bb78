package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"valuator/types"

	"github.com/rs/zerolog"
)

// Strategy is one tier sequence for resolving an execution price. Variants
// differ only in which tiers they enter; the tiers themselves are shared.
type Strategy interface {
	Resolve(ctx context.Context, src BarSource, market Market, log zerolog.Logger, ticker string, day time.Time) (types.PriceQuote, error)
	// Key identifies a resolution for memoization. Two calls with the same
	// key must hit the provider at most once per run.
	Key(ticker string, day time.Time) string
}

// CloseStrategy resolves the daily close on the nearest trading day. Used
// for close-price buy runs and for every valuation-side lookup.
type CloseStrategy struct{}

func NewCloseStrategy() CloseStrategy {
	return CloseStrategy{}
}

func (CloseStrategy) Resolve(ctx context.Context, src BarSource, market Market, log zerolog.Logger, ticker string, day time.Time) (types.PriceQuote, error) {
	return nearestTradingDay(ctx, src, market, ticker, day)
}

func (CloseStrategy) Key(ticker string, day time.Time) string {
	return fmt.Sprintf("%s|%s|close", ticker, day.Format(types.DateFormat))
}

// IntradayOffsetStrategy resolves the price at open+Offset: nearest
// fine-grained bar first, then the (open+high)/2 daily estimate, then the
// nearest-trading-day close. A tier-specific provider failure is logged and
// the next tier is still attempted.
type IntradayOffsetStrategy struct {
	Offset time.Duration
}

func NewIntradayOffsetStrategy(offset time.Duration) IntradayOffsetStrategy {
	return IntradayOffsetStrategy{Offset: offset}
}

func (s IntradayOffsetStrategy) Resolve(ctx context.Context, src BarSource, market Market, log zerolog.Logger, ticker string, day time.Time) (types.PriceQuote, error) {
	quote, err := nearestIntraday(ctx, src, market, ticker, day, s.Offset)
	if err == nil {
		return quote, nil
	}
	if tierFailed(err) {
		log.Warn().Err(err).Str("ticker", ticker).Str("date", day.Format(types.DateFormat)).
			Msg("fine-grained lookup failed, trying daily estimate")
	}
	if ctx.Err() != nil {
		return types.PriceQuote{}, ctx.Err()
	}

	quote, err = dailyEstimate(ctx, src, market, ticker, day, s.Offset)
	if err == nil {
		return quote, nil
	}
	if tierFailed(err) {
		log.Warn().Err(err).Str("ticker", ticker).Str("date", day.Format(types.DateFormat)).
			Msg("daily estimate failed, trying nearest trading day")
	}
	if ctx.Err() != nil {
		return types.PriceQuote{}, ctx.Err()
	}

	return nearestTradingDay(ctx, src, market, ticker, day)
}

func (s IntradayOffsetStrategy) Key(ticker string, day time.Time) string {
	return fmt.Sprintf("%s|%s|open+%s", ticker, day.Format(types.DateFormat), s.Offset)
}

// tierFailed reports a real provider failure, as opposed to a clean empty
// window.
func tierFailed(err error) bool {
	return err != nil && !errors.Is(err, errNoBars)
}
