package pricing

import (
	"context"
	"sort"
	"time"

	"valuator/types"

	"github.com/shopspring/decimal"
)

const (
	// intradayWindow is the half-width of the match window around the target
	// execution time.
	intradayWindow = time.Hour
	// dailyWindowDays is the calendar margin searched around a target date
	// to skip over weekends and holidays.
	dailyWindowDays = 5
)

var two = decimal.NewFromInt(2)

// nearestIntraday matches the fine-grained bar closest to the session open
// plus offset. Only bars within ±intradayWindow of the target qualify; ties
// go to the earliest bar.
func nearestIntraday(ctx context.Context, src BarSource, market Market, ticker string, day time.Time, offset time.Duration) (types.PriceQuote, error) {
	target := market.OpenAt(day).Add(offset)
	start, end := market.DayRange(day)

	bars, err := src.GetBars(ctx, ticker, types.FiveMinutes, start, end)
	if err != nil {
		return types.PriceQuote{}, err
	}
	sortBars(bars)

	var best *types.Candle
	var bestDist time.Duration
	for i := range bars {
		dist := absDuration(bars[i].Timestamp.In(market.Location).Sub(target))
		if dist > intradayWindow {
			continue
		}
		// Strict < keeps the earliest bar on equal distance.
		if best == nil || dist < bestDist {
			best = &bars[i]
			bestDist = dist
		}
	}
	if best == nil {
		return types.PriceQuote{}, errNoBars
	}

	return types.PriceQuote{
		Price:      best.Close,
		Timestamp:  best.Timestamp.In(market.Location),
		Confidence: types.ConfidenceNearestIntraday,
	}, nil
}

// dailyEstimate synthesizes an intraday price from the target day's daily
// bar as (open+high)/2, a rough stand-in for a mid-morning fill. The quote
// timestamp is the target execution time, flagged as estimated.
func dailyEstimate(ctx context.Context, src BarSource, market Market, ticker string, day time.Time, offset time.Duration) (types.PriceQuote, error) {
	start, end := market.DayRange(day)

	bars, err := src.GetBars(ctx, ticker, types.Day, start, end)
	if err != nil {
		return types.PriceQuote{}, err
	}
	sortBars(bars)

	for i := range bars {
		if !types.SameDay(bars[i].Timestamp, start, market.Location) {
			continue
		}
		return types.PriceQuote{
			Price:      bars[i].Open.Add(bars[i].High).Div(two),
			Timestamp:  market.OpenAt(day).Add(offset),
			Confidence: types.ConfidenceDailyEstimate,
			Estimated:  true,
		}, nil
	}
	return types.PriceQuote{}, errNoBars
}

// nearestTradingDay finds a daily close on or near the target date. An exact
// match is Exact confidence; otherwise the earliest later bar wins, falling
// back to the latest earlier bar when the window holds nothing after the
// target.
func nearestTradingDay(ctx context.Context, src BarSource, market Market, ticker string, day time.Time) (types.PriceQuote, error) {
	dayStart, _ := market.DayRange(day)
	start := dayStart.AddDate(0, 0, -dailyWindowDays)
	end := dayStart.AddDate(0, 0, dailyWindowDays+1)

	bars, err := src.GetBars(ctx, ticker, types.Day, start, end)
	if err != nil {
		return types.PriceQuote{}, err
	}
	sortBars(bars)

	var after, before *types.Candle
	for i := range bars {
		ts := bars[i].Timestamp.In(market.Location)
		if types.SameDay(ts, dayStart, market.Location) {
			return types.PriceQuote{
				Price:      bars[i].Close,
				Timestamp:  bars[i].Timestamp,
				Confidence: types.ConfidenceExact,
			}, nil
		}
		if ts.After(dayStart) {
			if after == nil {
				after = &bars[i]
			}
		} else {
			before = &bars[i]
		}
	}

	pick := after
	if pick == nil {
		pick = before
	}
	if pick == nil {
		return types.PriceQuote{}, errNoBars
	}
	return types.PriceQuote{
		Price:      pick.Close,
		Timestamp:  pick.Timestamp,
		Confidence: types.ConfidenceNearestTradingDay,
	}, nil
}

func sortBars(bars []types.Candle) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
