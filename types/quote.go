package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confidence tags how a resolved price was derived.
type Confidence string

const (
	// ConfidenceExact is a daily close found exactly on the target date.
	ConfidenceExact Confidence = "EXACT"
	// ConfidenceNearestIntraday is the fine-grained bar closest to the
	// requested execution time.
	ConfidenceNearestIntraday Confidence = "NEAREST_INTRADAY"
	// ConfidenceDailyEstimate is the (open+high)/2 stand-in used when no
	// fine-grained bars exist for the target day.
	ConfidenceDailyEstimate Confidence = "DAILY_ESTIMATE"
	// ConfidenceNearestTradingDay is a daily close from a neighbouring
	// trading day.
	ConfidenceNearestTradingDay Confidence = "NEAREST_TRADING_DAY"
)

// PriceQuote is a resolved execution price. Timestamp carries the bar time
// for intraday matches and the target date otherwise. Estimated marks quotes
// synthesized from daily OHLC rather than observed bars.
type PriceQuote struct {
	Price      decimal.Decimal
	Timestamp  time.Time
	Confidence Confidence
	Estimated  bool
}
