package pricing

import (
	"errors"
	"fmt"
	"time"

	"valuator/types"
)

// Global error declarations.
var (
	ErrPriceUnavailable = errors.New("price unavailable")

	// errNoBars signals an empty (but successful) provider response for a
	// tier, driving fallback to the next tier.
	errNoBars = errors.New("no bars in window")
)

// PriceUnavailableError reports that every fallback tier failed for a
// (ticker, date) pair. Err carries the last provider failure, if any.
type PriceUnavailableError struct {
	Ticker string
	Date   time.Time
	Err    error
}

func (e *PriceUnavailableError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, errNoBars) {
		return fmt.Sprintf("%s: no price for %s: %v", e.Ticker, e.Date.Format(types.DateFormat), e.Err)
	}
	return fmt.Sprintf("%s: no price for %s", e.Ticker, e.Date.Format(types.DateFormat))
}

func (e *PriceUnavailableError) Is(target error) bool {
	return target == ErrPriceUnavailable
}

func (e *PriceUnavailableError) Unwrap() error {
	return e.Err
}
