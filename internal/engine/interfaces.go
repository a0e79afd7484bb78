package engine

import (
	"context"
	"time"

	"valuator/internal/pricing"
	"valuator/types"
)

type priceResolver interface {
	Resolve(ctx context.Context, strategy pricing.Strategy, ticker string, day time.Time) (types.PriceQuote, error)
}
