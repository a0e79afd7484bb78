package pricing

import (
	"context"
	"errors"
	"sync"
	"time"

	"valuator/types"

	"github.com/rs/zerolog"
)

// Resolver resolves execution prices through a Strategy, memoizing results
// per (ticker, date, strategy key) so each distinct lookup reaches the
// provider at most once per run. Safe for concurrent use.
type Resolver struct {
	src    BarSource
	market Market
	log    zerolog.Logger

	mu   sync.Mutex
	memo map[string]*memoEntry
}

type memoEntry struct {
	once  sync.Once
	quote types.PriceQuote
	err   error
}

func New(src BarSource, market Market, log zerolog.Logger) *Resolver {
	return &Resolver{
		src:    src,
		market: market,
		log:    log.With().Str("component", "resolver").Logger(),
		memo:   make(map[string]*memoEntry),
	}
}

func (r *Resolver) Market() Market {
	return r.market
}

// Resolve returns the execution price for ticker on day under the given
// strategy. Failure is always a PriceUnavailableError (or a context error on
// cancellation); callers skip the lot and continue.
func (r *Resolver) Resolve(ctx context.Context, strategy Strategy, ticker string, day time.Time) (types.PriceQuote, error) {
	key := strategy.Key(ticker, day)

	r.mu.Lock()
	entry, ok := r.memo[key]
	if !ok {
		entry = &memoEntry{}
		r.memo[key] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		entry.quote, entry.err = r.resolve(ctx, strategy, ticker, day)
	})
	return entry.quote, entry.err
}

func (r *Resolver) resolve(ctx context.Context, strategy Strategy, ticker string, day time.Time) (types.PriceQuote, error) {
	quote, err := strategy.Resolve(ctx, r.src, r.market, r.log, ticker, day)
	if err == nil {
		if !quote.Price.IsPositive() {
			return types.PriceQuote{}, &PriceUnavailableError{Ticker: ticker, Date: day}
		}
		return quote, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.PriceQuote{}, err
	}
	return types.PriceQuote{}, &PriceUnavailableError{Ticker: ticker, Date: day, Err: err}
}
