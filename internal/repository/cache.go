package repository

import (
	"context"
	"time"

	"valuator/types"

	"github.com/rs/zerolog"
)

type barStore interface {
	GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error)
	SaveBars(ctx context.Context, candles []types.Candle) error
}

type barFetcher interface {
	GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error)
}

// CachedSource serves bars from the store and falls through to the provider
// on a miss, persisting whatever it fetched. A failed cache write never fails
// the read.
type CachedSource struct {
	store   barStore
	fetcher barFetcher
	log     zerolog.Logger
}

func NewCachedSource(store barStore, fetcher barFetcher, log zerolog.Logger) *CachedSource {
	return &CachedSource{
		store:   store,
		fetcher: fetcher,
		log:     log.With().Str("component", "bar-cache").Logger(),
	}
}

func (s *CachedSource) GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	stored, err := s.store.GetBars(ctx, ticker, interval, start, end)
	if err != nil {
		s.log.Warn().Str("ticker", ticker).Err(err).Msg("store read failed, fetching from provider")
	} else if len(stored) > 0 {
		return stored, nil
	}

	fetched, err := s.fetcher.GetBars(ctx, ticker, interval, start, end)
	if err != nil {
		return nil, err
	}
	if len(fetched) > 0 {
		if err := s.store.SaveBars(ctx, fetched); err != nil {
			s.log.Warn().Str("ticker", ticker).Err(err).Msg("cache write failed")
		}
	}
	return fetched, nil
}
