package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"valuator/types"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	bars    []types.Candle
	getErr  error
	saveErr error
	saved   [][]types.Candle
}

func (s *fakeStore) GetBars(_ context.Context, _ string, _ types.Interval, _, _ time.Time) ([]types.Candle, error) {
	return s.bars, s.getErr
}

func (s *fakeStore) SaveBars(_ context.Context, candles []types.Candle) error {
	s.saved = append(s.saved, candles)
	return s.saveErr
}

type fakeFetcher struct {
	bars  []types.Candle
	err   error
	calls int
}

func (f *fakeFetcher) GetBars(_ context.Context, _ string, _ types.Interval, _, _ time.Time) ([]types.Candle, error) {
	f.calls++
	return f.bars, f.err
}

func testBar(close string) types.Candle {
	return types.Candle{
		Ticker:    "SHOP",
		Close:     decimal.RequireFromString(close),
		Interval:  types.Day,
		Timestamp: time.Date(2025, 10, 6, 13, 30, 0, 0, time.UTC),
	}
}

func TestCachedSourceServesStoredBars(t *testing.T) {
	store := &fakeStore{bars: []types.Candle{testBar("100")}}
	fetcher := &fakeFetcher{bars: []types.Candle{testBar("999")}}
	src := NewCachedSource(store, fetcher, zerolog.Nop())

	bars, err := src.GetBars(context.Background(), "SHOP", types.Day, time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 || !bars[0].Close.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("stored bars not served: %v", bars)
	}
	if fetcher.calls != 0 {
		t.Fatalf("provider hit on a cache hit")
	}
}

func TestCachedSourceFetchesAndPersistsOnMiss(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{bars: []types.Candle{testBar("101")}}
	src := NewCachedSource(store, fetcher, zerolog.Nop())

	bars, err := src.GetBars(context.Background(), "SHOP", types.Day, time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 || !bars[0].Close.Equal(decimal.RequireFromString("101")) {
		t.Fatalf("fetched bars not served: %v", bars)
	}
	if fetcher.calls != 1 {
		t.Fatalf("provider hit %d times, want 1", fetcher.calls)
	}
	if len(store.saved) != 1 || len(store.saved[0]) != 1 {
		t.Fatalf("fetched bars not persisted: %v", store.saved)
	}
}

func TestCachedSourceReadsThroughStoreErrors(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection refused")}
	fetcher := &fakeFetcher{bars: []types.Candle{testBar("101")}}
	src := NewCachedSource(store, fetcher, zerolog.Nop())

	bars, err := src.GetBars(context.Background(), "SHOP", types.Day, time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("store failure surfaced: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}

func TestCachedSourceCacheWriteFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	fetcher := &fakeFetcher{bars: []types.Candle{testBar("101")}}
	src := NewCachedSource(store, fetcher, zerolog.Nop())

	bars, err := src.GetBars(context.Background(), "SHOP", types.Day, time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("cache write failure surfaced: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}

func TestCachedSourcePropagatesProviderError(t *testing.T) {
	store := &fakeStore{}
	fetchErr := errors.New("rate limited")
	src := NewCachedSource(store, &fakeFetcher{err: fetchErr}, zerolog.Nop())

	_, err := src.GetBars(context.Background(), "SHOP", types.Day, time.Now().AddDate(0, 0, -1), time.Now())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("got error %v, want the provider error", err)
	}
}
