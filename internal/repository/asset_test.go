package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestGetAssetByTickerNotFound(t *testing.T) {
	db := &Database{db: &mockQuerier{rowErr: pgx.ErrNoRows}}

	_, err := db.GetAssetByTicker(context.Background(), "DLST")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("got error %v, want ErrAssetNotFound", err)
	}
}

func TestGetAssetByTickerOtherError(t *testing.T) {
	scanErr := errors.New("connection reset")
	db := &Database{db: &mockQuerier{rowErr: scanErr}}

	_, err := db.GetAssetByTicker(context.Background(), "SHOP")
	if !errors.Is(err, scanErr) {
		t.Fatalf("got error %v, want the scan error", err)
	}
	if errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("generic failure reported as not found")
	}
}

func TestUpsertAsset(t *testing.T) {
	mock := &mockQuerier{}
	db := &Database{db: mock}

	asset := Asset{Ticker: "SHOP", Name: "Shopify Inc.", Exchange: "NYSE", Timezone: "America/New_York", Currency: "USD"}
	if err := db.UpsertAsset(context.Background(), asset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.execArgs) != 1 {
		t.Fatalf("got %d execs, want 1", len(mock.execArgs))
	}
	if mock.execArgs[0][0] != "SHOP" {
		t.Fatalf("first arg: got %v, want SHOP", mock.execArgs[0][0])
	}
}
