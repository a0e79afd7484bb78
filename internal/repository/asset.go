package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Asset is static ticker metadata (exchange, timezone, sector).
type Asset struct {
	Id         int
	Ticker     string
	Name       string
	Exchange   string
	Timezone   string
	Currency   string
	Sector     string
	ModifiedAt time.Time
}

const getAssetSQL = `
SELECT id, ticker, name, exchange, timezone, currency, sector, modified_at
FROM assets
WHERE ticker = $1`

const upsertAssetSQL = `
INSERT INTO assets (ticker, name, exchange, timezone, currency, sector, modified_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (ticker) DO UPDATE
SET name = EXCLUDED.name, exchange = EXCLUDED.exchange, timezone = EXCLUDED.timezone,
    currency = EXCLUDED.currency, sector = EXCLUDED.sector, modified_at = now()`

// GetAssetByTicker retrieves an Asset by its ticker.
func (db *Database) GetAssetByTicker(ctx context.Context, ticker string) (*Asset, error) {
	var asset Asset
	err := db.db.QueryRow(ctx, getAssetSQL, ticker).Scan(
		&asset.Id, &asset.Ticker, &asset.Name, &asset.Exchange,
		&asset.Timezone, &asset.Currency, &asset.Sector, &asset.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

// UpsertAsset stores ticker metadata fetched from the market-data provider.
func (db *Database) UpsertAsset(ctx context.Context, asset Asset) error {
	_, err := db.db.Exec(ctx, upsertAssetSQL,
		asset.Ticker, asset.Name, asset.Exchange, asset.Timezone, asset.Currency, asset.Sector)
	if err != nil {
		return fmt.Errorf("upsert asset %s: %w", asset.Ticker, err)
	}
	return nil
}
