package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"valuator/types"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Yahoo rejects requests without a browser-like agent.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

var intervalParam = map[types.Interval]string{
	types.FiveMinutes: "5m",
	types.Day:         "1d",
}

// Client is a Yahoo Finance API client serving historical bars and ticker
// metadata. It implements pricing.BarSource.
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// GetBars fetches OHLCV bars for the half-open range [start, end) at the
// given granularity. Rows Yahoo nulls out are skipped; an empty day returns
// an empty slice, not an error.
func (c *Client) GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	param, ok := intervalParam[interval]
	if !ok {
		return nil, fmt.Errorf("interval %q not supported", interval)
	}

	params := url.Values{}
	params.Add("interval", param)
	params.Add("period1", strconv.FormatInt(start.Unix(), 10))
	params.Add("period2", strconv.FormatInt(end.Unix(), 10))

	reqURL := c.baseURL + "/v8/finance/chart/" + url.QueryEscape(ticker) + "?" + params.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", ticker, err)
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse chart response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %v", ticker, result.Chart.Error)
	}
	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("no chart data returned")
		return nil, nil
	}

	chartData := result.Chart.Result[0]
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("no quote data in chart response")
		return nil, nil
	}
	quote := chartData.Indicators.Quote[0]

	var candles []types.Candle
	for i, ts := range chartData.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		// Yahoo sometimes returns null rows, decoded as all zeros.
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}

		volume := decimal.Zero
		if i < len(quote.Volume) {
			volume = decimal.NewFromFloat(quote.Volume[i])
		}

		candles = append(candles, types.Candle{
			Ticker:    ticker,
			Open:      decimal.NewFromFloat(quote.Open[i]),
			High:      decimal.NewFromFloat(quote.High[i]),
			Low:       decimal.NewFromFloat(quote.Low[i]),
			Close:     decimal.NewFromFloat(quote.Close[i]),
			Volume:    volume,
			Interval:  interval,
			Timestamp: time.Unix(ts, 0).UTC(),
		})
	}

	c.log.Debug().Str("ticker", ticker).Str("interval", param).Int("count", len(candles)).
		Msg("fetched bars")
	return candles, nil
}

// GetTickerInfo fetches static metadata (exchange, timezone, sector, ...)
// for a symbol.
func (c *Client) GetTickerInfo(ctx context.Context, ticker string) (*TickerInfo, error) {
	params := url.Values{}
	params.Add("symbols", ticker)
	params.Add("fields", "symbol,longName,shortName,fullExchangeName,exchangeTimezoneName,currency,sector,industry,country")

	reqURL := c.baseURL + "/v7/finance/quote?" + params.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", ticker, err)
	}

	var result quoteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse quote response: %w", err)
	}
	if result.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error for %s: %v", ticker, result.QuoteResponse.Error)
	}
	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for %s", ticker)
	}

	info := result.QuoteResponse.Result[0]
	name := getString(info, "longName")
	if name == "" {
		name = getString(info, "shortName")
	}

	return &TickerInfo{
		Symbol:   ticker,
		Name:     name,
		Exchange: getString(info, "fullExchangeName"),
		Timezone: getString(info, "exchangeTimezoneName"),
		Currency: getString(info, "currency"),
		Country:  getString(info, "country"),
		Sector:   getString(info, "sector"),
		Industry: getString(info, "industry"),
	}, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
