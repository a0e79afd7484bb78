package config

import (
	"fmt"
	"os"
	"time"

	"valuator/types"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	StrategyClose    = "close"
	StrategyIntraday = "intraday"

	SourceYahoo    = "yahoo"
	SourcePostgres = "postgres"
	// SourceCached reads from postgres and falls through to yahoo on a miss,
	// persisting what it fetched.
	SourceCached = "cached"
)

// Config is one valuation run, loaded from YAML.
type Config struct {
	EvaluationDate time.Time     `yaml:"evaluation_date"`
	Strategy       string        `yaml:"strategy"`
	OffsetHours    float64       `yaml:"offset_hours"`
	Workers        int           `yaml:"workers"`
	Source         string        `yaml:"source"`
	CSVOutput      string        `yaml:"csv_output"`
	Orders         []OrderConfig `yaml:"orders"`
}

type OrderConfig struct {
	Ticker    string     `yaml:"ticker"`
	TradeDate time.Time  `yaml:"trade_date"`
	Amount    float64    `yaml:"amount"`
	SellDate  *time.Time `yaml:"sell_date"`
}

// LoadConfig reads and validates a run configuration, applying defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Strategy == "" {
		cfg.Strategy = StrategyClose
	}
	if cfg.Source == "" {
		cfg.Source = SourceYahoo
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.EvaluationDate.IsZero() {
		return fmt.Errorf("evaluation_date is required")
	}
	switch c.Strategy {
	case StrategyClose, StrategyIntraday:
	default:
		return fmt.Errorf("unknown strategy %q (want %q or %q)", c.Strategy, StrategyClose, StrategyIntraday)
	}
	if c.Strategy == StrategyIntraday && c.OffsetHours < 0 {
		return fmt.Errorf("offset_hours must be non-negative")
	}
	switch c.Source {
	case SourceYahoo, SourcePostgres, SourceCached:
	default:
		return fmt.Errorf("unknown source %q (want %q, %q or %q)", c.Source, SourceYahoo, SourcePostgres, SourceCached)
	}
	if len(c.Orders) == 0 {
		return fmt.Errorf("no orders configured")
	}
	return nil
}

// Offset returns the intraday execution offset, or zero for close runs.
func (c *Config) Offset() time.Duration {
	return time.Duration(c.OffsetHours * float64(time.Hour))
}

// BuildOrders converts the configured orders to the engine's order type.
// Validation of individual orders happens in the engine; this is a pure
// mapping.
func (c *Config) BuildOrders() []types.Order {
	orders := make([]types.Order, 0, len(c.Orders))
	for _, oc := range c.Orders {
		order := types.Order{
			Ticker:    oc.Ticker,
			TradeDate: oc.TradeDate,
			Amount:    decimal.NewFromFloat(oc.Amount),
			SellDate:  oc.SellDate,
		}
		if c.Strategy == StrategyIntraday {
			offset := c.Offset()
			order.Offset = &offset
		}
		orders = append(orders, order)
	}
	return orders
}
