package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"valuator/internal/config"
	"valuator/internal/engine"
	"valuator/internal/marketdata/yahoo"
	"valuator/internal/pricing"
	"valuator/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the run configuration")
	csvPath := flag.String("csv", "", "override the CSV output path from the config")
	info := flag.Bool("info", false, "print ticker metadata instead of running a valuation")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(log, *configPath, *csvPath, *info); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func run(log zerolog.Logger, configPath, csvPath string, info bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if info {
		return printTickerInfo(ctx, log, cfg)
	}

	source, cleanup, err := newBarSource(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	market := pricing.USEquities()
	resolver := pricing.New(source, market, log)

	var buy pricing.Strategy
	if cfg.Strategy == config.StrategyIntraday {
		buy = pricing.NewIntradayOffsetStrategy(cfg.Offset())
	} else {
		buy = pricing.NewCloseStrategy()
	}

	eng := engine.NewEngine(resolver,
		engine.NewRunConfig(cfg.EvaluationDate, buy, cfg.Workers, true, market.Label),
		log)

	snapshot, err := eng.Run(ctx, cfg.BuildOrders())
	if err != nil {
		return err
	}
	stats := engine.ComputeStatistics(snapshot)

	engine.WriteReport(os.Stdout, snapshot, stats, market.Label)

	out := cfg.CSVOutput
	if csvPath != "" {
		out = csvPath
	}
	if out != "" {
		if err := engine.WriteLotsCSVFile(out, snapshot, market.Label); err != nil {
			return err
		}
		log.Info().Str("path", out).Msg("lots exported")
	}
	return nil
}

func newBarSource(ctx context.Context, log zerolog.Logger, cfg *config.Config) (pricing.BarSource, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres, config.SourceCached:
		db, err := openDatabase(ctx)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Source == config.SourceCached {
			return repository.NewCachedSource(db, yahoo.NewClient(log), log), db.Close, nil
		}
		return db, db.Close, nil
	default:
		return yahoo.NewClient(log), func() {}, nil
	}
}

func openDatabase(ctx context.Context) (*repository.Database, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the %q and %q sources",
			config.SourcePostgres, config.SourceCached)
	}
	return repository.NewDatabase(ctx, dbURL)
}

func printTickerInfo(ctx context.Context, log zerolog.Logger, cfg *config.Config) error {
	client := yahoo.NewClient(log)

	// With a database configured, fetched metadata is stored alongside bars.
	var db *repository.Database
	if cfg.Source != config.SourceYahoo {
		var err error
		db, err = openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	seen := make(map[string]bool)
	for _, order := range cfg.BuildOrders() {
		if seen[order.Ticker] {
			continue
		}
		seen[order.Ticker] = true

		ti, err := client.GetTickerInfo(ctx, order.Ticker)
		if err != nil {
			log.Warn().Str("ticker", order.Ticker).Err(err).Msg("ticker info unavailable")
			continue
		}
		fmt.Printf("%s - %s\n", ti.Symbol, ti.Name)
		fmt.Printf("  exchange: %s\n", ti.Exchange)
		fmt.Printf("  timezone: %s\n", ti.Timezone)
		fmt.Printf("  currency: %s\n", ti.Currency)
		fmt.Printf("  sector:   %s\n", ti.Sector)

		if db == nil {
			continue
		}
		asset := repository.Asset{
			Ticker:   ti.Symbol,
			Name:     ti.Name,
			Exchange: ti.Exchange,
			Timezone: ti.Timezone,
			Currency: ti.Currency,
			Sector:   ti.Sector,
		}
		if err := db.UpsertAsset(ctx, asset); err != nil {
			log.Warn().Str("ticker", ti.Symbol).Err(err).Msg("asset store write failed")
		}
	}
	return nil
}
