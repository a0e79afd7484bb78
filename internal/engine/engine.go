package engine

import (
	"context"
	"errors"
	"time"

	"valuator/internal/pricing"
	"valuator/types"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Engine values a batch of buy orders against resolved market prices and
// assembles an immutable portfolio snapshot.
type Engine struct {
	resolver priceResolver
	config   *RunConfig
	log      zerolog.Logger
}

func NewEngine(resolver priceResolver, config *RunConfig, log zerolog.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		config:   config,
		log:      log.With().Str("component", "engine").Logger(),
	}
}

// lotResolution holds both quote lookups for one lot. Written by the worker
// pool, read only after Wait.
type lotResolution struct {
	buy    types.PriceQuote
	buyErr error
	val    types.PriceQuote
	valErr error
}

// Run resolves every lot's buy and valuation price with bounded
// parallelism, then assembles the snapshot in deterministic aggregator
// order. Unresolvable lots are skipped, not fatal; only cancellation aborts
// the run, discarding all partial results.
func (e *Engine) Run(ctx context.Context, orders []types.Order) (*types.PortfolioSnapshot, error) {
	valid, rejected := validateOrders(orders)
	for _, rej := range rejected {
		e.log.Warn().Str("ticker", rej.Order.Ticker).Str("reason", rej.Reason).Msg("order rejected")
	}

	groups := groupOrders(valid)

	results := make([][]lotResolution, len(groups))
	for i, grp := range groups {
		results[i] = make([]lotResolution, len(grp.orders))
	}

	bar := e.newProgressBar(2 * len(valid))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.workers)

	for gi, grp := range groups {
		for li, order := range grp.orders {
			res := &results[gi][li]

			g.Go(func() error {
				res.buy, res.buyErr = e.resolver.Resolve(gctx, e.buyStrategy(order), order.Ticker, order.TradeDate)
				bar.Add(1)
				return abortErr(res.buyErr)
			})
			g.Go(func() error {
				res.val, res.valErr = e.resolver.Resolve(gctx, pricing.NewCloseStrategy(), order.Ticker, e.valuationDate(order))
				bar.Add(1)
				return abortErr(res.valErr)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.assemble(groups, results, rejected), nil
}

// buyStrategy is the run's configured strategy, unless the order carries
// its own execution offset.
func (e *Engine) buyStrategy(order types.Order) pricing.Strategy {
	if order.Offset != nil {
		return pricing.NewIntradayOffsetStrategy(*order.Offset)
	}
	return e.config.buyStrategy
}

// valuationDate is the evaluation date for held lots and the sell date for
// realized ones.
func (e *Engine) valuationDate(order types.Order) time.Time {
	if order.Realized() {
		return *order.SellDate
	}
	return e.config.evaluationDate
}

// assemble re-sorts resolution results into aggregator order and computes
// all totals. Resolution concurrency never leaks into snapshot order.
func (e *Engine) assemble(groups []*positionGroup, results [][]lotResolution, rejected []types.RejectedOrder) *types.PortfolioSnapshot {
	snapshot := &types.PortfolioSnapshot{
		EvaluationDate: e.config.evaluationDate,
		Rejected:       rejected,
	}

	for gi, grp := range groups {
		var lots []types.Lot
		var skipped []types.SkippedLot

		for li, order := range grp.orders {
			res := results[gi][li]
			if err := firstErr(res.buyErr, res.valErr); err != nil {
				e.log.Warn().Str("ticker", order.Ticker).Err(err).Msg("lot skipped")
				skipped = append(skipped, types.SkippedLot{
					Ticker:    order.Ticker,
					Index:     li + 1,
					TradeDate: order.TradeDate,
					Reason:    err.Error(),
				})
				continue
			}
			lots = append(lots, buildLot(order, li+1, res.buy, res.val))
		}

		pos := buildPosition(grp.ticker, lots, skipped)
		snapshot.Positions = append(snapshot.Positions, pos)
		if pos.Unresolved() {
			e.log.Warn().Str("ticker", pos.Ticker).Msg("position fully unresolved, excluded from totals")
			continue
		}
		snapshot.Invested = snapshot.Invested.Add(pos.Invested)
		snapshot.CurrentValue = snapshot.CurrentValue.Add(pos.CurrentValue)
	}

	snapshot.PnL = snapshot.CurrentValue.Sub(snapshot.Invested)
	if snapshot.Invested.IsPositive() {
		snapshot.PnLPercent = snapshot.PnL.Div(snapshot.Invested).Mul(hundred)
	}
	return snapshot
}

func (e *Engine) newProgressBar(total int) *progressbar.ProgressBar {
	if !e.config.progress || total == 0 {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Resolving prices..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// abortErr propagates only cancellation; resolution failures are handled
// per-lot at assembly.
func abortErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
