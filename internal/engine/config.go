package engine

import (
	"time"

	"valuator/internal/pricing"
)

// RunConfig selects how a valuation run resolves buy prices and where
// unrealized lots are valued.
type RunConfig struct {
	evaluationDate time.Time
	buyStrategy    pricing.Strategy
	workers        int
	progress       bool
	timeLabel      string
}

func NewRunConfig(evaluationDate time.Time, buy pricing.Strategy, workers int, progress bool, timeLabel string) *RunConfig {
	if workers < 1 {
		workers = 1
	}
	return &RunConfig{
		evaluationDate: evaluationDate,
		buyStrategy:    buy,
		workers:        workers,
		progress:       progress,
		timeLabel:      timeLabel,
	}
}
