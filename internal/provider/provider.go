// Package provider fetches historical price series for currency pairs.
// The Frankfurter provider pulls daily reference rates over HTTP; the
// sample provider generates a deterministic random walk for offline runs.
package provider

import (
	"context"

	"forex-signalsv1/internal/model"
)

// Timeframes maps a timeframe name to its length in minutes.
var Timeframes = map[string]int{
	"1m": 1, "5m": 5, "15m": 15, "30m": 30,
	"1h": 60, "4h": 240, "1d": 1440,
}

// Provider fetches a price series for one pair.
type Provider interface {
	// Series returns up to periods bars for the pair, oldest first.
	Series(ctx context.Context, pair, timeframe string, periods int) (model.PriceSeries, error)
}
