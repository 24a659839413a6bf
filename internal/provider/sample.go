package provider

import (
	"context"
	"math"
	"math/rand"
	"time"

	"forex-signalsv1/internal/model"
)

// basePrices anchors the sample random walk per pair.
var basePrices = map[string]float64{
	"EURUSD": 1.0500, "GBPUSD": 1.2700, "USDJPY": 155.00,
	"AUDUSD": 0.6500, "USDCAD": 1.3500, "EURGBP": 0.8500,
	"USDCHF": 0.8800,
}

// Sample generates a deterministic random-walk price series. The same pair
// and period count always produce the same series, so downstream behavior
// is reproducible without network access.
type Sample struct {
	seed int64
}

// NewSample creates a sample provider with a fixed seed.
func NewSample() *Sample {
	return &Sample{seed: 42}
}

// Series generates periods hourly bars ending now.
func (s *Sample) Series(ctx context.Context, pair, timeframe string, periods int) (model.PriceSeries, error) {
	base, ok := basePrices[pair]
	if !ok {
		base = 1.0
	}

	// Per-pair seed so pairs do not walk in lockstep.
	seed := s.seed
	for _, c := range pair {
		seed = seed*31 + int64(c)
	}
	rng := rand.New(rand.NewSource(seed))

	minutes := Timeframes["1h"]
	if m, ok := Timeframes[timeframe]; ok {
		minutes = m
	}
	step := time.Duration(minutes) * time.Minute
	start := time.Now().UTC().Truncate(step).Add(-step * time.Duration(periods-1))

	series := make(model.PriceSeries, 0, periods)
	price := base
	for i := 0; i < periods; i++ {
		ret := rng.NormFloat64()*0.003 + 0.0001
		price *= 1 + ret

		open := price * (1 + rng.NormFloat64()*0.001)
		high := price * (1 + math.Abs(rng.NormFloat64()*0.002))
		low := price * (1 - math.Abs(rng.NormFloat64()*0.002))
		if open > high {
			high = open
		}
		if open < low {
			low = open
		}

		series = append(series, model.Bar{
			TS:     start.Add(step * time.Duration(i)),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: float64(1000 + rng.Intn(9000)),
		})
	}
	return series, nil
}
