package indicator

import "forex-signalsv1/internal/model"

// Default EMA periods for trend classification.
const (
	DefaultSlowPeriod  = 50
	DefaultTrendPeriod = 200
)

// ClassifyTrend maps EMA relationships and the current price into one of
// five trend states. When the series is shorter than trendPeriod, the slow
// EMA doubles as the trend EMA (degraded confidence, not an error).
//
// Decision order is exclusive, first match wins; a price exactly on the
// trend EMA resolves to RANGE_BOUND.
func ClassifyTrend(closes []float64, slowPeriod, trendPeriod int) model.Trend {
	if len(closes) == 0 {
		return model.RangeBound
	}

	slowEMA := EMA(closes, slowPeriod)
	trendEMA := slowEMA
	if len(closes) >= trendPeriod {
		trendEMA = EMA(closes, trendPeriod)
	}

	price := closes[len(closes)-1]
	slow := slowEMA[len(slowEMA)-1]
	trend := trendEMA[len(trendEMA)-1]

	switch {
	case price > trend && slow > trend:
		return model.StrongUptrend
	case price > trend:
		return model.WeakUptrend
	case price < trend && slow < trend:
		return model.StrongDowntrend
	case price < trend:
		return model.WeakDowntrend
	default:
		return model.RangeBound
	}
}
