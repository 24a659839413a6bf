// Package candle detects candlestick patterns over the last bars of a
// price series. At most one pattern is reported per cycle; the priority
// order in Match is authoritative for tie-breaking.
package candle

import (
	"math"

	"forex-signalsv1/internal/model"
)

// bodyEpsilon floors a near-zero candle body before ratio comparisons so
// shadow/body ratios stay finite.
const bodyEpsilon = 1e-4

// smallBodyRatio bounds the middle candle of a star pattern relative to
// the first candle's body.
const smallBodyRatio = 0.3

// Match inspects the last one to four bars and returns the first matching
// pattern, or NONE. Multi-bar checks are skipped when the series is too
// short; they never fail the single-bar ones.
func Match(series model.PriceSeries) model.Pattern {
	n := len(series)
	if n == 0 {
		return model.PatternNone
	}

	cur := series[n-1]
	body := math.Abs(cur.Close - cur.Open)
	if body < bodyEpsilon {
		body = bodyEpsilon
	}
	upper := cur.High - math.Max(cur.Open, cur.Close)
	lower := math.Min(cur.Open, cur.Close) - cur.Low

	switch {
	case upper > 3*body && lower > 3*body:
		return model.PatternDoji
	case lower > 2*body && upper < 0.5*body && cur.Bullish():
		return model.PatternBullishHammer
	case upper > 2*body && lower < 0.5*body && cur.Bullish():
		return model.PatternInvertedHammer
	case upper > 2*body && lower < 0.5*body && cur.Bearish():
		return model.PatternShootingStar
	}

	if n >= 2 {
		prev := series[n-2]
		if cur.Bullish() && prev.Bearish() && cur.Close > prev.Open && cur.Open < prev.Close {
			return model.PatternBullishEngulfing
		}
		if cur.Bearish() && prev.Bullish() && cur.Close < prev.Open && cur.Open > prev.Close {
			return model.PatternBearishEngulfing
		}
	}

	if n >= 3 {
		first, star := series[n-3], series[n-2]
		firstBody := math.Abs(first.Close - first.Open)
		starBody := math.Abs(star.Close - star.Open)
		mid := (first.Open + first.Close) / 2
		if first.Bearish() && starBody < smallBodyRatio*firstBody && cur.Bullish() && cur.Close > mid {
			return model.PatternMorningStar
		}
		if first.Bullish() && starBody < smallBodyRatio*firstBody && cur.Bearish() && cur.Close < mid {
			return model.PatternEveningStar
		}
	}

	// The earliest soldier closes above the bar before the 3-bar window,
	// so four bars are required.
	if n >= 4 {
		soldiers := true
		for i := n - 3; i < n; i++ {
			if !series[i].Bullish() || series[i].Close <= series[i-1].Close {
				soldiers = false
				break
			}
		}
		if soldiers {
			return model.PatternThreeWhiteSoldiers
		}
	}

	return model.PatternNone
}
