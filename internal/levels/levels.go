// Package levels locates support and resistance levels by clustering local
// price extrema, and classifies the current price's proximity to them.
package levels

import (
	"sort"

	"forex-signalsv1/internal/model"
)

const (
	// DefaultWindow is the number of bars on each side that a bar must not
	// be exceeded by to count as a local extremum.
	DefaultWindow = 10
	// DefaultNumLevels yields numLevels/2 clusters per side.
	DefaultNumLevels = 5

	maxLevelsPerSide = 3

	atThresholdPct   = 0.5
	nearThresholdPct = 2.0
)

// Levels holds clustered support/resistance prices, ascending, at most
// three per side. Recomputed every cycle, never persisted.
//
// NearestSupport and NearestResistance are the MINIMUM of each side, not
// the level closest to the current price. That is how the levels have
// always been reported and the scorer thresholds are tuned to it, so the
// quirk is kept.
type Levels struct {
	Support           []float64 `json:"support"`
	Resistance        []float64 `json:"resistance"`
	NearestSupport    float64   `json:"nearest_support,omitempty"`
	NearestResistance float64   `json:"nearest_resistance,omitempty"`
	HasSupport        bool      `json:"-"`
	HasResistance     bool      `json:"-"`
}

// Find scans the interior of prices for local extrema and clusters them
// into support (from local minima) and resistance (from local maxima)
// levels. window bars at each end are excluded from the scan.
func Find(prices []float64, window, numLevels int) Levels {
	var mins, maxs []float64

	for i := window; i < len(prices)-window; i++ {
		isMin, isMax := true, true
		for j := -window; j <= window; j++ {
			if j == 0 {
				continue
			}
			if prices[i] > prices[i+j] {
				isMin = false
			}
			if prices[i] < prices[i+j] {
				isMax = false
			}
			if !isMin && !isMax {
				break
			}
		}
		if isMin {
			mins = append(mins, prices[i])
		}
		if isMax {
			maxs = append(maxs, prices[i])
		}
	}

	numClusters := numLevels / 2
	support := cluster(mins, numClusters)
	resistance := cluster(maxs, numClusters)
	if len(support) > maxLevelsPerSide {
		support = support[:maxLevelsPerSide]
	}
	if len(resistance) > maxLevelsPerSide {
		resistance = resistance[:maxLevelsPerSide]
	}

	lv := Levels{Support: support, Resistance: resistance}
	if len(support) > 0 {
		lv.NearestSupport = support[0] // ascending → first is the minimum
		lv.HasSupport = true
	}
	if len(resistance) > 0 {
		lv.NearestResistance = resistance[0]
		lv.HasResistance = true
	}
	return lv
}

// cluster bins candidates into numClusters equal-width bins spanning
// [min,max] and returns the mean of each non-empty bin, ascending. Every
// bin is half-open (value < upper bound), so the maximum candidate falls
// outside the top bin. Fewer candidates than clusters returns the sorted
// candidates unchanged.
func cluster(candidates []float64, numClusters int) []float64 {
	if len(candidates) < numClusters {
		out := append([]float64(nil), candidates...)
		sort.Float64s(out)
		return out
	}

	minP, maxP := candidates[0], candidates[0]
	for _, c := range candidates {
		if c < minP {
			minP = c
		}
		if c > maxP {
			maxP = c
		}
	}
	step := (maxP - minP) / float64(numClusters)

	var out []float64
	for i := 0; i < numClusters; i++ {
		lo := minP + float64(i)*step
		hi := minP + float64(i+1)*step
		var sum float64
		var n int
		for _, c := range candidates {
			if c >= lo && c < hi {
				sum += c
				n++
			}
		}
		if n > 0 {
			out = append(out, sum/float64(n))
		}
	}
	sort.Float64s(out)
	return out
}

// Position classifies price against the nearest levels using signed
// percentage distances. An undefined nearest level on either side is
// NEUTRAL by definition.
func (l Levels) Position(price float64) model.Position {
	if !l.HasSupport || !l.HasResistance || price == 0 {
		return model.Neutral
	}

	supDist := (price - l.NearestSupport) / price * 100
	resDist := (l.NearestResistance - price) / price * 100

	switch {
	case supDist < atThresholdPct:
		return model.AtSupport
	case resDist < atThresholdPct:
		return model.AtResistance
	case supDist < nearThresholdPct:
		return model.NearSupport
	case resDist < nearThresholdPct:
		return model.NearResistance
	default:
		return model.Neutral
	}
}
