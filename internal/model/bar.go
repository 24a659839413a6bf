package model

import "time"

// Bar represents one OHLCV observation for a fixed time bucket.
// Prices are float64 because forex rates are quoted to 4-5 decimal places
// and pip arithmetic downstream is defined on decimal fractions.
type Bar struct {
	TS     time.Time `json:"ts"` // bucket start time (UTC)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool { return b.Close > b.Open }

// Bearish reports whether the bar closed below its open.
func (b Bar) Bearish() bool { return b.Close < b.Open }

// PriceSeries is a chronological sequence of bars for one pair and
// timeframe. No duplicate timestamps.
type PriceSeries []Bar

// Closes extracts the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Last returns the most recent bar. ok is false for an empty series.
func (s PriceSeries) Last() (bar Bar, ok bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}
