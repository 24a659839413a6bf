// Package indicator provides technical indicator calculations over close
// price series: exponential moving averages, RSI momentum, and the
// EMA-based trend classifier.
package indicator

// EMA computes the exponential moving average of values with smoothing
// factor 2/(period+1). The result has the same length as the input and is
// seeded by the first value, so there is no lookback gap.
func EMA(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}
