package indicator

// NeutralRSI is returned when the series is too short to compute momentum.
const NeutralRSI = 50.0

// RSI returns the Relative Strength Index at the last value, in [0,100].
// Gains and losses are simple rolling means over the last period deltas.
// A zero loss mean maps to 100 rather than propagating a division by zero.
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return NeutralRSI
	}

	var gain, loss float64
	for i := len(values) - period; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}

	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		return 100.0
	}
	avgGain := gain / float64(period)
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
