package indicator

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

// ────────────────────────────────────────────────────────────
// EMA
// ────────────────────────────────────────────────────────────

func TestEMA_Correctness_Period3(t *testing.T) {
	// alpha = 2/(3+1) = 0.5, seeded by the first value:
	// out[0] = 1.0
	// out[1] = 2.0*0.5 + 1.0*0.5  = 1.5
	// out[2] = 3.0*0.5 + 1.5*0.5  = 2.25
	// out[3] = 2.0*0.5 + 2.25*0.5 = 2.125
	out := EMA([]float64{1, 2, 3, 2}, 3)
	want := []float64{1.0, 1.5, 2.25, 2.125}

	if len(out) != len(want) {
		t.Fatalf("length: got %d, want %d", len(out), len(want))
	}
	for i := range want {
		assertClose(t, "EMA(3)", out[i], want[i], 1e-9)
	}
}

func TestEMA_Empty(t *testing.T) {
	if out := EMA(nil, 5); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}

func TestEMA_MonotoneIncreasingSeries(t *testing.T) {
	// For a monotonically increasing series the EMA must be monotonically
	// increasing and bounded by the series min and max.
	values := make([]float64, 100)
	for i := range values {
		values[i] = 1.0 + 0.01*float64(i)
	}
	out := EMA(values, 20)

	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Fatalf("EMA not increasing at %d: %.6f <= %.6f", i, out[i], out[i-1])
		}
	}
	for i, v := range out {
		if v < values[0] || v > values[len(values)-1] {
			t.Fatalf("EMA out of bounds at %d: %.6f", i, v)
		}
	}
}

// ────────────────────────────────────────────────────────────
// RSI
// ────────────────────────────────────────────────────────────

func TestRSI_Correctness(t *testing.T) {
	// Last 3 deltas: +1.0, -0.5, +1.5 → mean gain 2.5/3, mean loss 0.5/3
	// RS = 5 → RSI = 100 - 100/6 = 83.3333
	got := RSI([]float64{1, 2, 1.5, 3}, 3)
	assertClose(t, "RSI(3)", got, 83.333333, 1e-4)
}

func TestRSI_AllGains(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i + 1)
	}
	if got := RSI(values, 14); got != 100.0 {
		t.Errorf("all-gains series: got %.4f, want 100", got)
	}
}

func TestRSI_AllLosses(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(30 - i)
	}
	assertClose(t, "all-losses RSI", RSI(values, 14), 0.0, 1e-9)
}

func TestRSI_ShortSeriesNeutral(t *testing.T) {
	// Fewer than period+1 values degrades to the neutral 50.
	if got := RSI([]float64{1, 2, 3}, 14); got != NeutralRSI {
		t.Errorf("short series: got %.4f, want %.1f", got, NeutralRSI)
	}
}

func TestRSI_Bounds(t *testing.T) {
	values := []float64{1.1, 1.05, 1.2, 1.15, 1.3, 1.25, 1.4, 1.1, 1.5, 1.45,
		1.6, 1.2, 1.7, 1.65, 1.8, 1.4}
	got := RSI(values, 14)
	if got < 0 || got > 100 {
		t.Errorf("RSI out of [0,100]: %.4f", got)
	}
}

// ────────────────────────────────────────────────────────────
// Trend classification
// ────────────────────────────────────────────────────────────

func TestClassifyTrend_StrongUptrend(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.0 + 0.001*float64(i)
	}
	if got := ClassifyTrend(closes, DefaultSlowPeriod, DefaultTrendPeriod); got != "STRONG_UPTREND" {
		t.Errorf("rising 250-bar series: got %s", got)
	}
}

func TestClassifyTrend_StrongDowntrend(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 2.0 - 0.001*float64(i)
	}
	if got := ClassifyTrend(closes, DefaultSlowPeriod, DefaultTrendPeriod); got != "STRONG_DOWNTREND" {
		t.Errorf("falling 250-bar series: got %s", got)
	}
}

func TestClassifyTrend_FlatIsRangeBound(t *testing.T) {
	// A constant series puts the price exactly on the trend EMA; boundary
	// ties must resolve to RANGE_BOUND.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.2345
	}
	if got := ClassifyTrend(closes, DefaultSlowPeriod, DefaultTrendPeriod); got != "RANGE_BOUND" {
		t.Errorf("flat series: got %s", got)
	}
}

func TestClassifyTrend_ShortSeriesUsesSlowProxy(t *testing.T) {
	// Under 200 bars the slow EMA doubles as the trend EMA, so a rising
	// series can only be a weak uptrend (slow == trend rules out strong).
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 1.0 + 0.001*float64(i)
	}
	if got := ClassifyTrend(closes, DefaultSlowPeriod, DefaultTrendPeriod); got != "WEAK_UPTREND" {
		t.Errorf("short rising series: got %s", got)
	}
}

func TestClassifyTrend_Empty(t *testing.T) {
	if got := ClassifyTrend(nil, DefaultSlowPeriod, DefaultTrendPeriod); got != "RANGE_BOUND" {
		t.Errorf("empty series: got %s", got)
	}
}
