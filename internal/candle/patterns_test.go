package candle

import (
	"testing"

	"forex-signalsv1/internal/model"
)

func bar(o, h, l, c float64) model.Bar {
	return model.Bar{Open: o, High: h, Low: l, Close: c}
}

// flat returns a bar with no shadows.
func flat(o, c float64) model.Bar {
	h, l := o, c
	if c > o {
		h, l = c, o
	}
	return model.Bar{Open: o, High: h, Low: l, Close: c}
}

func TestMatch_Doji(t *testing.T) {
	// Tiny body, long shadows on both sides.
	got := Match(model.PriceSeries{bar(1.0000, 1.0011, 0.9990, 1.0001)})
	if got != model.PatternDoji {
		t.Errorf("got %s, want DOJI", got)
	}
}

func TestMatch_PriorityDojiBeforeHammer(t *testing.T) {
	// Bullish bar with a long lower shadow (the hammer ingredients) whose
	// shadows also satisfy the doji thresholds. The matcher must report
	// DOJI, the earlier pattern in priority order.
	got := Match(model.PriceSeries{bar(1.0, 1.00050, 0.99, 1.00005)})
	if got != model.PatternDoji {
		t.Errorf("got %s, want DOJI by priority", got)
	}
}

func TestMatch_SingleCandlePatterns(t *testing.T) {
	cases := []struct {
		name string
		b    model.Bar
		want model.Pattern
	}{
		{"bullish hammer", bar(1.0000, 1.0014, 0.9975, 1.0010), model.PatternBullishHammer},
		{"inverted hammer", bar(1.0000, 1.0035, 0.9996, 1.0010), model.PatternInvertedHammer},
		{"shooting star", bar(1.0010, 1.0035, 0.9996, 1.0000), model.PatternShootingStar},
		{"plain bar", flat(1.0000, 1.0010), model.PatternNone},
	}
	for _, c := range cases {
		if got := Match(model.PriceSeries{c.b}); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestMatch_BullishEngulfing(t *testing.T) {
	series := model.PriceSeries{
		flat(1.0020, 1.0010), // bearish
		flat(1.0005, 1.0025), // bullish body engulfs the previous body
	}
	if got := Match(series); got != model.PatternBullishEngulfing {
		t.Errorf("got %s, want BULLISH_ENGULFING", got)
	}
}

func TestMatch_BearishEngulfing(t *testing.T) {
	series := model.PriceSeries{
		flat(1.0010, 1.0020),
		flat(1.0025, 1.0005),
	}
	if got := Match(series); got != model.PatternBearishEngulfing {
		t.Errorf("got %s, want BEARISH_ENGULFING", got)
	}
}

func TestMatch_MorningStar(t *testing.T) {
	series := model.PriceSeries{
		flat(1.0100, 1.0000), // long bearish
		flat(0.9990, 1.0000), // small star body (<30% of the first)
		flat(1.0010, 1.0080), // bullish close above the first bar's midpoint
	}
	if got := Match(series); got != model.PatternMorningStar {
		t.Errorf("got %s, want MORNING_STAR", got)
	}
}

func TestMatch_EveningStar(t *testing.T) {
	series := model.PriceSeries{
		flat(1.0000, 1.0100),
		flat(1.0110, 1.0115),
		flat(1.0090, 1.0020),
	}
	if got := Match(series); got != model.PatternEveningStar {
		t.Errorf("got %s, want EVENING_STAR", got)
	}
}

func TestMatch_ThreeWhiteSoldiers(t *testing.T) {
	series := model.PriceSeries{
		flat(1.0010, 1.0000),
		flat(1.0000, 1.0020),
		flat(1.0020, 1.0040),
		flat(1.0040, 1.0060),
	}
	if got := Match(series); got != model.PatternThreeWhiteSoldiers {
		t.Errorf("got %s, want THREE_WHITE_SOLDIERS", got)
	}
}

func TestMatch_SoldiersNeedFourBars(t *testing.T) {
	// The earliest soldier compares against the bar before the window, so
	// three rising bulls alone are not enough.
	series := model.PriceSeries{
		flat(1.0000, 1.0020),
		flat(1.0020, 1.0040),
		flat(1.0040, 1.0060),
	}
	if got := Match(series); got != model.PatternNone {
		t.Errorf("got %s, want NONE with only three bars", got)
	}
}

func TestMatch_ShortSeries(t *testing.T) {
	if got := Match(nil); got != model.PatternNone {
		t.Errorf("empty series: got %s, want NONE", got)
	}
	// A single bar still runs the single-candle checks.
	if got := Match(model.PriceSeries{bar(1.0000, 1.0014, 0.9975, 1.0010)}); got != model.PatternBullishHammer {
		t.Errorf("single bar: got %s, want BULLISH_HAMMER", got)
	}
}
