package model

import (
	"encoding/json"
	"time"
)

// Trend classifies the market direction derived from EMA relationships.
type Trend string

const (
	StrongUptrend   Trend = "STRONG_UPTREND"
	WeakUptrend     Trend = "WEAK_UPTREND"
	StrongDowntrend Trend = "STRONG_DOWNTREND"
	WeakDowntrend   Trend = "WEAK_DOWNTREND"
	RangeBound      Trend = "RANGE_BOUND"
)

// Uptrend reports whether the trend is up, strong or weak.
func (t Trend) Uptrend() bool { return t == StrongUptrend || t == WeakUptrend }

// Downtrend reports whether the trend is down, strong or weak.
func (t Trend) Downtrend() bool { return t == StrongDowntrend || t == WeakDowntrend }

// Position classifies the current price's proximity to the nearest
// support/resistance levels.
type Position string

const (
	AtSupport      Position = "AT_SUPPORT"
	AtResistance   Position = "AT_RESISTANCE"
	NearSupport    Position = "NEAR_SUPPORT"
	NearResistance Position = "NEAR_RESISTANCE"
	Neutral        Position = "NEUTRAL"
)

// Pattern identifies a candlestick pattern on the most recent bars.
type Pattern string

const (
	PatternNone               Pattern = "NONE"
	PatternDoji               Pattern = "DOJI"
	PatternBullishHammer      Pattern = "BULLISH_HAMMER"
	PatternInvertedHammer     Pattern = "INVERTED_HAMMER"
	PatternShootingStar       Pattern = "SHOOTING_STAR"
	PatternBullishEngulfing   Pattern = "BULLISH_ENGULFING"
	PatternBearishEngulfing   Pattern = "BEARISH_ENGULFING"
	PatternMorningStar        Pattern = "MORNING_STAR"
	PatternEveningStar        Pattern = "EVENING_STAR"
	PatternThreeWhiteSoldiers Pattern = "THREE_WHITE_SOLDIERS"
)

// Bullish reports whether the pattern favors buying.
func (p Pattern) Bullish() bool {
	switch p {
	case PatternBullishHammer, PatternBullishEngulfing, PatternMorningStar,
		PatternThreeWhiteSoldiers, PatternInvertedHammer:
		return true
	}
	return false
}

// Bearish reports whether the pattern favors selling.
func (p Pattern) Bearish() bool {
	switch p {
	case PatternShootingStar, PatternBearishEngulfing, PatternEveningStar:
		return true
	}
	return false
}

// Action is the discrete trading signal.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Signal is an immutable snapshot of one analysis cycle for a pair.
// This is the shape the chart and notification collaborators consume.
type Signal struct {
	Pair       string    `json:"pair"`
	Price      float64   `json:"price"`
	Trend      Trend     `json:"trend"`
	Position   Position  `json:"position"`
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
	Pattern    Pattern   `json:"candle_pattern"`
	RSI        float64   `json:"rsi"`
	Action     Action    `json:"signal"`
	Score      float64   `json:"score"`
	Reasons    []string  `json:"reasons"`
	Timestamp  time.Time `json:"timestamp"`
}

// JSON returns the JSON-encoded signal (ignoring errors for hot-path usage).
func (s *Signal) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}
