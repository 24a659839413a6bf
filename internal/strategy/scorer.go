// Package strategy combines the indicator outputs into a discrete trading
// signal: a weighted score over trend, price position, candle pattern, and
// RSI momentum, mapped to BUY/SELL/HOLD.
package strategy

import (
	"log"

	"forex-signalsv1/internal/model"
)

// Strategies enables or disables the individual scoring rules.
// A disabled rule contributes nothing and adds no reason.
type Strategies struct {
	Trend             bool
	SupportResistance bool
	Candles           bool
	RSI               bool
}

// DefaultStrategies returns all rules enabled.
func DefaultStrategies() Strategies {
	return Strategies{Trend: true, SupportResistance: true, Candles: true, RSI: true}
}

// Validate warns about configurations that can never produce a signal.
func (s Strategies) Validate() {
	if !s.Trend && !s.SupportResistance && !s.Candles && !s.RSI {
		log.Println("[strategy] WARNING: all scoring rules disabled, every signal will be HOLD")
	}
}

// Signal thresholds on the combined score.
const (
	buyThreshold  = 2.0
	sellThreshold = -2.0
)

// Default RSI momentum thresholds.
const (
	DefaultOversold   = 35.0
	DefaultOverbought = 65.0
)

// Scorer maps one analysis cycle's inputs to an action, a score, and the
// ordered list of contributing reasons.
type Scorer struct {
	Strategies Strategies
	Oversold   float64 // RSI below this scores bullish
	Overbought float64 // RSI above this scores bearish
}

// NewScorer creates a Scorer with the default RSI thresholds.
func NewScorer(s Strategies) Scorer {
	s.Validate()
	return Scorer{Strategies: s, Oversold: DefaultOversold, Overbought: DefaultOverbought}
}

// Score evaluates the rules in fixed order: trend, price position, candle
// pattern, RSI. Supports half-point contributions; score >= 2 is a BUY,
// score <= -2 a SELL, anything between a HOLD.
//
// NEAR_RESISTANCE carries no score adjustment. That asymmetry (near
// support is worth +0.5 but near resistance is free) is longstanding
// scorer behavior that downstream stats are calibrated against.
func (sc Scorer) Score(trend model.Trend, position model.Position, pattern model.Pattern, rsi float64) (model.Action, float64, []string) {
	var score float64
	var reasons []string

	if sc.Strategies.Trend {
		switch {
		case trend.Uptrend():
			score++
			reasons = append(reasons, "Uptrend")
		case trend.Downtrend():
			score--
			reasons = append(reasons, "Downtrend")
		}
	}

	if sc.Strategies.SupportResistance {
		switch position {
		case model.AtSupport:
			score++
			reasons = append(reasons, "At support")
		case model.NearSupport:
			score += 0.5
			reasons = append(reasons, "Near support")
		case model.AtResistance:
			score--
			reasons = append(reasons, "At resistance")
		}
	}

	if sc.Strategies.Candles {
		switch {
		case pattern.Bullish():
			score++
			reasons = append(reasons, string(pattern))
		case pattern.Bearish():
			score--
			reasons = append(reasons, string(pattern))
		}
	}

	if sc.Strategies.RSI {
		switch {
		case rsi < sc.Oversold:
			score += 0.5
			reasons = append(reasons, "RSI oversold")
		case rsi > sc.Overbought:
			score -= 0.5
			reasons = append(reasons, "RSI overbought")
		}
	}

	switch {
	case score >= buyThreshold:
		return model.ActionBuy, score, reasons
	case score <= sellThreshold:
		return model.ActionSell, score, reasons
	default:
		return model.ActionHold, score, reasons
	}
}
