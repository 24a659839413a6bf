package strategy

import (
	"errors"
	"math"
	"time"

	"forex-signalsv1/internal/candle"
	"forex-signalsv1/internal/indicator"
	"forex-signalsv1/internal/levels"
	"forex-signalsv1/internal/model"
)

// ErrEmptySeries is returned when the provider handed back no bars.
var ErrEmptySeries = errors.New("strategy: empty price series")

// AnalyzerConfig holds the tunable analysis parameters.
type AnalyzerConfig struct {
	EMASlow   int
	EMATrend  int
	RSIPeriod int
	SRWindow  int
	NumLevels int
	Scorer    Scorer
}

// DefaultAnalyzerConfig returns the standard parameter set.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		EMASlow:   indicator.DefaultSlowPeriod,
		EMATrend:  indicator.DefaultTrendPeriod,
		RSIPeriod: 14,
		SRWindow:  levels.DefaultWindow,
		NumLevels: levels.DefaultNumLevels,
		Scorer:    NewScorer(DefaultStrategies()),
	}
}

// Analyzer runs the full per-pair analysis: trend, support/resistance,
// candle pattern, RSI, and the combined signal. All computation is pure
// and in-memory; fetching the series is the caller's job.
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer creates an Analyzer with the given parameters.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze produces one immutable signal snapshot for the pair.
func (a *Analyzer) Analyze(pair string, series model.PriceSeries) (model.Signal, error) {
	if len(series) == 0 {
		return model.Signal{}, ErrEmptySeries
	}

	closes := series.Closes()
	price := closes[len(closes)-1]

	trend := indicator.ClassifyTrend(closes, a.cfg.EMASlow, a.cfg.EMATrend)
	lv := levels.Find(closes, a.cfg.SRWindow, a.cfg.NumLevels)
	position := lv.Position(price)
	pattern := candle.Match(series)
	rsi := indicator.RSI(closes, a.cfg.RSIPeriod)

	action, score, reasons := a.cfg.Scorer.Score(trend, position, pattern, rsi)

	return model.Signal{
		Pair:       pair,
		Price:      price,
		Trend:      trend,
		Position:   position,
		Support:    lv.Support,
		Resistance: lv.Resistance,
		Pattern:    pattern,
		RSI:        math.Round(rsi*10) / 10,
		Action:     action,
		Score:      score,
		Reasons:    reasons,
		Timestamp:  time.Now().UTC(),
	}, nil
}
