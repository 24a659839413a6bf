// Package bot runs the analysis loop: fetch each pair's series, analyze,
// fan the signal out to the history, gateway, Redis, notifier, and virtual
// trader, then sleep until the next cycle.
package bot

import (
	"context"
	"log"
	"time"

	"forex-signalsv1/internal/journal"
	"forex-signalsv1/internal/markethours"
	"forex-signalsv1/internal/metrics"
	"forex-signalsv1/internal/model"
	"forex-signalsv1/internal/notification"
	"forex-signalsv1/internal/provider"
	"forex-signalsv1/internal/ringbuf"
	"forex-signalsv1/internal/strategy"
)

// Broadcaster pushes a signal to connected dashboard clients.
type Broadcaster interface {
	Broadcast(sig model.Signal)
}

// Publisher writes a signal to external storage (Redis).
type Publisher interface {
	PublishSignal(ctx context.Context, sig model.Signal) error
}

// Config holds the bot's runtime parameters.
type Config struct {
	Pairs         []string
	Timeframe     string
	Periods       int
	CheckInterval time.Duration
}

// Bot owns one analysis loop over the configured pairs. Every collaborator
// except the provider and analyzer is optional; a nil one is skipped.
type Bot struct {
	cfg      Config
	provider provider.Provider
	analyzer *strategy.Analyzer

	history   *ringbuf.History
	hub       Broadcaster
	publisher Publisher
	notifier  notification.Notifier
	trader    *journal.VirtualTrader
	metrics   *metrics.Metrics
	health    *metrics.HealthStatus

	// lastSignals remembers each pair's previous action for notification
	// dedup.
	lastSignals map[string]model.Action
}

// New creates a Bot. provider and analyzer are required.
func New(cfg Config, p provider.Provider, a *strategy.Analyzer) *Bot {
	return &Bot{
		cfg:         cfg,
		provider:    p,
		analyzer:    a,
		lastSignals: make(map[string]model.Action),
	}
}

// WithHistory attaches the in-memory signal history.
func (b *Bot) WithHistory(h *ringbuf.History) *Bot { b.history = h; return b }

// WithBroadcaster attaches the dashboard hub.
func (b *Bot) WithBroadcaster(hub Broadcaster) *Bot { b.hub = hub; return b }

// WithPublisher attaches the Redis signal publisher.
func (b *Bot) WithPublisher(p Publisher) *Bot { b.publisher = p; return b }

// WithNotifier attaches the notification backend.
func (b *Bot) WithNotifier(n notification.Notifier) *Bot { b.notifier = n; return b }

// WithTrader attaches the virtual trader.
func (b *Bot) WithTrader(t *journal.VirtualTrader) *Bot { b.trader = t; return b }

// WithMetrics attaches Prometheus metrics and health tracking.
func (b *Bot) WithMetrics(m *metrics.Metrics, h *metrics.HealthStatus) *Bot {
	b.metrics = m
	b.health = h
	return b
}

// Run executes analysis cycles every CheckInterval until ctx is cancelled.
// Cycles are skipped while the forex market is closed.
func (b *Bot) Run(ctx context.Context) {
	log.Printf("[bot] started: %d pairs, interval %s", len(b.cfg.Pairs), b.cfg.CheckInterval)

	ticker := time.NewTicker(b.cfg.CheckInterval)
	defer ticker.Stop()

	b.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.cycle(ctx)
		}
	}
}

// RunOnce executes a single analysis cycle regardless of market hours.
func (b *Bot) RunOnce(ctx context.Context) []model.Signal {
	return b.analyzeAll(ctx)
}

func (b *Bot) cycle(ctx context.Context) {
	now := time.Now()
	open := markethours.IsMarketOpen(now)
	if b.metrics != nil {
		if open {
			b.metrics.MarketState.Set(1)
		} else {
			b.metrics.MarketState.Set(0)
		}
	}
	if !open {
		log.Printf("[bot] %s, skipping cycle", markethours.StatusString(now))
		return
	}

	b.analyzeAll(ctx)

	if b.metrics != nil {
		b.metrics.CyclesTotal.Inc()
	}
	if b.health != nil {
		b.health.SetLastCycleTime(time.Now())
	}
}

// analyzeAll processes every configured pair. Per-pair errors are logged
// and never abort the cycle.
func (b *Bot) analyzeAll(ctx context.Context) []model.Signal {
	results := make([]model.Signal, 0, len(b.cfg.Pairs))
	for _, pair := range b.cfg.Pairs {
		sig, err := b.processPair(ctx, pair)
		if err != nil {
			log.Printf("[bot] %s: %v", pair, err)
			continue
		}
		results = append(results, sig)
	}
	b.updateJournalMetrics()
	return results
}

func (b *Bot) processPair(ctx context.Context, pair string) (model.Signal, error) {
	series, err := b.provider.Series(ctx, pair, b.cfg.Timeframe, b.cfg.Periods)
	if err != nil {
		if b.metrics != nil {
			b.metrics.ProviderFailures.WithLabelValues(pair).Inc()
		}
		return model.Signal{}, err
	}

	start := time.Now()
	sig, err := b.analyzer.Analyze(pair, series)
	if err != nil {
		return model.Signal{}, err
	}
	if b.metrics != nil {
		b.metrics.AnalyzeDur.Observe(time.Since(start).Seconds())
		b.metrics.SignalsTotal.WithLabelValues(pair, string(sig.Action)).Inc()
	}
	log.Printf("[bot] %s: %s (%.1f points)", pair, sig.Action, sig.Score)

	if b.history != nil {
		b.history.Push(sig)
	}
	if b.hub != nil {
		b.hub.Broadcast(sig)
	}
	if b.publisher != nil {
		if err := b.publisher.PublishSignal(ctx, sig); err != nil {
			log.Printf("[bot] %s: publish: %v", pair, err)
			if b.metrics != nil {
				b.metrics.RedisPublishErrors.Inc()
			}
		}
	}

	if b.notifier != nil && b.shouldNotify(pair, sig.Action) {
		if err := b.notifier.SendSignal(ctx, sig); err != nil {
			log.Printf("[bot] %s: notify: %v", pair, err)
			if b.metrics != nil {
				b.metrics.NotificationErrors.Inc()
			}
		} else if b.metrics != nil {
			b.metrics.NotificationsTotal.Inc()
		}
	}

	if b.trader != nil {
		closedBefore := len(b.trader.Journal().ClosedTrades())
		id, err := b.trader.OnSignal(sig)
		if reversed := len(b.trader.Journal().ClosedTrades()) - closedBefore; reversed > 0 && b.metrics != nil {
			b.metrics.TradesClosedTotal.WithLabelValues(journal.ReasonReversed).Add(float64(reversed))
		}
		if err != nil {
			log.Printf("[bot] %s: trade: %v", pair, err)
		} else if id != "" {
			log.Printf("[bot] %s: virtual trade opened: %s", pair, id)
			if b.metrics != nil {
				b.metrics.TradesOpenedTotal.Inc()
			}
		}
	}

	b.lastSignals[pair] = sig.Action
	return sig, nil
}

// shouldNotify applies the notification dedup policy: BUY and SELL always
// notify; HOLD notifies only when the pair just flipped from BUY or SELL.
func (b *Bot) shouldNotify(pair string, action model.Action) bool {
	if action == model.ActionBuy || action == model.ActionSell {
		return true
	}
	last := b.lastSignals[pair]
	return last == model.ActionBuy || last == model.ActionSell
}

func (b *Bot) updateJournalMetrics() {
	if b.trader == nil || b.metrics == nil {
		return
	}
	stats := b.trader.Journal().Stats()
	b.metrics.OpenTrades.Set(float64(stats.OpenTrades))
	b.metrics.Balance.Set(stats.Balance)
}
