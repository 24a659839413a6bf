package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"forex-signalsv1/config"
	"forex-signalsv1/internal/bot"
	"forex-signalsv1/internal/gateway"
	"forex-signalsv1/internal/journal"
	"forex-signalsv1/internal/logger"
	"forex-signalsv1/internal/metrics"
	"forex-signalsv1/internal/notification"
	"forex-signalsv1/internal/provider"
	"forex-signalsv1/internal/ringbuf"
	redisstore "forex-signalsv1/internal/store/redis"
	sqlitestore "forex-signalsv1/internal/store/sqlite"
	"forex-signalsv1/internal/strategy"
)

func main() {
	var (
		statusFlag  = flag.Bool("status", false, "print journal status and exit")
		historyFlag = flag.Bool("history", false, "print closed trade history and exit")
		resetFlag   = flag.Float64("reset", 0, "reset the journal to this balance and exit")
		onceFlag    = flag.Bool("once", false, "run a single analysis cycle and exit")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	cfg := config.Load()
	logger.Init("forex-signals", logger.ParseLevel(cfg.LogLevel))

	// ---- Journal store (SQLite) ----
	os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755)
	store, err := sqlitestore.New(sqlitestore.Config{DBPath: cfg.SQLitePath})
	if err != nil {
		log.Fatalf("[bot] sqlite init failed: %v", err)
	}
	defer store.Close()

	jnl, err := journal.New(store, cfg.InitialBalance)
	if err != nil {
		log.Fatalf("[bot] journal init failed: %v", err)
	}

	// ---- One-shot journal commands ----
	switch {
	case *resetFlag > 0:
		if err := jnl.Reset(*resetFlag); err != nil {
			log.Fatalf("[bot] reset failed: %v", err)
		}
		fmt.Printf("journal reset, balance $%.2f\n", *resetFlag)
		return
	case *statusFlag:
		printStatus(jnl)
		return
	case *historyFlag:
		printHistory(jnl, 20)
		return
	}

	pairs := cfg.ParsePairs()
	if len(pairs) == 0 {
		log.Fatal("[bot] no valid pairs configured")
	}
	slog.Info("starting", "pairs", pairs, "interval", cfg.CheckInterval.String(),
		"virtual_trading", cfg.VirtualTrading, "provider", cfg.Provider)

	// ---- Analyzer ----
	analyzer := strategy.NewAnalyzer(strategy.AnalyzerConfig{
		EMASlow:   cfg.EMASlow,
		EMATrend:  cfg.EMATrend,
		RSIPeriod: cfg.RSIPeriod,
		SRWindow:  cfg.SRWindow,
		NumLevels: cfg.NumLevels,
		Scorer: strategy.Scorer{
			Strategies: strategy.Strategies{
				Trend:             cfg.StrategyTrend,
				SupportResistance: cfg.StrategySR,
				Candles:           cfg.StrategyCandles,
				RSI:               cfg.StrategyRSI,
			},
			Oversold:   cfg.RSIOversold,
			Overbought: cfg.RSIOverbought,
		},
	})

	// ---- Rate provider ----
	var prov provider.Provider
	if cfg.Provider == "sample" {
		prov = provider.NewSample()
	} else {
		prov = provider.NewFrankfurter("")
	}

	b := bot.New(bot.Config{
		Pairs:         pairs,
		Timeframe:     cfg.Timeframe,
		Periods:       cfg.Periods,
		CheckInterval: cfg.CheckInterval,
	}, prov, analyzer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- One-shot analysis ----
	if *onceFlag {
		if cfg.VirtualTrading {
			b.WithTrader(journal.NewVirtualTrader(jnl, cfg.LotSize))
		}
		b.WithNotifier(notification.NewLogNotifier())
		for _, sig := range b.RunOnce(ctx) {
			fmt.Printf("%s\n", sig.JSON())
		}
		return
	}

	// ---- Metrics & health ----
	prom := metrics.NewMetrics()
	health := metrics.NewHealthStatus()
	metricsSrv := metrics.NewServer(cfg.MetricsAddr, health)
	metricsSrv.Start()
	b.WithMetrics(prom, health)

	// ---- Redis publisher (optional) ----
	var redisWriter *redisstore.Writer
	if cfg.RedisAddr != "" {
		redisWriter, err = redisstore.New(redisstore.WriterConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			log.Printf("[bot] WARNING: redis init failed: %v (continuing without redis)", err)
		} else {
			b.WithPublisher(redisWriter)
			defer redisWriter.Close()
		}
	}
	if redisWriter != nil {
		health.StartLivenessChecker(ctx, redisWriter.Client(), store.DB(), 10*time.Second)
	} else {
		health.StartLivenessChecker(ctx, nil, store.DB(), 10*time.Second)
	}

	// ---- History + dashboard gateway ----
	history := ringbuf.NewHistory(256)
	hub := gateway.NewHub()
	b.WithHistory(history).WithBroadcaster(hub)

	var gatewayJournal *journal.Journal
	if cfg.VirtualTrading {
		gatewayJournal = jnl
	}
	gwSrv := gateway.NewServer(cfg.GatewayAddr, hub, history, gatewayJournal)
	gwSrv.Start()

	// ---- Notifier ----
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		b.WithNotifier(notification.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID))
	} else {
		log.Println("[bot] telegram not configured, logging signals instead")
		b.WithNotifier(notification.NewLogNotifier())
	}

	// ---- Virtual trader ----
	if cfg.VirtualTrading {
		b.WithTrader(journal.NewVirtualTrader(jnl, cfg.LotSize))
		log.Printf("[bot] virtual trading enabled, balance $%.2f", jnl.Balance())
	}

	go b.Run(ctx)

	// ---- Wait for shutdown signal ----
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[bot] shutdown signal received, cleaning up...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	gwSrv.Stop(shutdownCtx)
	metricsSrv.Stop(shutdownCtx)

	log.Println("[bot] shutdown complete.")
}

func printStatus(jnl *journal.Journal) {
	s := jnl.Stats()
	fmt.Printf("Balance:      $%.2f\n", s.Balance)
	fmt.Printf("Closed:       %d (W %d / L %d, %.1f%% win rate)\n", s.TotalTrades, s.Wins, s.Losses, s.WinRate)
	fmt.Printf("Total P&L:    $%.2f\n", s.TotalPnL)
	fmt.Printf("Open trades:  %d\n", s.OpenTrades)
	if s.BestTrade != nil {
		fmt.Printf("Best trade:   %s %+.2f\n", s.BestTrade.ID, s.BestTrade.PnL)
	}
	if s.WorstTrade != nil {
		fmt.Printf("Worst trade:  %s %+.2f\n", s.WorstTrade.ID, s.WorstTrade.PnL)
	}
	for _, t := range jnl.OpenTrades() {
		fmt.Printf("  OPEN %s %s %s @ %.5f (%.2f lots)\n", t.ID, t.Pair, t.Direction, t.EntryPrice, t.LotSize)
	}
}

func printHistory(jnl *journal.Journal, limit int) {
	closed := jnl.ClosedTrades()
	if len(closed) > limit {
		closed = closed[len(closed)-limit:]
	}
	if len(closed) == 0 {
		fmt.Println("no closed trades")
		return
	}
	for _, t := range closed {
		fmt.Printf("%s %s %s @ %.5f → %.5f  %+.1f pips  $%+.2f  [%s]\n",
			t.ID, t.Pair, t.Direction, t.EntryPrice, t.ExitPrice, t.Pips, t.PnL, t.ExitReason)
	}
}
