package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Analysis
	Pairs         string // comma-separated, e.g. "EURUSD,GBPUSD"
	Timeframe     string
	Periods       int
	CheckInterval time.Duration
	EMAFast       int
	EMASlow       int
	EMATrend      int
	RSIPeriod     int
	RSIOversold   float64
	RSIOverbought float64
	SRWindow      int
	NumLevels     int

	// Strategy toggles
	StrategyTrend   bool
	StrategySR      bool
	StrategyCandles bool
	StrategyRSI     bool

	// Virtual trading
	VirtualTrading bool
	InitialBalance float64
	LotSize        float64

	// Infrastructure
	RedisAddr     string
	RedisPassword string
	SQLitePath    string
	MetricsAddr   string
	GatewayAddr   string

	// Telegram
	TelegramToken  string
	TelegramChatID string

	// Provider: "frankfurter" or "sample"
	Provider string

	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Pairs:         getEnv("PAIRS", "EURUSD,GBPUSD,USDJPY,AUDUSD,USDCAD,EURGBP,USDCHF"),
		Timeframe:     getEnv("TIMEFRAME", "1h"),
		Periods:       getEnvInt("PERIODS", 250),
		CheckInterval: time.Duration(getEnvInt("CHECK_INTERVAL", 300)) * time.Second,
		EMAFast:       getEnvInt("EMA_FAST", 20),
		EMASlow:       getEnvInt("EMA_SLOW", 50),
		EMATrend:      getEnvInt("EMA_TREND", 200),
		RSIPeriod:     getEnvInt("RSI_PERIOD", 14),
		RSIOversold:   getEnvFloat("RSI_OVERSOLD", 35),
		RSIOverbought: getEnvFloat("RSI_OVERBOUGHT", 65),
		SRWindow:      getEnvInt("SR_WINDOW", 10),
		NumLevels:     getEnvInt("SR_NUM_LEVELS", 5),

		StrategyTrend:   getEnvBool("STRATEGY_TREND", true),
		StrategySR:      getEnvBool("STRATEGY_SUPPORT_RESISTANCE", true),
		StrategyCandles: getEnvBool("STRATEGY_CANDLES", true),
		StrategyRSI:     getEnvBool("STRATEGY_RSI", true),

		VirtualTrading: getEnvBool("VIRTUAL_TRADING", true),
		InitialBalance: getEnvFloat("INITIAL_BALANCE", 10000),
		LotSize:        getEnvFloat("LOT_SIZE", 0.01),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/journal.db"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
		GatewayAddr:   getEnv("GATEWAY_ADDR", ":8080"),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),

		Provider: getEnv("PROVIDER", "frankfurter"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ParsePairs splits the Pairs string into normalized pair symbols.
// "EUR/USD" and "EURUSD" both become "EURUSD".
func (c *Config) ParsePairs() []string {
	parts := strings.Split(c.Pairs, ",")
	pairs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(p), "/", ""))
		if p == "" {
			continue
		}
		if len(p) != 6 {
			log.Printf("[config] skipping invalid pair: %q", p)
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid bool for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
