// Package redis publishes scored signals to Redis for downstream consumers:
// a capped stream per pair for history, a latest-value key with TTL, and a
// pubsub channel for live subscribers.
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"forex-signalsv1/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const (
	signalStreamMaxLen = 1000
	defaultLatestTTL   = 30 * time.Minute
)

// WriterConfig configures the Redis writer.
type WriterConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// Writer writes signals to Redis.
type Writer struct {
	client *goredis.Client
}

// Client returns the underlying Redis client for health checks.
func (w *Writer) Client() *goredis.Client { return w.client }

// New creates a new Redis Writer and pings the server.
func New(cfg WriterConfig) (*Writer, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Writer{client: client}, nil
}

// PublishSignal performs the pipelined writes for one signal:
// XADD to the pair's stream, SET latest with TTL, PUBLISH to pubsub.
func (w *Writer) PublishSignal(ctx context.Context, sig model.Signal) error {
	jsonData := string(sig.JSON())
	streamKey := "signals:" + sig.Pair
	latestKey := "signal:latest:" + sig.Pair
	pubsubCh := "pub:signal:" + sig.Pair

	pipe := w.client.Pipeline()

	pipe.XAdd(ctx, &goredis.XAddArgs{
		Stream: streamKey,
		MaxLen: signalStreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{"data": jsonData},
	})
	pipe.Set(ctx, latestKey, jsonData, defaultLatestTTL)
	pipe.Publish(ctx, pubsubCh, jsonData)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis signal pipeline for %s: %w", sig.Pair, err)
	}
	return nil
}

// LatestSignal reads the latest stored signal JSON for a pair.
// Returns nil with no error when the key does not exist or expired.
func (w *Writer) LatestSignal(ctx context.Context, pair string) ([]byte, error) {
	data, err := w.client.Get(ctx, "signal:latest:"+pair).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET latest %s: %w", pair, err)
	}
	return data, nil
}

// Close closes the Redis client.
func (w *Writer) Close() error {
	return w.client.Close()
}
