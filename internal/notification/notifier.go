// Package notification delivers scored signals to external channels
// (Telegram, log output) for trading events.
package notification

import (
	"context"
	"fmt"
	"log"
	"strings"

	"forex-signalsv1/internal/model"
)

// Notifier is the interface for all notification backends.
type Notifier interface {
	// SendSignal delivers one scored signal. Returns error if delivery
	// fails.
	SendSignal(ctx context.Context, sig model.Signal) error
}

// LogNotifier logs signals instead of sending them (useful for development
// and runs without Telegram credentials).
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendSignal(ctx context.Context, sig model.Signal) error {
	log.Printf("[notify] %s %s @ %.5f (trend=%s pattern=%s rsi=%.1f score=%.1f)",
		sig.Pair, sig.Action, sig.Price, sig.Trend, sig.Pattern, sig.RSI, sig.Score)
	return nil
}

// FormatSignal renders the signal message body sent to chat channels.
func FormatSignal(sig model.Signal) string {
	emoji := "🟡"
	switch sig.Action {
	case model.ActionBuy:
		emoji = "🟢"
	case model.ActionSell:
		emoji = "🔴"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>FOREX SIGNAL</b>\n\n", emoji)
	fmt.Fprintf(&b, "🏷️ <b>%s</b>\n", sig.Pair)
	fmt.Fprintf(&b, "💰 <b>Price:</b> %.5f\n", sig.Price)
	fmt.Fprintf(&b, "🎯 <b>SIGNAL:</b> %s\n\n", sig.Action)
	fmt.Fprintf(&b, "📊 <b>Analysis:</b>\n")
	fmt.Fprintf(&b, "• Trend: %s\n", sig.Trend)
	fmt.Fprintf(&b, "• Candle: %s\n", sig.Pattern)
	fmt.Fprintf(&b, "• RSI: %.1f\n", sig.RSI)
	if len(sig.Reasons) > 0 {
		fmt.Fprintf(&b, "• Reasons: %s\n", strings.Join(sig.Reasons, ", "))
	}
	fmt.Fprintf(&b, "\n⏰ %s", sig.Timestamp.Format("2006-01-02 15:04"))
	return b.String()
}
