package journal

import (
	"errors"
	"fmt"

	"forex-signalsv1/internal/model"
)

// VirtualTrader applies the reversal policy on top of the Journal: at most
// one open position per pair. An opposite-direction signal closes the
// existing trade with reason REVERSED before opening the new one.
type VirtualTrader struct {
	journal *Journal
	lotSize float64
}

// NewVirtualTrader creates a trader that opens lotSize lots per signal.
func NewVirtualTrader(j *Journal, lotSize float64) *VirtualTrader {
	return &VirtualTrader{journal: j, lotSize: lotSize}
}

// Journal exposes the underlying journal for reporting.
func (v *VirtualTrader) Journal() *Journal { return v.journal }

// OnSignal handles one scored signal. HOLD is a no-op. Returns the opened
// trade ID, or "" when nothing was opened (HOLD, or a same-direction trade
// is already running).
func (v *VirtualTrader) OnSignal(sig model.Signal) (string, error) {
	if sig.Action == model.ActionHold {
		return "", nil
	}

	direction := model.DirectionBuy
	opposite := model.DirectionSell
	if sig.Action == model.ActionSell {
		direction, opposite = opposite, direction
	}

	for _, t := range v.journal.OpenTrades() {
		if t.Pair != sig.Pair || t.Direction != opposite {
			continue
		}
		if _, err := v.journal.Close(t.ID, sig.Price, ReasonReversed); err != nil {
			return "", fmt.Errorf("reverse %s: %w", t.ID, err)
		}
	}

	id, err := v.journal.Open(sig.Pair, direction, sig.Price, v.lotSize)
	if errors.Is(err, ErrTradeConflict) {
		// Same-direction trade already open — keep riding it.
		return "", nil
	}
	return id, err
}
