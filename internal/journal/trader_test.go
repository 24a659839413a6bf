package journal

import (
	"testing"

	"forex-signalsv1/internal/model"
)

func signal(pair string, action model.Action, price float64) model.Signal {
	return model.Signal{Pair: pair, Action: action, Price: price}
}

func TestOnSignal_HoldIsNoop(t *testing.T) {
	j := newTestJournal(t, 10000)
	v := NewVirtualTrader(j, 0.01)

	id, err := v.OnSignal(signal("EURUSD", model.ActionHold, 1.1))
	if err != nil || id != "" {
		t.Fatalf("hold: id=%q err=%v", id, err)
	}
	if len(j.OpenTrades()) != 0 {
		t.Error("hold opened a trade")
	}
}

func TestOnSignal_OpensBuy(t *testing.T) {
	j := newTestJournal(t, 10000)
	v := NewVirtualTrader(j, 0.01)

	id, err := v.OnSignal(signal("EURUSD", model.ActionBuy, 1.1000))
	if err != nil || id == "" {
		t.Fatalf("buy: id=%q err=%v", id, err)
	}

	open := j.OpenTrades()
	if len(open) != 1 || open[0].Direction != model.DirectionBuy || open[0].LotSize != 0.01 {
		t.Errorf("open trades: %+v", open)
	}
}

func TestOnSignal_SameDirectionKeepsExisting(t *testing.T) {
	j := newTestJournal(t, 10000)
	v := NewVirtualTrader(j, 0.01)

	first, _ := v.OnSignal(signal("EURUSD", model.ActionBuy, 1.1000))
	second, err := v.OnSignal(signal("EURUSD", model.ActionBuy, 1.1010))
	if err != nil {
		t.Fatalf("repeat buy: %v", err)
	}
	if second != "" {
		t.Errorf("repeat buy opened a second trade: %s", second)
	}
	if open := j.OpenTrades(); len(open) != 1 || open[0].ID != first {
		t.Errorf("open trades: %+v", open)
	}
}

func TestOnSignal_Reversal(t *testing.T) {
	j := newTestJournal(t, 10000)
	v := NewVirtualTrader(j, 0.01)

	buyID, _ := v.OnSignal(signal("EURUSD", model.ActionBuy, 1.1000))
	sellID, err := v.OnSignal(signal("EURUSD", model.ActionSell, 1.1020))
	if err != nil || sellID == "" {
		t.Fatalf("reversal: id=%q err=%v", sellID, err)
	}

	// The BUY must be closed with reason REVERSED at the reversal price,
	// and exactly one trade (the new SELL) stays open on the pair.
	closed, ok := j.Trade(buyID)
	if !ok || closed.Status != model.StatusClosed || closed.ExitReason != ReasonReversed {
		t.Errorf("reversed trade: %+v", closed)
	}
	if closed.ExitPrice != 1.1020 {
		t.Errorf("reversal exit price: got %.4f", closed.ExitPrice)
	}

	open := j.OpenTrades()
	if len(open) != 1 || open[0].ID != sellID || open[0].Direction != model.DirectionSell {
		t.Errorf("open after reversal: %+v", open)
	}
}

func TestOnSignal_ReversalDoesNotTouchOtherPairs(t *testing.T) {
	j := newTestJournal(t, 10000)
	v := NewVirtualTrader(j, 0.01)

	v.OnSignal(signal("GBPUSD", model.ActionBuy, 1.3000))
	v.OnSignal(signal("EURUSD", model.ActionSell, 1.1000))

	if open := j.OpenTrades(); len(open) != 2 {
		t.Errorf("open trades: %+v", open)
	}
}
