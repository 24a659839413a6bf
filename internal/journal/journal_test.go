package journal

import (
	"errors"
	"math"
	"testing"

	"forex-signalsv1/internal/model"
)

func newTestJournal(t *testing.T, balance float64) *Journal {
	t.Helper()
	j, err := New(NewMemoryStore(), balance)
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}
	return j
}

func TestOpenClose_RoundTrip(t *testing.T) {
	j := newTestJournal(t, 10000)

	id, err := j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if id != "TR0001" {
		t.Errorf("id: got %s, want TR0001", id)
	}

	trade, err := j.Close(id, 1.1050, "TP")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if trade.Pips != 50.0 {
		t.Errorf("pips: got %.1f, want 50.0", trade.Pips)
	}
	if trade.PnL != 5.00 {
		t.Errorf("pnl: got %.2f, want 5.00", trade.PnL)
	}
	if got := j.Balance(); math.Abs(got-10005.00) > 1e-9 {
		t.Errorf("balance: got %.2f, want 10005.00", got)
	}
	if trade.Status != model.StatusClosed || trade.ExitReason != "TP" {
		t.Errorf("trade not closed properly: %+v", trade)
	}
}

func TestClose_SellDirection(t *testing.T) {
	j := newTestJournal(t, 10000)

	id, _ := j.Open("EURUSD", model.DirectionSell, 1.1050, 0.01)
	trade, err := j.Close(id, 1.1000, "TP")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if trade.Pips != 50.0 {
		t.Errorf("sell pips: got %.1f, want 50.0", trade.Pips)
	}
}

func TestClose_Idempotence(t *testing.T) {
	j := newTestJournal(t, 10000)

	id, _ := j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	if _, err := j.Close(id, 1.1050, "TP"); err != nil {
		t.Fatalf("first close: %v", err)
	}
	balance := j.Balance()

	if _, err := j.Close(id, 1.2000, "TP"); !errors.Is(err, ErrTradeNotFound) {
		t.Fatalf("second close: got %v, want ErrTradeNotFound", err)
	}
	if got := j.Balance(); got != balance {
		t.Errorf("balance changed on failed close: %.2f != %.2f", got, balance)
	}
}

func TestClose_UnknownID(t *testing.T) {
	j := newTestJournal(t, 10000)
	if _, err := j.Close("TR9999", 1.0, "TP"); !errors.Is(err, ErrTradeNotFound) {
		t.Fatalf("got %v, want ErrTradeNotFound", err)
	}
}

func TestOpen_DuplicateSameDirection(t *testing.T) {
	j := newTestJournal(t, 10000)

	if _, err := j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := j.Open("EURUSD", model.DirectionBuy, 1.1010, 0.01); !errors.Is(err, ErrTradeConflict) {
		t.Fatalf("duplicate open: got %v, want ErrTradeConflict", err)
	}

	// Opposite direction on the same pair is the trader's problem, not
	// the journal's — it must be allowed here.
	if _, err := j.Open("EURUSD", model.DirectionSell, 1.1010, 0.01); err != nil {
		t.Fatalf("opposite open: %v", err)
	}
}

func TestIDs_StrictlyIncreasing(t *testing.T) {
	j := newTestJournal(t, 10000)

	id1, _ := j.Open("EURUSD", model.DirectionBuy, 1.1, 0.01)
	id2, _ := j.Open("GBPUSD", model.DirectionBuy, 1.3, 0.01)
	if id1 != "TR0001" || id2 != "TR0002" {
		t.Errorf("ids: got %s, %s", id1, id2)
	}

	// Reset preserves the counter so IDs are never reused.
	if err := j.Reset(5000); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := j.Balance(); got != 5000 {
		t.Errorf("balance after reset: got %.2f, want 5000", got)
	}
	id3, _ := j.Open("EURUSD", model.DirectionBuy, 1.1, 0.01)
	if id3 != "TR0003" {
		t.Errorf("id after reset: got %s, want TR0003", id3)
	}
}

func TestBalanceConservation(t *testing.T) {
	j := newTestJournal(t, 10000)

	id1, _ := j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	id2, _ := j.Open("GBPUSD", model.DirectionSell, 1.3000, 0.02)
	j.Close(id1, 1.1030, "TP") // +30 pips * 0.01 * 10 = +3.00
	j.Close(id2, 1.3050, "SL") // -50 pips * 0.02 * 10 = -10.00

	var sum float64
	for _, tr := range j.ClosedTrades() {
		sum += tr.PnL
	}
	if got := j.Balance(); math.Abs(got-(10000+sum)) > 1e-9 {
		t.Errorf("balance %.2f != initial + closed pnl %.2f", got, 10000+sum)
	}
}

func TestCloseAllAtMarket(t *testing.T) {
	j := newTestJournal(t, 10000)

	j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	j.Open("GBPUSD", model.DirectionSell, 1.3000, 0.01)
	j.Open("USDJPY", model.DirectionBuy, 155.00, 0.01)

	closed := j.CloseAllAtMarket(map[string]float64{
		"EURUSD": 1.1010,
		"GBPUSD": 1.2990,
	})
	if len(closed) != 2 {
		t.Fatalf("closed: got %v, want 2 trades", closed)
	}
	if open := j.OpenTrades(); len(open) != 1 || open[0].Pair != "USDJPY" {
		t.Errorf("open after market close: %+v", open)
	}
	for _, tr := range j.ClosedTrades() {
		if tr.ExitReason != ReasonMarketClose {
			t.Errorf("exit reason: got %s", tr.ExitReason)
		}
	}
}

func TestStats(t *testing.T) {
	j := newTestJournal(t, 10000)

	id1, _ := j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	id2, _ := j.Open("GBPUSD", model.DirectionBuy, 1.3000, 0.01)
	id3, _ := j.Open("USDJPY", model.DirectionSell, 155.00, 0.01)
	j.Close(id1, 1.1050, "TP") // +5.00
	j.Close(id2, 1.2950, "SL") // -5.00

	s := j.Stats()
	if s.TotalTrades != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Errorf("counts: %+v", s)
	}
	if s.WinRate != 50.0 {
		t.Errorf("win rate: got %.1f, want 50.0", s.WinRate)
	}
	if s.OpenTrades != 1 {
		t.Errorf("open trades: got %d, want 1", s.OpenTrades)
	}
	if s.BestTrade == nil || s.BestTrade.ID != id1 {
		t.Errorf("best trade: %+v", s.BestTrade)
	}
	if s.WorstTrade == nil || s.WorstTrade.ID != id2 {
		t.Errorf("worst trade: %+v", s.WorstTrade)
	}
	_ = id3
}

func TestStats_Empty(t *testing.T) {
	j := newTestJournal(t, 10000)
	s := j.Stats()
	if s.TotalTrades != 0 || s.WinRate != 0 || s.Balance != 10000 {
		t.Errorf("empty stats: %+v", s)
	}
	if s.BestTrade != nil || s.WorstTrade != nil {
		t.Errorf("expected no best/worst on empty journal")
	}
}

func TestUnrealizedPnL(t *testing.T) {
	j := newTestJournal(t, 10000)

	j.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	j.Open("GBPUSD", model.DirectionSell, 1.3000, 0.01)

	got := j.UnrealizedPnL(map[string]float64{
		"EURUSD": 1.1020, // +20 pips → +2.00
		"GBPUSD": 1.3010, // -10 pips → -1.00
	})
	if math.Abs(got-1.00) > 1e-9 {
		t.Errorf("unrealized: got %.2f, want 1.00", got)
	}

	if got := j.Balance(); got != 10000 {
		t.Errorf("balance moved on unrealized computation: %.2f", got)
	}
}

func TestNew_ResumesPersistedState(t *testing.T) {
	store := NewMemoryStore()

	j1, _ := New(store, 10000)
	id, _ := j1.Open("EURUSD", model.DirectionBuy, 1.1000, 0.01)
	j1.Close(id, 1.1050, "TP")

	j2, err := New(store, 10000)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := j2.Balance(); math.Abs(got-10005.00) > 1e-9 {
		t.Errorf("reloaded balance: got %.2f, want 10005.00", got)
	}
	next, _ := j2.Open("EURUSD", model.DirectionBuy, 1.1, 0.01)
	if next != "TR0002" {
		t.Errorf("reloaded counter: got %s, want TR0002", next)
	}
}
