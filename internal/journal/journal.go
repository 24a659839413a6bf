// Package journal implements the virtual (paper) trading journal: open and
// closed trades, the running balance, and win/loss statistics.
//
// Trades are append-only: the only mutation is OPEN → CLOSED, exactly once,
// and the balance moves only on close. The invariant
// balance == initial balance + sum of closed P&L holds at all times.
package journal

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"forex-signalsv1/internal/model"
)

var (
	// ErrTradeConflict is returned by Open when an open trade already
	// exists for the same pair and direction.
	ErrTradeConflict = errors.New("journal: open trade already exists")

	// ErrTradeNotFound is returned by Close when no open trade matches
	// the given ID (unknown, or already closed).
	ErrTradeNotFound = errors.New("journal: no open trade with id")
)

// Exit reasons written by the standard policies.
const (
	ReasonReversed    = "REVERSED"
	ReasonMarketClose = "MARKET_CLOSE"
)

// Pip and P&L conversion for 4-decimal pairs: 1 pip = 0.0001 of price,
// worth $10 per full lot ($0.10 for a 0.01 micro lot).
const (
	pipsPerUnit = 10000
	pipValue    = 10
)

// Journal owns the trade history and balance. All methods are safe for
// concurrent use; persistence goes through the Store, which commits a
// close's trade mutation and balance update atomically.
type Journal struct {
	mu      sync.Mutex
	store   Store
	trades  []model.Trade
	balance float64
	nextID  int64
}

// New loads persisted state from store. A fresh store starts with
// initialBalance and an ID counter continuing after any existing history.
func New(store Store, initialBalance float64) (*Journal, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("journal: load state: %w", err)
	}

	j := &Journal{
		store:   store,
		trades:  state.Trades,
		balance: state.Balance,
		nextID:  state.NextID,
	}
	if !state.HasBalance {
		j.balance = initialBalance
	}
	if j.nextID == 0 {
		j.nextID = int64(len(j.trades)) + 1
	}
	return j, nil
}

// Open creates a new OPEN trade and returns its ID, strictly increasing
// and never reused. Fails with ErrTradeConflict if an open trade already
// exists for the same pair and direction; reversing opposite-direction
// trades first is the VirtualTrader's job.
func (j *Journal) Open(pair string, direction model.Direction, entryPrice, lotSize float64) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := range j.trades {
		t := &j.trades[i]
		if t.Open() && t.Pair == pair && t.Direction == direction {
			return "", fmt.Errorf("%w: %s %s (%s)", ErrTradeConflict, pair, direction, t.ID)
		}
	}

	trade := model.Trade{
		ID:         fmt.Sprintf("TR%04d", j.nextID),
		Pair:       pair,
		Direction:  direction,
		EntryPrice: entryPrice,
		EntryTime:  time.Now().UTC(),
		LotSize:    lotSize,
		Status:     model.StatusOpen,
	}

	if err := j.store.AppendTrade(trade, j.nextID+1); err != nil {
		return "", fmt.Errorf("journal: persist open: %w", err)
	}
	j.nextID++
	j.trades = append(j.trades, trade)
	return trade.ID, nil
}

// Close closes the open trade with the given ID, computes pips and P&L,
// and applies the P&L to the balance. The store commits the trade mutation
// and balance update together. A second close of the same ID fails with
// ErrTradeNotFound and leaves the balance untouched.
func (j *Journal) Close(id string, exitPrice float64, reason string) (model.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.closeLocked(id, exitPrice, reason)
}

func (j *Journal) closeLocked(id string, exitPrice float64, reason string) (model.Trade, error) {
	idx := -1
	for i := range j.trades {
		if j.trades[i].ID == id && j.trades[i].Open() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Trade{}, fmt.Errorf("%w: %s", ErrTradeNotFound, id)
	}

	t := j.trades[idx]
	t.ExitPrice = exitPrice
	t.ExitTime = time.Now().UTC()
	t.ExitReason = reason
	t.Status = model.StatusClosed

	if t.Direction == model.DirectionBuy {
		t.Pips = round1((exitPrice - t.EntryPrice) * pipsPerUnit)
	} else {
		t.Pips = round1((t.EntryPrice - exitPrice) * pipsPerUnit)
	}
	t.PnL = round2(t.Pips * t.LotSize * pipValue)

	balance := j.balance + t.PnL
	if err := j.store.CloseTrade(t, balance); err != nil {
		return model.Trade{}, fmt.Errorf("journal: persist close: %w", err)
	}
	j.trades[idx] = t
	j.balance = balance
	return t, nil
}

// CloseAllAtMarket closes every open trade whose pair has a price in
// prices, with reason MARKET_CLOSE. Returns the closed trade IDs.
func (j *Journal) CloseAllAtMarket(prices map[string]float64) []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	var closed []string
	for i := range j.trades {
		if !j.trades[i].Open() {
			continue
		}
		price, ok := prices[j.trades[i].Pair]
		if !ok {
			continue
		}
		if _, err := j.closeLocked(j.trades[i].ID, price, ReasonMarketClose); err == nil {
			closed = append(closed, j.trades[i].ID)
		}
	}
	return closed
}

// OpenTrades returns a snapshot of all open trades, oldest first.
func (j *Journal) OpenTrades() []model.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []model.Trade
	for _, t := range j.trades {
		if t.Open() {
			out = append(out, t)
		}
	}
	return out
}

// ClosedTrades returns a snapshot of all closed trades, oldest first.
func (j *Journal) ClosedTrades() []model.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []model.Trade
	for _, t := range j.trades {
		if !t.Open() {
			out = append(out, t)
		}
	}
	return out
}

// Trade returns the trade with the given ID, open or closed.
func (j *Journal) Trade(id string) (model.Trade, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, t := range j.trades {
		if t.ID == id {
			return t, true
		}
	}
	return model.Trade{}, false
}

// Balance returns the current virtual balance.
func (j *Journal) Balance() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.balance
}

// UnrealizedPnL sums the floating P&L of open trades at the given prices.
// Pairs without a price contribute nothing. Balance is not touched.
func (j *Journal) UnrealizedPnL(prices map[string]float64) float64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	var total float64
	for _, t := range j.trades {
		if !t.Open() {
			continue
		}
		price, ok := prices[t.Pair]
		if !ok {
			continue
		}
		pips := (price - t.EntryPrice) * pipsPerUnit
		if t.Direction == model.DirectionSell {
			pips = -pips
		}
		total += pips * t.LotSize * pipValue
	}
	return round2(total)
}

// Stats aggregates the performance of all closed trades.
type Stats struct {
	TotalTrades int          `json:"total_trades"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	WinRate     float64      `json:"win_rate"`
	TotalPnL    float64      `json:"total_pnl"`
	OpenTrades  int          `json:"open_trades"`
	Balance     float64      `json:"balance"`
	BestTrade   *model.Trade `json:"best_trade,omitempty"`
	WorstTrade  *model.Trade `json:"worst_trade,omitempty"`
}

// Stats computes journal statistics over the closed trade history.
func (j *Journal) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := Stats{Balance: round2(j.balance)}
	var best, worst *model.Trade
	for i := range j.trades {
		t := j.trades[i]
		if t.Open() {
			s.OpenTrades++
			continue
		}
		s.TotalTrades++
		s.TotalPnL += t.PnL
		if t.PnL > 0 {
			s.Wins++
		} else if t.PnL < 0 {
			s.Losses++
		}
		if best == nil || t.PnL > best.PnL {
			cp := t
			best = &cp
		}
		if worst == nil || t.PnL < worst.PnL {
			cp := t
			worst = &cp
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = round1(float64(s.Wins) / float64(s.TotalTrades) * 100)
	}
	s.TotalPnL = round2(s.TotalPnL)
	s.BestTrade = best
	s.WorstTrade = worst
	return s
}

// Reset discards all trade history and sets a new balance. Irreversible.
// The ID counter is preserved so old trade IDs are never reused.
func (j *Journal) Reset(newBalance float64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.store.Reset(newBalance, j.nextID); err != nil {
		return fmt.Errorf("journal: reset: %w", err)
	}
	j.trades = nil
	j.balance = newBalance
	return nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
