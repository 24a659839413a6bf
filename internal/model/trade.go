package model

import "time"

// Direction is the side of a trade.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// TradeStatus is the lifecycle state of a trade.
// The only transition is OPEN → CLOSED; a closed trade is immutable.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// Trade is one virtual (paper) trade in the journal.
// Exit fields are zero until the trade is closed.
type Trade struct {
	ID         string      `json:"id"`
	Pair       string      `json:"pair"`
	Direction  Direction   `json:"direction"`
	EntryPrice float64     `json:"entry_price"`
	EntryTime  time.Time   `json:"entry_time"`
	LotSize    float64     `json:"lot_size"`
	Status     TradeStatus `json:"status"`
	ExitPrice  float64     `json:"exit_price,omitempty"`
	ExitTime   time.Time   `json:"exit_time,omitempty"`
	ExitReason string      `json:"exit_reason,omitempty"`
	Pips       float64     `json:"pips"`
	PnL        float64     `json:"pnl"`
}

// Open reports whether the trade is still open.
func (t *Trade) Open() bool { return t.Status == StatusOpen }
