package journal

import "forex-signalsv1/internal/model"

// State is the persisted journal document: the full trade history plus the
// next trade ID counter. Balance rides alongside as its own document.
type State struct {
	Trades  []model.Trade `json:"trades"`
	NextID  int64         `json:"next_id"`
	Balance float64       `json:"balance"`

	// HasBalance distinguishes a persisted zero balance from a store
	// that has never written one.
	HasBalance bool `json:"-"`
}

// Store persists journal state. CloseTrade must commit the trade mutation
// and the balance update together — both or neither.
type Store interface {
	// Load returns the persisted state. A fresh store returns a zero
	// State with no error.
	Load() (State, error)

	// AppendTrade durably appends a newly opened trade and advances the
	// ID counter.
	AppendTrade(t model.Trade, nextID int64) error

	// CloseTrade durably replaces the trade row with its closed form and
	// writes the new balance in the same transaction.
	CloseTrade(t model.Trade, balance float64) error

	// Reset discards all trade history and writes the new balance. The ID
	// counter value is preserved as passed so IDs are never reused.
	Reset(balance float64, nextID int64) error
}

// MemoryStore keeps journal state in memory. Used in tests and for
// ephemeral runs without a database path.
type MemoryStore struct {
	state State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (State, error) {
	cp := m.state
	cp.Trades = append([]model.Trade(nil), m.state.Trades...)
	return cp, nil
}

func (m *MemoryStore) AppendTrade(t model.Trade, nextID int64) error {
	m.state.Trades = append(m.state.Trades, t)
	m.state.NextID = nextID
	return nil
}

func (m *MemoryStore) CloseTrade(t model.Trade, balance float64) error {
	for i := range m.state.Trades {
		if m.state.Trades[i].ID == t.ID {
			m.state.Trades[i] = t
			break
		}
	}
	m.state.Balance = balance
	m.state.HasBalance = true
	return nil
}

func (m *MemoryStore) Reset(balance float64, nextID int64) error {
	m.state = State{NextID: nextID, Balance: balance, HasBalance: true}
	return nil
}
