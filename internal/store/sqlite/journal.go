// Package sqlite persists the trade journal in a single-writer SQLite
// database. Trades live in one table; the ID counter and balance live in a
// small meta table so a close can update both rows in one transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"forex-signalsv1/internal/journal"
	"forex-signalsv1/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Config configures the SQLite journal store.
type Config struct {
	DBPath string // path to SQLite database file, e.g. "data/journal.db"
}

// Store is the SQLite-backed journal.Store.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// New opens the database with WAL mode and creates the schema.
func New(cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Set connection pool for single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened journal database at %s", cfg.DBPath)
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id          TEXT PRIMARY KEY,
			pair        TEXT    NOT NULL,
			direction   TEXT    NOT NULL,
			entry_price REAL    NOT NULL,
			entry_time  INTEGER NOT NULL,
			lot_size    REAL    NOT NULL,
			status      TEXT    NOT NULL,
			exit_price  REAL,
			exit_time   INTEGER,
			exit_reason TEXT,
			pips        REAL    NOT NULL DEFAULT 0,
			pnl         REAL    NOT NULL DEFAULT 0,
			seq         INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Load reads the full journal state. A fresh database returns a zero state.
func (s *Store) Load() (journal.State, error) {
	var state journal.State

	rows, err := s.db.Query(`
		SELECT id, pair, direction, entry_price, entry_time, lot_size, status,
		       exit_price, exit_time, exit_reason, pips, pnl
		FROM trades ORDER BY seq
	`)
	if err != nil {
		return state, fmt.Errorf("sqlite select trades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Trade
		var entryTS int64
		var exitPrice sql.NullFloat64
		var exitTS sql.NullInt64
		var exitReason sql.NullString
		if err := rows.Scan(&t.ID, &t.Pair, &t.Direction, &t.EntryPrice, &entryTS,
			&t.LotSize, &t.Status, &exitPrice, &exitTS, &exitReason, &t.Pips, &t.PnL); err != nil {
			return state, fmt.Errorf("sqlite scan trade: %w", err)
		}
		t.EntryTime = time.Unix(entryTS, 0).UTC()
		if exitPrice.Valid {
			t.ExitPrice = exitPrice.Float64
		}
		if exitTS.Valid {
			t.ExitTime = time.Unix(exitTS.Int64, 0).UTC()
		}
		if exitReason.Valid {
			t.ExitReason = exitReason.String
		}
		state.Trades = append(state.Trades, t)
	}
	if err := rows.Err(); err != nil {
		return state, fmt.Errorf("sqlite trades: %w", err)
	}

	if v, ok, err := s.metaValue("next_id"); err != nil {
		return state, err
	} else if ok {
		state.NextID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok, err := s.metaValue("balance"); err != nil {
		return state, err
	} else if ok {
		state.Balance, _ = strconv.ParseFloat(v, 64)
		state.HasBalance = true
	}

	return state, nil
}

func (s *Store) metaValue(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite meta %s: %w", key, err)
	}
	return v, true, nil
}

// AppendTrade inserts a newly opened trade and advances the ID counter in
// one transaction.
func (s *Store) AppendTrade(t model.Trade, nextID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO trades (id, pair, direction, entry_price, entry_time, lot_size, status, pips, pnl, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?)
	`, t.ID, t.Pair, string(t.Direction), t.EntryPrice, t.EntryTime.Unix(), t.LotSize, string(t.Status), nextID-1)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite insert trade: %w", err)
	}

	if err := setMeta(tx, "next_id", strconv.FormatInt(nextID, 10)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// CloseTrade writes the closed trade row and the new balance together.
func (s *Store) CloseTrade(t model.Trade, balance float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`
		UPDATE trades
		SET status = ?, exit_price = ?, exit_time = ?, exit_reason = ?, pips = ?, pnl = ?
		WHERE id = ?
	`, string(t.Status), t.ExitPrice, t.ExitTime.Unix(), t.ExitReason, t.Pips, t.PnL, t.ID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite close trade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return fmt.Errorf("sqlite close trade: no row for %s", t.ID)
	}

	if err := setMeta(tx, "balance", strconv.FormatFloat(balance, 'f', -1, 64)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Reset drops all trade rows and writes the new balance, keeping the ID
// counter as passed.
func (s *Store) Reset(balance float64, nextID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite reset: %w", err)
	}
	if err := setMeta(tx, "balance", strconv.FormatFloat(balance, 'f', -1, 64)); err != nil {
		tx.Rollback()
		return err
	}
	if err := setMeta(tx, "next_id", strconv.FormatInt(nextID, 10)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite meta %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
