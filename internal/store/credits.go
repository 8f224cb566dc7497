package store

import (
	"fmt"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

// Ledger is the store-backed Credits implementation. The balance lives on
// the singleton campaign row so it persists with the rest of the state.
type Ledger struct {
	db *DB
}

// NewLedger returns a Credits service backed by the database, seeding the
// campaign row with the starting balance if none exists.
func NewLedger(db *DB, starting int64) (*Ledger, error) {
	if _, err := db.Exec(
		"INSERT INTO campaign (id, credits) VALUES (1, ?) ON CONFLICT(id) DO NOTHING", starting,
	); err != nil {
		return nil, fmt.Errorf("seed ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Reset forces the balance back to a starting amount, creating the
// campaign row if a reset just removed it.
func (l *Ledger) Reset(starting int64) error {
	if _, err := l.db.Exec(
		"INSERT INTO campaign (id, credits) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET credits = excluded.credits",
		starting,
	); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}

// Balance returns the current credit balance.
func (l *Ledger) Balance() (int64, error) {
	var balance int64
	if err := l.db.QueryRow("SELECT credits FROM campaign WHERE id = 1").Scan(&balance); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// Add credits the balance.
func (l *Ledger) Add(amount int64) error {
	if _, err := l.db.Exec("UPDATE campaign SET credits = credits + ? WHERE id = 1", amount); err != nil {
		return fmt.Errorf("add credits: %w", err)
	}
	return nil
}

// Deduct debits the balance, refusing to go negative.
func (l *Ledger) Deduct(amount int64) error {
	res, err := l.db.Exec(
		"UPDATE campaign SET credits = credits - ? WHERE id = 1 AND credits >= ?", amount, amount,
	)
	if err != nil {
		return fmt.Errorf("deduct credits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deduct credits: %w", err)
	}
	if n == 0 {
		return sim.ErrInsufficientCredits
	}
	return nil
}
