package sim

import "errors"

// ErrInsufficientCredits indicates a deduction larger than the balance.
var ErrInsufficientCredits = errors.New("insufficient credits")

// Credits is the external currency service consumed by crisis resolutions
// and emergency rescues. Amounts are fixed per scenario; this subsystem
// never computes them.
type Credits interface {
	Add(amount int64) error
	Deduct(amount int64) error
}

// MemoryLedger is an in-process Credits implementation, used by headless
// simulation runs and tests.
type MemoryLedger struct {
	Balance int64
}

// NewMemoryLedger returns a ledger with the given starting balance.
func NewMemoryLedger(balance int64) *MemoryLedger {
	return &MemoryLedger{Balance: balance}
}

// Add credits the balance.
func (l *MemoryLedger) Add(amount int64) error {
	l.Balance += amount
	return nil
}

// Deduct debits the balance, refusing to go negative.
func (l *MemoryLedger) Deduct(amount int64) error {
	if amount > l.Balance {
		return ErrInsufficientCredits
	}
	l.Balance -= amount
	return nil
}
