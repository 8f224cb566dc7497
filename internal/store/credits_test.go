package store

import (
	"errors"
	"testing"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

func TestLedgerSeedsOnce(t *testing.T) {
	db := testDB(t)
	if _, err := NewLedger(db, 1000); err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	// A second ledger on the same database must not reseed.
	ledger, err := NewLedger(db, 9999)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}

	balance, err := ledger.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 1000 {
		t.Errorf("balance = %d, want 1000", balance)
	}
}

func TestLedgerAddAndDeduct(t *testing.T) {
	db := testDB(t)
	ledger, err := NewLedger(db, 100)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}

	if err := ledger.Add(50); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ledger.Deduct(120); err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	balance, err := ledger.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 30 {
		t.Errorf("balance = %d, want 30", balance)
	}
}

func TestLedgerRefusesOverdraft(t *testing.T) {
	db := testDB(t)
	ledger, err := NewLedger(db, 100)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}

	if err := ledger.Deduct(101); !errors.Is(err, sim.ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	balance, err := ledger.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 100 {
		t.Errorf("balance = %d changed by refused deduct", balance)
	}
}

func TestLedgerReset(t *testing.T) {
	db := testDB(t)
	ledger, err := NewLedger(db, 100)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	if err := ledger.Deduct(60); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	// Reset also recreates the row after a campaign wipe.
	if err := db.ResetCampaign(); err != nil {
		t.Fatalf("ResetCampaign: %v", err)
	}
	if err := ledger.Reset(1000); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	balance, err := ledger.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 1000 {
		t.Errorf("balance = %d, want 1000", balance)
	}
}
