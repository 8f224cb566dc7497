package server

import (
	"fmt"
	"log"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
	"github.com/GamingDebugged/starkiller-sub002/internal/store"
)

// LoadDriver restores the persisted campaign, or starts a fresh one with
// the given seed when nothing is saved yet. A zero seed means generate one.
func LoadDriver(db *store.DB, ledger *store.Ledger, items []catalog.Item, seed int64) (*sim.Driver, error) {
	state, found, err := db.LoadCampaign()
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}
	if found {
		log.Printf("server: resumed campaign at day %d", state.Day)
		return sim.RestoreDriver(state, items, ledger), nil
	}

	driver, err := freshDriver(items, ledger, seed)
	if err != nil {
		return nil, err
	}
	if err := db.SaveCampaign(driver.ExportState()); err != nil {
		return nil, fmt.Errorf("save fresh campaign: %w", err)
	}
	return driver, nil
}

// NewCampaignDriver resets the database, restores the starting credit
// balance, and returns a fresh driver reusing the previous driver's
// catalog.
func NewCampaignDriver(db *store.DB, ledger *store.Ledger, seed, startingCredits int64, previous *sim.Driver) (*sim.Driver, error) {
	if err := db.ResetCampaign(); err != nil {
		return nil, fmt.Errorf("reset campaign: %w", err)
	}
	if err := ledger.Reset(startingCredits); err != nil {
		return nil, err
	}

	driver, err := freshDriver(previous.Catalog(), ledger, seed)
	if err != nil {
		return nil, err
	}
	if err := db.SaveCampaign(driver.ExportState()); err != nil {
		return nil, fmt.Errorf("save fresh campaign: %w", err)
	}
	return driver, nil
}

func freshDriver(items []catalog.Item, credits sim.Credits, seed int64) (*sim.Driver, error) {
	if seed == 0 {
		var err error
		seed, err = sim.NewSeed()
		if err != nil {
			return nil, err
		}
	}
	household := sim.NewHousehold(defaultNames)
	log.Printf("server: new campaign, seed %d", seed)
	return sim.NewDriver(household, items, seed, credits), nil
}

// defaultNames are the household display names for a fresh campaign.
var defaultNames = map[sim.Role]string{
	sim.RolePartner:  "Maren",
	sim.RoleSon:      "Dex",
	sim.RoleDaughter: "Liya",
	sim.RoleBaby:     "Rook",
	sim.RoleDroid:    "KT-7",
}
