package cli

import (
	"fmt"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
	"github.com/GamingDebugged/starkiller-sub002/internal/config"
	"github.com/GamingDebugged/starkiller-sub002/internal/server"
	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
	"github.com/GamingDebugged/starkiller-sub002/internal/store"
)

// env bundles everything a command needs to run against the local
// database.
type env struct {
	cfg    config.Config
	db     *store.DB
	ledger *store.Ledger
	driver *sim.Driver
}

// openEnv loads config, opens the database, loads the content catalog,
// and restores (or starts) the campaign.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ledger, err := store.NewLedger(db, cfg.StartingCredits)
	if err != nil {
		db.Close()
		return nil, err
	}

	items, err := loadCatalog(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	driver, err := server.LoadDriver(db, ledger, items, cfg.Seed)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &env{cfg: cfg, db: db, ledger: ledger, driver: driver}, nil
}

func (e *env) close() {
	e.db.Close()
}

// loadCatalog reads the configured catalog file, falling back to the
// embedded default.
func loadCatalog(cfg config.Config) ([]catalog.Item, error) {
	if cfg.CatalogPath != "" {
		items, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		return items, nil
	}
	return catalog.Default()
}
