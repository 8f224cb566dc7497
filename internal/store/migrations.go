package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "campaign: singleton day/seed/credits row",
		SQL: `
CREATE TABLE campaign (
    id       INTEGER PRIMARY KEY CHECK (id = 1),
    day      INTEGER NOT NULL DEFAULT 0,
    seed     INTEGER NOT NULL DEFAULT 0,
    credits  INTEGER NOT NULL DEFAULT 0
);
`,
	},
	{
		Version:     2,
		Description: "family_members: per-role household state",
		SQL: `
CREATE TABLE family_members (
    role            TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    relationship    INTEGER NOT NULL CHECK (relationship BETWEEN 0 AND 100),
    happiness       INTEGER NOT NULL CHECK (happiness BETWEEN 0 AND 100),
    safety          INTEGER NOT NULL CHECK (safety BETWEEN 0 AND 100),
    health          INTEGER NOT NULL CHECK (health BETWEEN 0 AND 100),
    alive           INTEGER NOT NULL DEFAULT 1,
    tokens          TEXT NOT NULL DEFAULT '[]',
    death_warning   INTEGER NOT NULL DEFAULT 0,
    death_day       INTEGER NOT NULL DEFAULT 0,
    death_cause     TEXT NOT NULL DEFAULT '',
    last_popup_day  INTEGER NOT NULL DEFAULT 0,
    decisions       TEXT NOT NULL DEFAULT '[]'
);
`,
	},
	{
		Version:     3,
		Description: "captains: recurring checkpoint captains",
		SQL: `
CREATE TABLE captains (
    id                 TEXT PRIMARY KEY,
    seq                INTEGER NOT NULL,
    standing           TEXT NOT NULL,
    encounter_count    INTEGER NOT NULL DEFAULT 0,
    last_encounter_day INTEGER NOT NULL DEFAULT 0,
    decisions          TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX idx_captains_seq ON captains(seq);
`,
	},
	{
		Version:     4,
		Description: "crises + ignored_messages: open trackers",
		SQL: `
CREATE TABLE crises (
    id    TEXT PRIMARY KEY,
    seq   INTEGER NOT NULL,
    role  TEXT NOT NULL,
    type  TEXT NOT NULL,
    day   INTEGER NOT NULL
);

CREATE TABLE ignored_messages (
    message_id    TEXT PRIMARY KEY,
    seq           INTEGER NOT NULL,
    role          TEXT NOT NULL,
    days_ignored  INTEGER NOT NULL DEFAULT 0,
    escalated     INTEGER NOT NULL DEFAULT 0,
    action_fired  INTEGER NOT NULL DEFAULT 0
);
`,
	},
	{
		Version:     5,
		Description: "shown_content: campaign-wide no-repeat set",
		SQL: `
CREATE TABLE shown_content (
    item_id TEXT PRIMARY KEY,
    seq     INTEGER NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
