package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

// SaveCampaign replaces the persisted campaign with the given state in one
// transaction. A partially written day is never visible: either the whole
// state commits or the previous state stands.
func (db *DB) SaveCampaign(state sim.CampaignState) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"family_members", "captains", "crises", "ignored_messages", "shown_content"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO campaign (id, day, seed) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET day = excluded.day, seed = excluded.seed`,
		state.Day, state.Seed,
	); err != nil {
		return fmt.Errorf("save campaign row: %w", err)
	}

	for _, m := range state.Members {
		tokens, err := json.Marshal(m.Tokens)
		if err != nil {
			return fmt.Errorf("marshal tokens for %s: %w", m.Role, err)
		}
		decisions, err := json.Marshal(m.Decisions)
		if err != nil {
			return fmt.Errorf("marshal decisions for %s: %w", m.Role, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO family_members
			(role, name, relationship, happiness, safety, health, alive,
			 tokens, death_warning, death_day, death_cause, last_popup_day, decisions)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Role, m.Name, m.Relationship, m.Happiness, m.Safety, m.Health,
			boolInt(m.Alive), string(tokens), boolInt(m.DeathWarning),
			m.DeathDay, string(m.DeathCause), m.LastPopupDay, string(decisions),
		); err != nil {
			return fmt.Errorf("save member %s: %w", m.Role, err)
		}
	}

	for i, c := range state.Captains {
		decisions, err := json.Marshal(c.Decisions)
		if err != nil {
			return fmt.Errorf("marshal decisions for captain %s: %w", c.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO captains (id, seq, standing, encounter_count, last_encounter_day, decisions)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, i, string(c.Standing), c.EncounterCount, c.LastEncounterDay, string(decisions),
		); err != nil {
			return fmt.Errorf("save captain %s: %w", c.ID, err)
		}
	}

	for i, c := range state.Crises {
		if _, err := tx.Exec(
			"INSERT INTO crises (id, seq, role, type, day) VALUES (?, ?, ?, ?, ?)",
			c.ID, i, string(c.Role), string(c.Type), c.Day,
		); err != nil {
			return fmt.Errorf("save crisis %s: %w", c.ID, err)
		}
	}

	for i, tr := range state.Ignored {
		if _, err := tx.Exec(`
			INSERT INTO ignored_messages (message_id, seq, role, days_ignored, escalated, action_fired)
			VALUES (?, ?, ?, ?, ?, ?)`,
			tr.MessageID, i, string(tr.Role), tr.DaysIgnored, boolInt(tr.Escalated), boolInt(tr.ActionFired),
		); err != nil {
			return fmt.Errorf("save tracker %s: %w", tr.MessageID, err)
		}
	}

	for i, id := range state.ShownContent {
		if _, err := tx.Exec("INSERT INTO shown_content (item_id, seq) VALUES (?, ?)", id, i); err != nil {
			return fmt.Errorf("save shown id %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadCampaign reads the persisted campaign. The second return is false
// when no campaign has been saved yet.
func (db *DB) LoadCampaign() (sim.CampaignState, bool, error) {
	var state sim.CampaignState
	err := db.QueryRow("SELECT day, seed FROM campaign WHERE id = 1").Scan(&state.Day, &state.Seed)
	if err == sql.ErrNoRows {
		return sim.CampaignState{}, false, nil
	}
	if err != nil {
		return sim.CampaignState{}, false, fmt.Errorf("load campaign row: %w", err)
	}

	if err := db.loadMembers(&state); err != nil {
		return sim.CampaignState{}, false, err
	}
	// The campaign row alone is not a campaign: the ledger seeds it before
	// the first save. Only a persisted household counts.
	if len(state.Members) == 0 {
		return sim.CampaignState{}, false, nil
	}
	if err := db.loadCaptains(&state); err != nil {
		return sim.CampaignState{}, false, err
	}
	if err := db.loadCrises(&state); err != nil {
		return sim.CampaignState{}, false, err
	}
	if err := db.loadIgnored(&state); err != nil {
		return sim.CampaignState{}, false, err
	}
	if err := db.loadShown(&state); err != nil {
		return sim.CampaignState{}, false, err
	}
	return state, true, nil
}

func (db *DB) loadMembers(state *sim.CampaignState) error {
	rows, err := db.Query(`
		SELECT role, name, relationship, happiness, safety, health, alive,
		       tokens, death_warning, death_day, death_cause, last_popup_day, decisions
		FROM family_members
		ORDER BY CASE role
			WHEN 'partner' THEN 0 WHEN 'son' THEN 1 WHEN 'daughter' THEN 2
			WHEN 'baby' THEN 3 ELSE 4 END`)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m sim.MemberState
		var alive, warning int
		var tokens, cause, decisions string
		if err := rows.Scan(&m.Role, &m.Name, &m.Relationship, &m.Happiness, &m.Safety, &m.Health,
			&alive, &tokens, &warning, &m.DeathDay, &cause, &m.LastPopupDay, &decisions); err != nil {
			return fmt.Errorf("scan member: %w", err)
		}
		m.Alive = alive != 0
		m.DeathWarning = warning != 0
		m.DeathCause = sim.DeathCause(cause)
		if err := json.Unmarshal([]byte(tokens), &m.Tokens); err != nil {
			return fmt.Errorf("unmarshal tokens for %s: %w", m.Role, err)
		}
		if err := json.Unmarshal([]byte(decisions), &m.Decisions); err != nil {
			return fmt.Errorf("unmarshal decisions for %s: %w", m.Role, err)
		}
		state.Members = append(state.Members, m)
	}
	return rows.Err()
}

func (db *DB) loadCaptains(state *sim.CampaignState) error {
	rows, err := db.Query(`
		SELECT id, standing, encounter_count, last_encounter_day, decisions
		FROM captains ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("load captains: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c sim.CaptainState
		var standing, decisions string
		if err := rows.Scan(&c.ID, &standing, &c.EncounterCount, &c.LastEncounterDay, &decisions); err != nil {
			return fmt.Errorf("scan captain: %w", err)
		}
		c.Standing = sim.CaptainStanding(standing)
		if err := json.Unmarshal([]byte(decisions), &c.Decisions); err != nil {
			return fmt.Errorf("unmarshal decisions for captain %s: %w", c.ID, err)
		}
		state.Captains = append(state.Captains, c)
	}
	return rows.Err()
}

func (db *DB) loadCrises(state *sim.CampaignState) error {
	rows, err := db.Query("SELECT id, role, type, day FROM crises ORDER BY seq")
	if err != nil {
		return fmt.Errorf("load crises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c sim.Crisis
		var role, kind string
		if err := rows.Scan(&c.ID, &role, &kind, &c.Day); err != nil {
			return fmt.Errorf("scan crisis: %w", err)
		}
		c.Role = sim.Role(role)
		c.Type = sim.CrisisType(kind)
		state.Crises = append(state.Crises, c)
	}
	return rows.Err()
}

func (db *DB) loadIgnored(state *sim.CampaignState) error {
	rows, err := db.Query(`
		SELECT message_id, role, days_ignored, escalated, action_fired
		FROM ignored_messages ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("load ignored: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr sim.IgnoredInteraction
		var role string
		var escalated, fired int
		if err := rows.Scan(&tr.MessageID, &role, &tr.DaysIgnored, &escalated, &fired); err != nil {
			return fmt.Errorf("scan tracker: %w", err)
		}
		tr.Role = sim.Role(role)
		tr.Escalated = escalated != 0
		tr.ActionFired = fired != 0
		state.Ignored = append(state.Ignored, tr)
	}
	return rows.Err()
}

func (db *DB) loadShown(state *sim.CampaignState) error {
	rows, err := db.Query("SELECT item_id FROM shown_content ORDER BY seq")
	if err != nil {
		return fmt.Errorf("load shown ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan shown id: %w", err)
		}
		state.ShownContent = append(state.ShownContent, id)
	}
	return rows.Err()
}

// ResetCampaign wipes everything, including the shown-id set. This is the
// explicit new-campaign signal; day advances never clear anything.
func (db *DB) ResetCampaign() error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"campaign", "family_members", "captains", "crises", "ignored_messages", "shown_content"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
