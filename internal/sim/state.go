package sim

import "github.com/GamingDebugged/starkiller-sub002/internal/catalog"

// CampaignState is the full serializable simulation state. Persistence
// must round-trip every field here exactly, warning flags and shown-id set
// included, or a resumed campaign silently changes probability outcomes.
type CampaignState struct {
	Day          int                  `json:"day"`
	Seed         int64                `json:"seed"`
	Members      []MemberState        `json:"members"`
	Captains     []CaptainState       `json:"captains"`
	Crises       []Crisis             `json:"crises,omitempty"`
	Ignored      []IgnoredInteraction `json:"ignored,omitempty"`
	ShownContent []string             `json:"shown_content,omitempty"`
}

// MemberState is the persisted form of a family member.
type MemberState struct {
	Role         Role           `json:"role"`
	Name         string         `json:"name"`
	Relationship int            `json:"relationship"`
	Happiness    int            `json:"happiness"`
	Safety       int            `json:"safety"`
	Health       int            `json:"health"`
	Alive        bool           `json:"alive"`
	Tokens       []Token        `json:"tokens,omitempty"`
	DeathWarning bool           `json:"death_warning"`
	DeathDay     int            `json:"death_day,omitempty"`
	DeathCause   DeathCause     `json:"death_cause,omitempty"`
	LastPopupDay int            `json:"last_popup_day,omitempty"`
	Decisions    []DecisionKind `json:"decisions,omitempty"`
}

// CaptainState is the persisted form of a captain.
type CaptainState struct {
	ID               string          `json:"id"`
	Standing         CaptainStanding `json:"standing"`
	EncounterCount   int             `json:"encounter_count"`
	LastEncounterDay int             `json:"last_encounter_day"`
	Decisions        []DecisionKind  `json:"decisions,omitempty"`
}

// ExportState copies the whole simulation into a serializable state.
func (d *Driver) ExportState() CampaignState {
	state := CampaignState{
		Day:          d.day,
		Seed:         d.seed,
		ShownContent: d.ShownContentIDs(),
	}

	for _, m := range d.store.Members() {
		ms := MemberState{
			Role:         m.Role,
			Name:         m.Name,
			Relationship: m.Relationship,
			Happiness:    m.Happiness,
			Safety:       m.Safety,
			Health:       m.Health,
			Alive:        m.Alive,
			DeathWarning: m.DeathWarningIssued,
			DeathDay:     m.DeathDay,
			DeathCause:   m.DeathCause,
			LastPopupDay: m.LastPopupDay,
		}
		for _, tok := range knownTokens {
			if m.Tokens[tok] {
				ms.Tokens = append(ms.Tokens, tok)
			}
		}
		ms.Decisions = append(ms.Decisions, m.Decisions...)
		state.Members = append(state.Members, ms)
	}

	for _, c := range d.store.Captains() {
		cs := CaptainState{
			ID:               c.ID,
			Standing:         c.Standing,
			EncounterCount:   c.EncounterCount,
			LastEncounterDay: c.LastEncounterDay,
		}
		cs.Decisions = append(cs.Decisions, c.Decisions...)
		state.Captains = append(state.Captains, cs)
	}

	for _, c := range d.crises {
		if !c.Resolved {
			state.Crises = append(state.Crises, *c)
		}
	}
	state.Ignored = append(state.Ignored, d.IgnoredTrackers()...)
	return state
}

// RestoreDriver rebuilds a driver from persisted state. The rng is
// re-seeded from the stored seed; collaborators are supplied fresh.
func RestoreDriver(state CampaignState, items []catalog.Item, credits Credits) *Driver {
	store := NewEntityStore()
	for _, ms := range state.Members {
		m := &FamilyMember{
			Role:               ms.Role,
			Name:               ms.Name,
			Relationship:       clampAttr(ms.Relationship),
			Happiness:          clampAttr(ms.Happiness),
			Safety:             clampAttr(ms.Safety),
			Health:             clampAttr(ms.Health),
			Alive:              ms.Alive,
			Tokens:             make(map[Token]bool, len(ms.Tokens)),
			DeathWarningIssued: ms.DeathWarning,
			DeathDay:           ms.DeathDay,
			DeathCause:         ms.DeathCause,
			LastPopupDay:       ms.LastPopupDay,
		}
		for _, tok := range ms.Tokens {
			m.Tokens[tok] = true
		}
		m.Decisions = append(m.Decisions, ms.Decisions...)
		store.AddMember(m)
	}

	for _, cs := range state.Captains {
		c := store.EnsureCaptain(cs.ID)
		c.Standing = cs.Standing
		c.EncounterCount = cs.EncounterCount
		c.LastEncounterDay = cs.LastEncounterDay
		c.Decisions = append(c.Decisions, cs.Decisions...)
	}

	d := NewDriver(store, items, state.Seed, credits)
	d.day = state.Day
	for i := range state.Crises {
		c := state.Crises[i]
		d.crises = append(d.crises, &c)
	}
	for i := range state.Ignored {
		tr := state.Ignored[i]
		d.ignored[tr.MessageID] = &tr
		d.ignoredOrder = append(d.ignoredOrder, tr.MessageID)
	}
	for _, id := range state.ShownContent {
		d.shown[id] = true
	}
	return d
}
