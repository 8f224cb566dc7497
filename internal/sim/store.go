package sim

import "errors"

// ErrUnknownEntity indicates an operation referenced an entity id or role
// the store has never seen.
var ErrUnknownEntity = errors.New("unknown entity")

// EntityStore owns the canonical family member list and the map of known
// captains. It is pure data: all behavior lives on the driver. Iteration
// follows insertion order so that day advances stay reproducible.
type EntityStore struct {
	members      map[Role]*FamilyMember
	memberOrder  []Role
	captains     map[string]*Captain
	captainOrder []string
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		members:  make(map[Role]*FamilyMember),
		captains: make(map[string]*Captain),
	}
}

// NewHousehold returns a store seeded with the standard five-member family.
func NewHousehold(names map[Role]string) *EntityStore {
	s := NewEntityStore()
	for _, role := range Roles {
		name := names[role]
		if name == "" {
			name = string(role)
		}
		s.AddMember(NewFamilyMember(role, name))
	}
	return s
}

// AddMember registers a family member. Re-adding a role replaces nothing:
// the first registration wins.
func (s *EntityStore) AddMember(m *FamilyMember) {
	if _, ok := s.members[m.Role]; ok {
		return
	}
	s.members[m.Role] = m
	s.memberOrder = append(s.memberOrder, m.Role)
}

// Member returns the family member for a role.
func (s *EntityStore) Member(role Role) (*FamilyMember, bool) {
	m, ok := s.members[role]
	return m, ok
}

// Members returns all family members in canonical order, dead or alive.
func (s *EntityStore) Members() []*FamilyMember {
	out := make([]*FamilyMember, 0, len(s.memberOrder))
	for _, role := range s.memberOrder {
		out = append(out, s.members[role])
	}
	return out
}

// LivingMembers returns members still in the simulation, in order.
func (s *EntityStore) LivingMembers() []*FamilyMember {
	var out []*FamilyMember
	for _, role := range s.memberOrder {
		if m := s.members[role]; m.Alive {
			out = append(out, m)
		}
	}
	return out
}

// EnsureCaptain returns the captain for id, lazily creating a FirstMeeting
// record on first reference.
func (s *EntityStore) EnsureCaptain(id string) *Captain {
	if c, ok := s.captains[id]; ok {
		return c
	}
	c := NewCaptain(id)
	s.captains[id] = c
	s.captainOrder = append(s.captainOrder, id)
	return c
}

// Captain returns a known captain.
func (s *EntityStore) Captain(id string) (*Captain, bool) {
	c, ok := s.captains[id]
	return c, ok
}

// Captains returns every known captain in first-seen order.
func (s *EntityStore) Captains() []*Captain {
	out := make([]*Captain, 0, len(s.captainOrder))
	for _, id := range s.captainOrder {
		out = append(out, s.captains[id])
	}
	return out
}

// MemberSnapshot is a read-only copy of a family member handed to external
// callers. Mutating a snapshot never touches simulation state.
type MemberSnapshot struct {
	Role         Role           `json:"role"`
	Name         string         `json:"name"`
	Relationship int            `json:"relationship"`
	Happiness    int            `json:"happiness"`
	Safety       int            `json:"safety"`
	Health       int            `json:"health"`
	Alive        bool           `json:"alive"`
	Standing     FamilyStanding `json:"standing"`
	Phase        Phase          `json:"phase"`
	Tokens       []Token        `json:"tokens,omitempty"`
	DeathWarning bool           `json:"death_warning"`
	DeathDay     int            `json:"death_day,omitempty"`
	DeathCause   DeathCause     `json:"death_cause,omitempty"`
}

// snapshotMember copies a member for external consumption. Token order is
// made deterministic by walking the known token list.
func snapshotMember(m *FamilyMember, day int) MemberSnapshot {
	snap := MemberSnapshot{
		Role:         m.Role,
		Name:         m.Name,
		Relationship: m.Relationship,
		Happiness:    m.Happiness,
		Safety:       m.Safety,
		Health:       m.Health,
		Alive:        m.Alive,
		Standing:     FamilyStandingFor(m.Decisions),
		Phase:        PhaseForDay(day),
		DeathWarning: m.DeathWarningIssued,
		DeathDay:     m.DeathDay,
		DeathCause:   m.DeathCause,
	}
	for _, tok := range knownTokens {
		if m.Tokens[tok] {
			snap.Tokens = append(snap.Tokens, tok)
		}
	}
	return snap
}

// knownTokens fixes snapshot ordering for token sets.
var knownTokens = []Token{
	TokenContactedRebels,
	TokenRanAway,
	TokenSoldBelongings,
	TokenSlicedComms,
}

// CaptainSnapshot is a read-only copy of a captain record.
type CaptainSnapshot struct {
	ID               string          `json:"id"`
	Standing         CaptainStanding `json:"standing"`
	EncounterCount   int             `json:"encounter_count"`
	LastEncounterDay int             `json:"last_encounter_day"`
	Decisions        []DecisionKind  `json:"decisions,omitempty"`
}

func snapshotCaptain(c *Captain) CaptainSnapshot {
	snap := CaptainSnapshot{
		ID:               c.ID,
		Standing:         c.Standing,
		EncounterCount:   c.EncounterCount,
		LastEncounterDay: c.LastEncounterDay,
	}
	snap.Decisions = append(snap.Decisions, c.Decisions...)
	return snap
}
