package sim

// Role identifies a family member slot. The set is fixed: the campaign
// always revolves around the same five household roles.
type Role string

const (
	RolePartner  Role = "partner"
	RoleSon      Role = "son"
	RoleDaughter Role = "daughter"
	RoleBaby     Role = "baby"
	RoleDroid    Role = "droid"
)

// Roles lists every valid role in canonical order. Iteration over family
// members always follows this order so day advances are reproducible.
var Roles = []Role{RolePartner, RoleSon, RoleDaughter, RoleBaby, RoleDroid}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePartner, RoleSon, RoleDaughter, RoleBaby, RoleDroid:
		return true
	}
	return false
}

// decayExempt lists roles whose relationship does not passively decay.
// The baby holds no grudges and the droid is incapable of them.
var decayExempt = map[Role]bool{
	RoleBaby:  true,
	RoleDroid: true,
}

// Token records an irreversible story fact about a family member.
// Tokens are append-only: nothing in the simulation ever removes one.
type Token string

const (
	TokenContactedRebels Token = "contacted_rebels"
	TokenRanAway         Token = "ran_away"
	TokenSoldBelongings  Token = "sold_belongings"
	TokenSlicedComms     Token = "sliced_comms"
)

// Phase is the campaign act a given day falls into. It is derived from the
// day number, never stored.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseEscalation Phase = "escalation"
	PhaseCrisis     Phase = "crisis"
	PhaseResolution Phase = "resolution"
)

// phaseBands maps each phase to its inclusive start day, in order.
var phaseBands = []struct {
	start int
	phase Phase
}{
	{27, PhaseResolution},
	{17, PhaseCrisis},
	{8, PhaseEscalation},
	{1, PhaseSetup},
}

// PhaseForDay returns the campaign phase for a day number.
func PhaseForDay(day int) Phase {
	for _, b := range phaseBands {
		if day >= b.start {
			return b.phase
		}
	}
	return PhaseSetup
}

// DeathCause explains why a family member died.
type DeathCause string

const (
	CauseIllness        DeathCause = "illness"
	CauseAccident       DeathCause = "accident"
	CauseRebelReprisal  DeathCause = "rebel_reprisal"
	CauseSystemsFailure DeathCause = "systems_failure"
)

// defaultDeathCause maps a role to the cause stamped when no story token
// overrides it.
var defaultDeathCause = map[Role]DeathCause{
	RolePartner:  CauseAccident,
	RoleSon:      CauseAccident,
	RoleDaughter: CauseIllness,
	RoleBaby:     CauseIllness,
	RoleDroid:    CauseSystemsFailure,
}

// FamilyMember is the mutable record for one household member. All four
// attributes stay clamped to [0,100]. Once Alive is false the record is
// frozen: every mutator is a no-op on a dead member.
type FamilyMember struct {
	Role         Role
	Name         string
	Relationship int
	Happiness    int
	Safety       int
	Health       int
	Alive        bool

	Tokens map[Token]bool

	// Two-step death: the first qualifying day only raises the warning.
	DeathWarningIssued bool
	DeathDay           int
	DeathCause         DeathCause

	// LastPopupDay is the last day a family-originated content item for
	// this member surfaced. Zero means never.
	LastPopupDay int

	// Decisions is the append-only history of player decisions directed
	// at this member, consumed by the relationship scorer.
	Decisions []DecisionKind
}

// NewFamilyMember creates a living member with mid-range attributes.
func NewFamilyMember(role Role, name string) *FamilyMember {
	return &FamilyMember{
		Role:         role,
		Name:         name,
		Relationship: 50,
		Happiness:    50,
		Safety:       50,
		Health:       50,
		Alive:        true,
		Tokens:       make(map[Token]bool),
	}
}

// clampAttr bounds an attribute to [0,100].
func clampAttr(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Adjust applies deltas to the member's attributes, clamping each result.
// Adjusting a dead member is a no-op.
func (m *FamilyMember) Adjust(relationship, happiness, safety, health int) {
	if !m.Alive {
		return
	}
	m.Relationship = clampAttr(m.Relationship + relationship)
	m.Happiness = clampAttr(m.Happiness + happiness)
	m.Safety = clampAttr(m.Safety + safety)
	m.Health = clampAttr(m.Health + health)
}

// AddToken records a story fact. Tokens never conflict and never clear.
func (m *FamilyMember) AddToken(tok Token) {
	if !m.Alive {
		return
	}
	m.Tokens[tok] = true
}

// HasToken reports whether a story fact has been recorded.
func (m *FamilyMember) HasToken(tok Token) bool {
	return m.Tokens[tok]
}

// Risk is the death-evaluation input: the weaker of health and safety.
func (m *FamilyMember) Risk() int {
	if m.Health < m.Safety {
		return m.Health
	}
	return m.Safety
}

// CaptainStanding classifies the relationship with a recurring captain.
type CaptainStanding string

const (
	StandingFirstMeeting CaptainStanding = "first_meeting"
	StandingFriendly     CaptainStanding = "friendly"
	StandingNeutral      CaptainStanding = "neutral"
	StandingHostile      CaptainStanding = "hostile"
)

// Captain tracks a recurring checkpoint captain. EncounterCount and
// LastEncounterDay only ever grow; Decisions is append-only.
type Captain struct {
	ID               string
	Standing         CaptainStanding
	EncounterCount   int
	LastEncounterDay int
	Decisions        []DecisionKind
}

// NewCaptain creates an unknown captain. Standing stays FirstMeeting until
// the first decision is recorded against them.
func NewCaptain(id string) *Captain {
	return &Captain{ID: id, Standing: StandingFirstMeeting}
}
