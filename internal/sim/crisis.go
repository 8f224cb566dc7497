package sim

import (
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownCrisis indicates a crisis id that does not exist or was
// already resolved.
var ErrUnknownCrisis = errors.New("unknown crisis")

// ErrUnknownResponse indicates a resolution response that is not valid for
// the crisis type.
var ErrUnknownResponse = errors.New("unknown crisis response")

// CrisisType tags the condition that flagged a crisis.
type CrisisType string

const (
	// CrisisEstranged fires when relationship drops below its floor.
	CrisisEstranged CrisisType = "estranged"
	// CrisisMedical fires when health drops below its floor.
	CrisisMedical CrisisType = "medical"
	// CrisisSecurity fires when safety drops below its floor.
	CrisisSecurity CrisisType = "security"
	// CrisisIgnored fires when a message stays ignored long enough.
	CrisisIgnored CrisisType = "ignored"
)

// Crisis is a flagged (member, type) condition awaiting one player-visible
// resolution. At most one unresolved crisis exists per pair.
type Crisis struct {
	ID       string     `json:"id"`
	Role     Role       `json:"role"`
	Type     CrisisType `json:"type"`
	Day      int        `json:"day"`
	Resolved bool       `json:"resolved"`
}

func newCrisis(role Role, kind CrisisType, day int) *Crisis {
	return &Crisis{ID: uuid.NewString(), Role: role, Type: kind, Day: day}
}

// CrisisResponse names one of the fixed resolution choices for a crisis.
type CrisisResponse string

const (
	ResponseSendMedic   CrisisResponse = "send_medic"
	ResponseHomeRemedy  CrisisResponse = "home_remedy"
	ResponsePostGuard   CrisisResponse = "post_guard"
	ResponseRelocate    CrisisResponse = "relocate"
	ResponseHolocall    CrisisResponse = "holocall"
	ResponseSendGift    CrisisResponse = "send_gift"
	ResponseApologize   CrisisResponse = "apologize"
	ResponseDismissPlea CrisisResponse = "dismiss_plea"
)

// responseEffect is the fixed outcome of picking one resolution choice.
type responseEffect struct {
	relationship int
	happiness    int
	safety       int
	health       int
	creditsCost  int64
}

// crisisResponses fixes the choices available per crisis type and their
// attribute deltas. Amounts are scenario constants, not computed.
var crisisResponses = map[CrisisType]map[CrisisResponse]responseEffect{
	CrisisMedical: {
		ResponseSendMedic:   {health: 35, relationship: 5, creditsCost: 150},
		ResponseHomeRemedy:  {health: 15},
		ResponseDismissPlea: {relationship: -10, happiness: -10},
	},
	CrisisSecurity: {
		ResponsePostGuard:   {safety: 30, creditsCost: 100},
		ResponseRelocate:    {safety: 40, happiness: -10, creditsCost: 250},
		ResponseDismissPlea: {relationship: -10, safety: -5},
	},
	CrisisEstranged: {
		ResponseHolocall:    {relationship: 20, happiness: 5},
		ResponseSendGift:    {relationship: 15, happiness: 10, creditsCost: 75},
		ResponseDismissPlea: {relationship: -5, happiness: -10},
	},
	CrisisIgnored: {
		ResponseApologize:   {relationship: 15},
		ResponseSendGift:    {relationship: 10, happiness: 10, creditsCost: 75},
		ResponseDismissPlea: {relationship: -10, happiness: -5},
	},
}

// ResponsesFor lists the valid responses for a crisis type in a stable
// order, for presentation layers that build choice menus.
func ResponsesFor(kind CrisisType) []CrisisResponse {
	effects, ok := crisisResponses[kind]
	if !ok {
		return nil
	}
	var out []CrisisResponse
	for _, r := range []CrisisResponse{
		ResponseSendMedic, ResponseHomeRemedy, ResponsePostGuard,
		ResponseRelocate, ResponseHolocall, ResponseSendGift,
		ResponseApologize, ResponseDismissPlea,
	} {
		if _, ok := effects[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// crisisFloors are the three independent daily threshold checks. Each
// creates its own crisis; concurrent conditions never merge.
var crisisFloors = []struct {
	kind  CrisisType
	floor int
	value func(*FamilyMember) int
}{
	{CrisisEstranged, 20, func(m *FamilyMember) int { return m.Relationship }},
	{CrisisMedical, 30, func(m *FamilyMember) int { return m.Health }},
	{CrisisSecurity, 30, func(m *FamilyMember) int { return m.Safety }},
}
