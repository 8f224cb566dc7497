package sim

// EventType identifies the kind of a simulation event.
type EventType string

const (
	// EventDeathWarning records a rescuable emergency on a family member.
	EventDeathWarning EventType = "family.death_warning"
	// EventEntityDeath records an irreversible family member death.
	EventEntityDeath EventType = "family.death"
	// EventClassificationChanged records a relationship standing change
	// for a captain or a family member.
	EventClassificationChanged EventType = "relationship.classification_changed"
	// EventCrisisTriggered records the creation of a crisis.
	EventCrisisTriggered EventType = "crisis.triggered"
	// EventCrisisResolved records a player-resolved crisis.
	EventCrisisResolved EventType = "crisis.resolved"
	// EventIndependentAction records a one-shot side effect of sustained
	// player inaction.
	EventIndependentAction EventType = "escalation.independent_action"
)

// Event is one occurrence in the campaign journal. Events are emitted in
// the order they happen within a day advance and are never retracted.
type Event struct {
	Day       int       `json:"day"`
	Type      EventType `json:"type"`
	Role      Role      `json:"role,omitempty"`
	CaptainID string    `json:"captain_id,omitempty"`
	CrisisID  string    `json:"crisis_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Handler receives events as they are emitted. Handlers must not call back
// into the driver; they are fire-and-forget observers.
type Handler func(Event)
