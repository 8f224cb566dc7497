package sim

import "fmt"

// Escalation thresholds, in days a message has been ignored. The
// independent action fires first; the crisis comes later. Both are
// re-checked every day, independently of each other.
const (
	independentActionDays = 3
	ignoredCrisisDays     = 5
)

// ignoredRelationshipPenalty is applied to the member every time their
// message is recorded as ignored, not just once.
const ignoredRelationshipPenalty = 2

// IgnoredInteraction tracks a family message the player keeps ignoring.
type IgnoredInteraction struct {
	MessageID   string `json:"message_id"`
	Role        Role   `json:"role"`
	DaysIgnored int    `json:"days_ignored"`
	Escalated   bool   `json:"escalated"`
	ActionFired bool   `json:"action_fired"`
}

// independentAction is the one-shot consequence a member takes into their
// own hands after being ignored long enough. Keyed by role so the table is
// exhaustive over the cast.
type independentAction struct {
	token     Token
	happiness int
	safety    int
	detail    string
}

// independentActions has no entry for the baby: infants do not act.
var independentActions = map[Role]independentAction{
	RolePartner:  {token: TokenContactedRebels, safety: -15, detail: "reached out to a rebel cell"},
	RoleSon:      {token: TokenRanAway, safety: -10, detail: "ran away from the residence"},
	RoleDaughter: {token: TokenSoldBelongings, happiness: -10, detail: "sold her belongings"},
	RoleDroid:    {token: TokenSlicedComms, safety: -5, detail: "sliced the comm relay"},
}

// RecordIgnored notes that a family message went unanswered today. It
// creates or bumps the tracker and applies the immediate relationship
// penalty on every call. Ignoring a dead member's message succeeds as a
// no-op.
func (d *Driver) RecordIgnored(messageID string, role Role) error {
	if messageID == "" {
		return fmt.Errorf("%w: empty message id", ErrUnknownEntity)
	}
	m, ok := d.store.Member(role)
	if !ok {
		return fmt.Errorf("%w: no member %q", ErrUnknownEntity, role)
	}
	if !m.Alive {
		return nil
	}

	tracker, ok := d.ignored[messageID]
	if !ok {
		tracker = &IgnoredInteraction{MessageID: messageID, Role: role}
		d.ignored[messageID] = tracker
		d.ignoredOrder = append(d.ignoredOrder, messageID)
	}
	tracker.DaysIgnored++
	m.Adjust(-ignoredRelationshipPenalty, 0, 0, 0)
	return nil
}

// processEscalation converts sustained inaction into consequences. The two
// thresholds are evaluated separately: the independent action may fire
// before the crisis threshold is ever reached, and vice versa. Trackers
// whose member has died are dropped; trackers that have both escalated and
// fired are done and removed.
func (d *Driver) processEscalation() {
	var done []string
	for _, id := range d.ignoredOrder {
		tracker := d.ignored[id]
		m, ok := d.store.Member(tracker.Role)
		if !ok || !m.Alive {
			done = append(done, id)
			continue
		}

		if !tracker.ActionFired && tracker.DaysIgnored >= independentActionDays {
			tracker.ActionFired = true
			d.fireIndependentAction(m)
		}
		if !tracker.Escalated && tracker.DaysIgnored >= ignoredCrisisDays {
			tracker.Escalated = true
			d.triggerCrisis(tracker.Role, CrisisIgnored)
		}
		if tracker.ActionFired && tracker.Escalated {
			done = append(done, id)
		}
	}

	for _, id := range done {
		d.removeTracker(id)
	}
}

// fireIndependentAction executes the member's one-shot side effect. Roles
// without an action (the baby) simply never fire.
func (d *Driver) fireIndependentAction(m *FamilyMember) {
	action, ok := independentActions[m.Role]
	if !ok {
		return
	}
	m.AddToken(action.token)
	m.Adjust(0, action.happiness, action.safety, 0)
	d.emit(Event{Day: d.day, Type: EventIndependentAction, Role: m.Role, Detail: action.detail})
}

func (d *Driver) removeTracker(messageID string) {
	delete(d.ignored, messageID)
	for i, id := range d.ignoredOrder {
		if id == messageID {
			d.ignoredOrder = append(d.ignoredOrder[:i], d.ignoredOrder[i+1:]...)
			break
		}
	}
}

// IgnoredTrackers returns copies of the live trackers in creation order.
func (d *Driver) IgnoredTrackers() []IgnoredInteraction {
	out := make([]IgnoredInteraction, 0, len(d.ignoredOrder))
	for _, id := range d.ignoredOrder {
		out = append(out, *d.ignored[id])
	}
	return out
}
