package sim

import (
	"errors"
	"fmt"
	"log"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

// ErrDayNotAfterCurrent indicates an advance to a day that is not strictly
// after the current one. Days only move forward.
var ErrDayNotAfterCurrent = errors.New("day must be after current day")

// ErrUnknownDecision indicates a decision kind the weight tables have
// never heard of.
var ErrUnknownDecision = errors.New("unknown decision kind")

// Driver is the single entry point for the daily simulation. It owns the
// entity store, the open crisis list, the ignored-message trackers, and the
// shown-id set; external code only ever sees snapshots.
//
// The driver is strictly single-threaded: one AdvanceDay runs to completion
// before anything else touches the store.
type Driver struct {
	store   *EntityStore
	catalog []catalog.Item
	rng     Rand
	credits Credits

	handlers []Handler

	day     int
	seed    int64
	crises  []*Crisis
	ignored map[string]*IgnoredInteraction
	// ignoredOrder preserves tracker creation order for deterministic
	// daily processing.
	ignoredOrder []string
	shown        map[string]bool
	journal      []Event

	lastReport *DayReport
}

// NewDriver wires a driver from its collaborators. The seed is retained
// for campaign persistence; the rng built from it is the only randomness
// the simulation ever consumes.
func NewDriver(store *EntityStore, items []catalog.Item, seed int64, credits Credits) *Driver {
	if credits == nil {
		credits = NewMemoryLedger(0)
	}
	return &Driver{
		store:   store,
		catalog: items,
		rng:     NewRand(seed),
		seed:    seed,
		credits: credits,
		ignored: make(map[string]*IgnoredInteraction),
		shown:   make(map[string]bool),
	}
}

// OnEvent registers a fire-and-forget event handler. Handlers run in
// registration order, synchronously, once per occurrence.
func (d *Driver) OnEvent(h Handler) {
	d.handlers = append(d.handlers, h)
}

func (d *Driver) emit(ev Event) {
	d.journal = append(d.journal, ev)
	for _, h := range d.handlers {
		h(ev)
	}
}

// Day returns the current campaign day.
func (d *Driver) Day() int { return d.day }

// Catalog returns the content catalog the driver schedules from.
func (d *Driver) Catalog() []catalog.Item { return d.catalog }

// Seed returns the seed the driver was built with.
func (d *Driver) Seed() int64 { return d.seed }

// DayReport is the output of one day advance: what the presentation layer
// needs to drive the day's encounters and feeds.
type DayReport struct {
	Day              int            `json:"day"`
	Phase            Phase          `json:"phase"`
	EligibleCaptains []string       `json:"eligible_captains,omitempty"`
	Content          []catalog.Item `json:"content,omitempty"`
	Events           []Event        `json:"events,omitempty"`
}

// AdvanceDay moves the campaign to day and runs the daily sequence in
// fixed order: decay, death evaluation, crisis thresholds, escalation,
// cleanup, scheduling. Later steps read state mutated by earlier ones, so
// the order is part of the contract.
func (d *Driver) AdvanceDay(day int) (DayReport, error) {
	if day <= d.day {
		return DayReport{}, fmt.Errorf("%w: current %d, requested %d", ErrDayNotAfterCurrent, d.day, day)
	}
	d.day = day
	journalStart := len(d.journal)

	d.applyDecay()
	d.evaluateDeaths()
	d.evaluateThresholds()
	d.processEscalation()
	d.cleanupCrises()

	report := DayReport{
		Day:              day,
		Phase:            PhaseForDay(day),
		EligibleCaptains: d.eligibleCaptains(),
		Content:          d.contentQueue(),
	}
	report.Events = append(report.Events, d.journal[journalStart:]...)
	d.lastReport = &report

	log.Printf("sim: day %d advanced, %d events, %d captains, %d items",
		day, len(report.Events), len(report.EligibleCaptains), len(report.Content))
	return report, nil
}

// LastReport returns the most recent day report, if a day has run.
func (d *Driver) LastReport() (DayReport, bool) {
	if d.lastReport == nil {
		return DayReport{}, false
	}
	return *d.lastReport, true
}

// RecordDecision routes a decision by entity id: family roles go to the
// member history, anything else to the captain with that id.
func (d *Driver) RecordDecision(entityID string, kind DecisionKind) error {
	if role := Role(entityID); role.Valid() {
		return d.RecordFamilyDecision(role, kind)
	}
	return d.RecordCaptainDecision(entityID, kind)
}

// RecordCaptainDecision appends a decision to a captain's history, stamps
// the encounter, and reclassifies the standing. The captain record is
// created lazily on first reference.
func (d *Driver) RecordCaptainDecision(id string, kind DecisionKind) error {
	if id == "" {
		return fmt.Errorf("%w: empty captain id", ErrUnknownEntity)
	}
	if _, ok := CaptainWeights[kind]; !ok {
		return fmt.Errorf("%w: %q for captain", ErrUnknownDecision, kind)
	}

	c := d.store.EnsureCaptain(id)
	c.Decisions = append(c.Decisions, kind)
	c.EncounterCount++
	if d.day > c.LastEncounterDay {
		c.LastEncounterDay = d.day
	}

	if next := StandingFor(c.Decisions); next != c.Standing {
		c.Standing = next
		d.emit(Event{
			Day:       d.day,
			Type:      EventClassificationChanged,
			CaptainID: c.ID,
			Detail:    string(next),
		})
	}
	return nil
}

// RecordFamilyDecision appends a decision to a member's history and
// reclassifies their standing. Decisions against a dead member succeed as
// no-ops.
func (d *Driver) RecordFamilyDecision(role Role, kind DecisionKind) error {
	if _, ok := FamilyWeights[kind]; !ok {
		return fmt.Errorf("%w: %q for family", ErrUnknownDecision, kind)
	}
	m, ok := d.store.Member(role)
	if !ok {
		return fmt.Errorf("%w: no member %q", ErrUnknownEntity, role)
	}
	if !m.Alive {
		return nil
	}

	prev := FamilyStandingFor(m.Decisions)
	m.Decisions = append(m.Decisions, kind)
	if next := FamilyStandingFor(m.Decisions); next != prev {
		d.emit(Event{
			Day:    d.day,
			Type:   EventClassificationChanged,
			Role:   role,
			Detail: string(next),
		})
	}
	return nil
}

// ResolveCrisis applies one of the fixed responses to an open crisis,
// charges any credits cost, and closes the crisis. A response on a
// now-dead member still closes the crisis; the attribute deltas are
// no-ops.
func (d *Driver) ResolveCrisis(crisisID string, response CrisisResponse) error {
	var crisis *Crisis
	for _, c := range d.crises {
		if c.ID == crisisID && !c.Resolved {
			crisis = c
			break
		}
	}
	if crisis == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCrisis, crisisID)
	}

	effect, ok := crisisResponses[crisis.Type][response]
	if !ok {
		return fmt.Errorf("%w: %q for %s crisis", ErrUnknownResponse, response, crisis.Type)
	}
	if effect.creditsCost > 0 {
		if err := d.credits.Deduct(effect.creditsCost); err != nil {
			return fmt.Errorf("charge crisis response: %w", err)
		}
	}

	if m, ok := d.store.Member(crisis.Role); ok {
		m.Adjust(effect.relationship, effect.happiness, effect.safety, effect.health)
	}
	crisis.Resolved = true
	d.emit(Event{
		Day:      d.day,
		Type:     EventCrisisResolved,
		Role:     crisis.Role,
		CrisisID: crisis.ID,
		Detail:   string(response),
	})
	return nil
}

// rescue constants: a rescue buys the member out of the pending emergency.
const (
	rescueCost        = 200
	rescueHealthBoost = 15
	rescueSafetyBoost = 15
)

// RescueMember clears a pending death warning for the member, charging the
// fixed rescue cost and restoring some health and safety. Rescuing a
// member with no pending warning is a no-op.
func (d *Driver) RescueMember(role Role) error {
	m, ok := d.store.Member(role)
	if !ok {
		return fmt.Errorf("%w: no member %q", ErrUnknownEntity, role)
	}
	if !m.Alive || !m.DeathWarningIssued {
		return nil
	}
	if err := d.credits.Deduct(rescueCost); err != nil {
		return fmt.Errorf("charge rescue: %w", err)
	}
	m.DeathWarningIssued = false
	m.Adjust(0, 0, rescueSafetyBoost, rescueHealthBoost)
	return nil
}

// cleanupCrises drops resolved crises and orphans referencing dead
// members. Internal inconsistency is repaired here, never raised.
func (d *Driver) cleanupCrises() {
	kept := d.crises[:0]
	for _, c := range d.crises {
		if c.Resolved {
			continue
		}
		if m, ok := d.store.Member(c.Role); !ok || !m.Alive {
			continue
		}
		kept = append(kept, c)
	}
	d.crises = kept
}

// hasOpenCrisis enforces the one-unresolved-crisis-per-(member, type) rule.
func (d *Driver) hasOpenCrisis(role Role, kind CrisisType) bool {
	for _, c := range d.crises {
		if !c.Resolved && c.Role == role && c.Type == kind {
			return true
		}
	}
	return false
}

// triggerCrisis creates a crisis unless one of the pair is already open.
// Duplicate triggers are legitimate re-evaluations, never errors.
func (d *Driver) triggerCrisis(role Role, kind CrisisType) {
	if d.hasOpenCrisis(role, kind) {
		return
	}
	c := newCrisis(role, kind, d.day)
	d.crises = append(d.crises, c)
	d.emit(Event{Day: d.day, Type: EventCrisisTriggered, Role: role, CrisisID: c.ID, Detail: string(kind)})
}

// FamilySnapshots returns read-only copies of every family member.
func (d *Driver) FamilySnapshots() []MemberSnapshot {
	members := d.store.Members()
	out := make([]MemberSnapshot, 0, len(members))
	for _, m := range members {
		out = append(out, snapshotMember(m, d.day))
	}
	return out
}

// FamilySnapshot returns a read-only copy of one member.
func (d *Driver) FamilySnapshot(role Role) (MemberSnapshot, error) {
	m, ok := d.store.Member(role)
	if !ok {
		return MemberSnapshot{}, fmt.Errorf("%w: no member %q", ErrUnknownEntity, role)
	}
	return snapshotMember(m, d.day), nil
}

// CaptainSnapshots returns read-only copies of every known captain.
func (d *Driver) CaptainSnapshots() []CaptainSnapshot {
	captains := d.store.Captains()
	out := make([]CaptainSnapshot, 0, len(captains))
	for _, c := range captains {
		out = append(out, snapshotCaptain(c))
	}
	return out
}

// CaptainSnapshot returns a read-only copy of one captain.
func (d *Driver) CaptainSnapshot(id string) (CaptainSnapshot, error) {
	c, ok := d.store.Captain(id)
	if !ok {
		return CaptainSnapshot{}, fmt.Errorf("%w: no captain %q", ErrUnknownEntity, id)
	}
	return snapshotCaptain(c), nil
}

// OpenCrises returns copies of the unresolved crises.
func (d *Driver) OpenCrises() []Crisis {
	var out []Crisis
	for _, c := range d.crises {
		if !c.Resolved {
			out = append(out, *c)
		}
	}
	return out
}

// Journal returns a copy of the full event journal.
func (d *Driver) Journal() []Event {
	out := make([]Event, len(d.journal))
	copy(out, d.journal)
	return out
}
