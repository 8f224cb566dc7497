package sim

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

func TestAdvanceDayOnlyMovesForward(t *testing.T) {
	d := testDriver(t, nil)
	if _, err := d.AdvanceDay(3); err != nil {
		t.Fatalf("AdvanceDay(3): %v", err)
	}
	if _, err := d.AdvanceDay(3); !errors.Is(err, ErrDayNotAfterCurrent) {
		t.Errorf("same day: err = %v, want ErrDayNotAfterCurrent", err)
	}
	if _, err := d.AdvanceDay(1); !errors.Is(err, ErrDayNotAfterCurrent) {
		t.Errorf("earlier day: err = %v, want ErrDayNotAfterCurrent", err)
	}
	if d.Day() != 3 {
		t.Errorf("day = %d, want 3 after rejected advances", d.Day())
	}

	// Skipping days is fine; only going backwards is not.
	if _, err := d.AdvanceDay(7); err != nil {
		t.Errorf("AdvanceDay(7): %v", err)
	}
}

// TestSeedDeterminism runs two campaigns with the same seed and the same
// player inputs and requires identical state and journals at the end.
func TestSeedDeterminism(t *testing.T) {
	items := []catalog.Item{
		{ID: "news-1", Category: catalog.CategoryNews, MinDay: 1, MaxDay: 30, Probability: 0.5},
		{ID: "fam-partner", Category: catalog.CategoryMessage, Role: "partner", MinDay: 1, MaxDay: 30, Probability: 0.6},
		{ID: "dlg-1", Category: catalog.CategoryDialog, MinDay: 10, MaxDay: 20, Probability: 0.4},
	}

	run := func() *Driver {
		d := NewDriver(NewHousehold(nil), items, 42, NewMemoryLedger(10_000))
		for day := 1; day <= 30; day++ {
			if _, err := d.AdvanceDay(day); err != nil {
				t.Fatalf("AdvanceDay(%d): %v", day, err)
			}
			switch day {
			case 2:
				if err := d.RecordCaptainDecision("cap-1", DecisionAcceptBribe); err != nil {
					t.Fatalf("day %d: %v", day, err)
				}
			case 4:
				if err := d.RecordFamilyDecision(RoleSon, DecisionRefuse); err != nil {
					t.Fatalf("day %d: %v", day, err)
				}
			case 6, 7, 8:
				if err := d.RecordIgnored("msg-1", RoleDaughter); err != nil {
					t.Fatalf("day %d: %v", day, err)
				}
			}
		}
		return d
	}

	// Crisis ids are random uuids, not drawn from the campaign seed; scrub
	// them so the comparison covers everything the seed controls.
	scrubState := func(s CampaignState) CampaignState {
		for i := range s.Crises {
			s.Crises[i].ID = ""
		}
		return s
	}
	scrubJournal := func(events []Event) []Event {
		for i := range events {
			events[i].CrisisID = ""
		}
		return events
	}

	a, b := run(), run()
	if !reflect.DeepEqual(scrubState(a.ExportState()), scrubState(b.ExportState())) {
		t.Error("states diverged for identical seed and inputs")
	}
	if !reflect.DeepEqual(scrubJournal(a.Journal()), scrubJournal(b.Journal())) {
		t.Error("journals diverged for identical seed and inputs")
	}
}

func TestResolveCrisis(t *testing.T) {
	d := testDriver(t, nil)
	son := member(t, d, RoleSon)
	son.Health = 25

	d.rng = denyAll{}
	if _, err := d.AdvanceDay(1); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}
	open := d.OpenCrises()
	if len(open) != 1 {
		t.Fatalf("open crises = %d, want 1", len(open))
	}
	crisis := open[0]

	if err := d.ResolveCrisis(crisis.ID, ResponseSendMedic); err != nil {
		t.Fatalf("ResolveCrisis: %v", err)
	}
	if son.Health != 60 {
		t.Errorf("health = %d, want 60", son.Health)
	}
	if son.Relationship != 54 {
		t.Errorf("relationship = %d, want 54", son.Relationship)
	}
	if bal := d.credits.(*MemoryLedger).Balance; bal != 9_850 {
		t.Errorf("balance = %d, want 9850", bal)
	}
	if got := len(d.OpenCrises()); got != 0 {
		t.Errorf("open crises = %d after resolution", got)
	}

	// A resolved crisis cannot be resolved again.
	if err := d.ResolveCrisis(crisis.ID, ResponseSendMedic); !errors.Is(err, ErrUnknownCrisis) {
		t.Errorf("double resolve: err = %v, want ErrUnknownCrisis", err)
	}
}

func TestResolveCrisisValidation(t *testing.T) {
	d := testDriver(t, nil)
	son := member(t, d, RoleSon)
	son.Health = 25

	d.rng = denyAll{}
	if _, err := d.AdvanceDay(1); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}
	crisis := d.OpenCrises()[0]

	if err := d.ResolveCrisis("nope", ResponseSendMedic); !errors.Is(err, ErrUnknownCrisis) {
		t.Errorf("bad id: err = %v, want ErrUnknownCrisis", err)
	}
	// post_guard belongs to security crises, not medical ones.
	if err := d.ResolveCrisis(crisis.ID, ResponsePostGuard); !errors.Is(err, ErrUnknownResponse) {
		t.Errorf("bad response: err = %v, want ErrUnknownResponse", err)
	}
	if got := len(d.OpenCrises()); got != 1 {
		t.Errorf("open crises = %d, rejected responses must not close", got)
	}
}

func TestResolveCrisisInsufficientCredits(t *testing.T) {
	d := NewDriver(NewHousehold(nil), nil, 1, NewMemoryLedger(10))
	son, _ := d.store.Member(RoleSon)
	son.Health = 25

	d.rng = denyAll{}
	if _, err := d.AdvanceDay(1); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}
	crisis := d.OpenCrises()[0]

	if err := d.ResolveCrisis(crisis.ID, ResponseSendMedic); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	if son.Health != 25 {
		t.Errorf("health changed on failed charge: %d", son.Health)
	}
	if got := len(d.OpenCrises()); got != 1 {
		t.Errorf("open crises = %d, failed charge must not close", got)
	}

	// The free option still works.
	if err := d.ResolveCrisis(crisis.ID, ResponseHomeRemedy); err != nil {
		t.Fatalf("ResolveCrisis: %v", err)
	}
	if son.Health != 40 {
		t.Errorf("health = %d, want 40", son.Health)
	}
}

func TestRescueMember(t *testing.T) {
	d := testDriver(t, nil)
	baby := member(t, d, RoleBaby)
	baby.Health = 20
	baby.Safety = 40
	baby.DeathWarningIssued = true

	if err := d.RescueMember(RoleBaby); err != nil {
		t.Fatalf("RescueMember: %v", err)
	}
	if baby.DeathWarningIssued {
		t.Error("warning flag still set after rescue")
	}
	if baby.Health != 35 || baby.Safety != 55 {
		t.Errorf("health/safety = %d/%d, want 35/55", baby.Health, baby.Safety)
	}
	if bal := d.credits.(*MemoryLedger).Balance; bal != 9_800 {
		t.Errorf("balance = %d, want 9800", bal)
	}

	// No pending warning: a rescue is a free no-op.
	if err := d.RescueMember(RoleBaby); err != nil {
		t.Fatalf("second rescue: %v", err)
	}
	if bal := d.credits.(*MemoryLedger).Balance; bal != 9_800 {
		t.Errorf("no-op rescue charged credits: %d", bal)
	}

	if err := d.RescueMember(Role("cousin")); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("unknown role: err = %v, want ErrUnknownEntity", err)
	}
}

func TestRescueInsufficientCredits(t *testing.T) {
	d := NewDriver(NewHousehold(nil), nil, 1, NewMemoryLedger(50))
	baby, _ := d.store.Member(RoleBaby)
	baby.DeathWarningIssued = true

	if err := d.RescueMember(RoleBaby); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	if !baby.DeathWarningIssued {
		t.Error("failed charge cleared the warning")
	}
}

func TestRecordDecisionRoutesByEntityID(t *testing.T) {
	d := testDriver(t, nil)

	if err := d.RecordDecision("partner", DecisionComfort); err != nil {
		t.Fatalf("family route: %v", err)
	}
	if got := len(member(t, d, RolePartner).Decisions); got != 1 {
		t.Errorf("partner decisions = %d, want 1", got)
	}

	if err := d.RecordDecision("cap-9", DecisionApprove); err != nil {
		t.Fatalf("captain route: %v", err)
	}
	if _, ok := d.store.Captain("cap-9"); !ok {
		t.Error("captain not created lazily")
	}

	if err := d.RecordDecision("partner", DecisionApprove); !errors.Is(err, ErrUnknownDecision) {
		t.Errorf("captain kind on family: err = %v, want ErrUnknownDecision", err)
	}
	if err := d.RecordDecision("cap-9", DecisionComfort); !errors.Is(err, ErrUnknownDecision) {
		t.Errorf("family kind on captain: err = %v, want ErrUnknownDecision", err)
	}
}

func TestCaptainEncounterStamping(t *testing.T) {
	d := testDriver(t, nil)
	d.day = 5

	if err := d.RecordCaptainDecision("cap-1", DecisionAcceptBribe); err != nil {
		t.Fatalf("RecordCaptainDecision: %v", err)
	}
	c, _ := d.store.Captain("cap-1")
	if c.EncounterCount != 1 || c.LastEncounterDay != 5 {
		t.Errorf("count/day = %d/%d, want 1/5", c.EncounterCount, c.LastEncounterDay)
	}
	if c.Standing != StandingFriendly {
		t.Errorf("standing = %q, want friendly", c.Standing)
	}

	found := false
	for _, ev := range d.Journal() {
		if ev.Type == EventClassificationChanged && ev.CaptainID == "cap-1" {
			found = true
		}
	}
	if !found {
		t.Error("no classification event emitted")
	}
}

func TestFamilyDecisionOnDeadMemberIsNoOp(t *testing.T) {
	d := testDriver(t, nil)
	partner := member(t, d, RolePartner)
	partner.Alive = false

	if err := d.RecordFamilyDecision(RolePartner, DecisionComfort); err != nil {
		t.Fatalf("RecordFamilyDecision: %v", err)
	}
	if got := len(partner.Decisions); got != 0 {
		t.Errorf("dead member history grew to %d", got)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	d := testDriver(t, nil)
	if err := d.RecordCaptainDecision("cap-1", DecisionApprove); err != nil {
		t.Fatalf("RecordCaptainDecision: %v", err)
	}

	fam, err := d.FamilySnapshot(RolePartner)
	if err != nil {
		t.Fatalf("FamilySnapshot: %v", err)
	}
	fam.Relationship = 0
	if got := member(t, d, RolePartner).Relationship; got != 50 {
		t.Errorf("snapshot write leaked: relationship = %d", got)
	}

	cs, err := d.CaptainSnapshot("cap-1")
	if err != nil {
		t.Fatalf("CaptainSnapshot: %v", err)
	}
	cs.Decisions[0] = DecisionTractorBeam
	c, _ := d.store.Captain("cap-1")
	if c.Decisions[0] != DecisionApprove {
		t.Errorf("snapshot write leaked: decision = %q", c.Decisions[0])
	}
}

func TestEventHandlersSeeTheJournal(t *testing.T) {
	d := testDriver(t, nil)
	var seen []Event
	d.OnEvent(func(ev Event) { seen = append(seen, ev) })

	member(t, d, RoleSon).Health = 25
	d.rng = denyAll{}
	if _, err := d.AdvanceDay(1); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}

	if !reflect.DeepEqual(seen, d.Journal()) {
		t.Errorf("handler saw %v, journal has %v", seen, d.Journal())
	}
}
