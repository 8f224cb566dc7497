package sim

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

// TestStateRoundTrip plays a campaign with every kind of state present,
// exports it, restores it, and requires the re-export to match exactly.
func TestStateRoundTrip(t *testing.T) {
	items := []catalog.Item{
		{ID: "news-1", Category: catalog.CategoryNews, MinDay: 1, MaxDay: 30, Probability: 1},
		{ID: "fam-son", Category: catalog.CategoryMessage, Role: "son", MinDay: 1, MaxDay: 30, Probability: 1},
	}
	d := testDriver(t, items)

	if err := d.RecordCaptainDecision("cap-1", DecisionAcceptBribe); err != nil {
		t.Fatalf("RecordCaptainDecision: %v", err)
	}
	if err := d.RecordFamilyDecision(RolePartner, DecisionComfort); err != nil {
		t.Fatalf("RecordFamilyDecision: %v", err)
	}
	if err := d.RecordIgnored("msg-1", RoleDaughter); err != nil {
		t.Fatalf("RecordIgnored: %v", err)
	}
	member(t, d, RoleSon).Health = 25
	member(t, d, RoleBaby).DeathWarningIssued = true
	member(t, d, RoleDroid).AddToken(TokenSlicedComms)

	d.rng = denyAll{}
	if _, err := d.AdvanceDay(4); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}

	state := d.ExportState()
	if len(state.Crises) == 0 {
		t.Fatal("scenario produced no open crisis")
	}
	if len(state.ShownContent) == 0 {
		t.Fatal("scenario surfaced no content")
	}

	restored := RestoreDriver(state, items, NewMemoryLedger(10_000))
	if restored.Day() != 4 {
		t.Errorf("restored day = %d, want 4", restored.Day())
	}
	if !reflect.DeepEqual(restored.ExportState(), state) {
		t.Errorf("round trip drifted:\n got %+v\nwant %+v", restored.ExportState(), state)
	}
}

func TestRestoredDriverKeepsDayContract(t *testing.T) {
	d := testDriver(t, nil)
	d.rng = denyAll{}
	if _, err := d.AdvanceDay(10); err != nil {
		t.Fatalf("AdvanceDay: %v", err)
	}

	restored := RestoreDriver(d.ExportState(), nil, NewMemoryLedger(0))
	if _, err := restored.AdvanceDay(10); !errors.Is(err, ErrDayNotAfterCurrent) {
		t.Errorf("err = %v, want ErrDayNotAfterCurrent", err)
	}
	if _, err := restored.AdvanceDay(11); err != nil {
		t.Errorf("AdvanceDay(11): %v", err)
	}
}

func TestRestoreClampsCorruptAttributes(t *testing.T) {
	state := CampaignState{
		Day:  3,
		Seed: 1,
		Members: []MemberState{
			{Role: RolePartner, Name: "p", Relationship: 140, Happiness: -5, Safety: 50, Health: 50, Alive: true},
		},
	}
	d := RestoreDriver(state, nil, NewMemoryLedger(0))
	m, ok := d.store.Member(RolePartner)
	if !ok {
		t.Fatal("member not restored")
	}
	if m.Relationship != 100 || m.Happiness != 0 {
		t.Errorf("relationship/happiness = %d/%d, want 100/0", m.Relationship, m.Happiness)
	}
}
