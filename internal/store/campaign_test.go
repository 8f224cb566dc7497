package store

import (
	"reflect"
	"testing"

	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testState() sim.CampaignState {
	return sim.CampaignState{
		Day:  12,
		Seed: 42,
		Members: []sim.MemberState{
			{
				Role: sim.RolePartner, Name: "Maren",
				Relationship: 38, Happiness: 55, Safety: 61, Health: 70,
				Alive:  true,
				Tokens: []sim.Token{sim.TokenContactedRebels},
				Decisions: []sim.DecisionKind{
					sim.DecisionComfort, sim.DecisionRefuse,
				},
				DeathWarning: true,
				LastPopupDay: 9,
			},
			{
				Role: sim.RoleSon, Name: "Dex",
				Relationship: 44, Happiness: 50, Safety: 50, Health: 50,
				Alive: true,
			},
			{
				Role: sim.RoleDroid, Name: "KT-7",
				Relationship: 30, Happiness: 20, Safety: 10, Health: 0,
				Alive: false, DeathDay: 11, DeathCause: sim.CauseSystemsFailure,
			},
		},
		Captains: []sim.CaptainState{
			{
				ID: "cap-antilles", Standing: sim.StandingHostile,
				EncounterCount: 2, LastEncounterDay: 10,
				Decisions: []sim.DecisionKind{sim.DecisionDeny, sim.DecisionTractorBeam},
			},
			{ID: "cap-piett", Standing: sim.StandingFirstMeeting},
		},
		Crises: []sim.Crisis{
			{ID: "crisis-1", Role: sim.RoleSon, Type: sim.CrisisMedical, Day: 12},
		},
		Ignored: []sim.IgnoredInteraction{
			{MessageID: "msg-7", Role: sim.RolePartner, DaysIgnored: 4, ActionFired: true},
		},
		ShownContent: []string{"news-3", "fam-partner-1"},
	}
}

func TestCampaignRoundTrip(t *testing.T) {
	db := testDB(t)
	want := testState()

	if err := db.SaveCampaign(want); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	got, found, err := db.LoadCampaign()
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if !found {
		t.Fatal("campaign not found after save")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip drifted:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadCampaignEmpty(t *testing.T) {
	db := testDB(t)
	_, found, err := db.LoadCampaign()
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if found {
		t.Error("found a campaign in an empty database")
	}
}

func TestSaveCampaignReplaces(t *testing.T) {
	db := testDB(t)
	first := testState()
	if err := db.SaveCampaign(first); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	second := testState()
	second.Day = 13
	second.Crises = nil
	second.Ignored = nil
	second.ShownContent = append(second.ShownContent, "news-4")
	if err := db.SaveCampaign(second); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	got, found, err := db.LoadCampaign()
	if err != nil || !found {
		t.Fatalf("LoadCampaign: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("load = %+v, want the replacing state", got)
	}
}

func TestSaveCampaignPreservesCredits(t *testing.T) {
	db := testDB(t)
	ledger, err := NewLedger(db, 500)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}

	if err := db.SaveCampaign(testState()); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	balance, err := ledger.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 500 {
		t.Errorf("balance = %d after save, want 500", balance)
	}
}

func TestResetCampaign(t *testing.T) {
	db := testDB(t)
	if err := db.SaveCampaign(testState()); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	if err := db.ResetCampaign(); err != nil {
		t.Fatalf("ResetCampaign: %v", err)
	}

	_, found, err := db.LoadCampaign()
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if found {
		t.Error("campaign survived reset")
	}

	var shown int
	if err := db.QueryRow("SELECT COUNT(*) FROM shown_content").Scan(&shown); err != nil {
		t.Fatalf("count shown: %v", err)
	}
	if shown != 0 {
		t.Errorf("shown_content rows = %d after reset", shown)
	}
}
