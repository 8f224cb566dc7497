package sim

import "testing"

func TestPhaseForDay(t *testing.T) {
	cases := []struct {
		day  int
		want Phase
	}{
		{1, PhaseSetup},
		{7, PhaseSetup},
		{8, PhaseEscalation},
		{16, PhaseEscalation},
		{17, PhaseCrisis},
		{26, PhaseCrisis},
		{27, PhaseResolution},
		{60, PhaseResolution},
	}
	for _, tc := range cases {
		if got := PhaseForDay(tc.day); got != tc.want {
			t.Errorf("PhaseForDay(%d) = %q, want %q", tc.day, got, tc.want)
		}
	}
}

func TestAdjustClamps(t *testing.T) {
	m := NewFamilyMember(RoleSon, "Dex")
	m.Adjust(100, -100, 0, 0)
	if m.Relationship != 100 {
		t.Errorf("relationship = %d, want 100", m.Relationship)
	}
	if m.Happiness != 0 {
		t.Errorf("happiness = %d, want 0", m.Happiness)
	}
}

func TestRiskIsWeakerAttribute(t *testing.T) {
	m := NewFamilyMember(RoleSon, "Dex")
	m.Health = 20
	m.Safety = 70
	if got := m.Risk(); got != 20 {
		t.Errorf("Risk() = %d, want 20", got)
	}
	m.Safety = 10
	if got := m.Risk(); got != 10 {
		t.Errorf("Risk() = %d, want 10", got)
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("%q not valid", role)
		}
	}
	if Role("cousin").Valid() {
		t.Error("cousin accepted as a role")
	}
}
