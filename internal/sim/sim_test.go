package sim

import (
	"testing"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

// scriptedRand replays a fixed sequence of draws so tests can force or
// deny individual Bernoulli trials. When the script runs out, Float64
// returns 1.0 (every trial fails) and Intn returns 0.
type scriptedRand struct {
	draws []float64
	ints  []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.draws) == 0 {
		return 1.0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

// forceAll always succeeds every trial.
type forceAll struct{}

func (forceAll) Float64() float64 { return 0 }
func (forceAll) Intn(n int) int   { return 0 }

// denyAll always fails every trial.
type denyAll struct{}

func (denyAll) Float64() float64 { return 1 }
func (denyAll) Intn(n int) int   { return 0 }

func testDriver(t *testing.T, items []catalog.Item) *Driver {
	t.Helper()
	return NewDriver(NewHousehold(nil), items, 1, NewMemoryLedger(10_000))
}

func member(t *testing.T, d *Driver, role Role) *FamilyMember {
	t.Helper()
	m, ok := d.store.Member(role)
	if !ok {
		t.Fatalf("no member %q", role)
	}
	return m
}

// checkBounds fails if any attribute of any member has left [0,100].
func checkBounds(t *testing.T, d *Driver) {
	t.Helper()
	for _, m := range d.store.Members() {
		for name, v := range map[string]int{
			"relationship": m.Relationship,
			"happiness":    m.Happiness,
			"safety":       m.Safety,
			"health":       m.Health,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s %s = %d, outside [0,100]", m.Role, name, v)
			}
		}
	}
}
