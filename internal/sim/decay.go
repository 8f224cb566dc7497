package sim

// dailyRelationshipDecay is subtracted from relationship each day for
// every living member whose role is not decay-exempt.
const dailyRelationshipDecay = 1

// Death penalty applied to every other living member when someone dies.
const (
	deathHappinessPenalty    = 20
	deathRelationshipPenalty = 10
)

// deathCurve maps risk (min of health and safety) to a daily death
// probability. Control points are interpolated linearly; the curve is
// monotonically non-increasing and reaches zero at risk 80.
var deathCurve = []struct {
	risk int
	p    float64
}{
	{0, 0.10},
	{20, 0.05},
	{40, 0.03},
	{60, 0.01},
	{80, 0},
}

// deathProbability interpolates the curve for a risk value.
func deathProbability(risk int) float64 {
	if risk >= deathCurve[len(deathCurve)-1].risk {
		return 0
	}
	if risk <= deathCurve[0].risk {
		return deathCurve[0].p
	}
	for i := 1; i < len(deathCurve); i++ {
		lo, hi := deathCurve[i-1], deathCurve[i]
		if risk <= hi.risk {
			frac := float64(risk-lo.risk) / float64(hi.risk-lo.risk)
			return lo.p + frac*(hi.p-lo.p)
		}
	}
	return 0
}

// applyDecay runs passive relationship decay for every living, non-exempt
// member. Decay runs before anything else in the day.
func (d *Driver) applyDecay() {
	for _, m := range d.store.LivingMembers() {
		if decayExempt[m.Role] {
			continue
		}
		m.Adjust(-dailyRelationshipDecay, 0, 0, 0)
	}
}

// evaluateDeaths draws the daily death trial for each living member.
//
// Death is a two-step process. The first successful trial only sets the
// warning flag and surfaces a rescuable emergency; a later successful
// trial while the flag is still set executes the death. A failed trial
// clears nothing: the warning persists until rescued or fatal.
func (d *Driver) evaluateDeaths() {
	for _, m := range d.store.LivingMembers() {
		p := deathProbability(m.Risk())
		if p <= 0 {
			continue
		}
		if !bernoulli(d.rng, p) {
			continue
		}

		if !m.DeathWarningIssued {
			m.DeathWarningIssued = true
			d.emit(Event{Day: d.day, Type: EventDeathWarning, Role: m.Role})
			continue
		}
		d.executeDeath(m)
	}
}

// executeDeath makes a death permanent: the member is frozen, the cause is
// stamped, and every other living member takes the loss.
func (d *Driver) executeDeath(m *FamilyMember) {
	m.Alive = false
	m.DeathDay = d.day
	m.DeathCause = causeOfDeath(m)

	for _, other := range d.store.LivingMembers() {
		other.Adjust(-deathRelationshipPenalty, -deathHappinessPenalty, 0, 0)
	}
	d.emit(Event{Day: d.day, Type: EventEntityDeath, Role: m.Role, Detail: string(m.DeathCause)})
}

// causeOfDeath derives the cause from role and story tokens. Contacting
// the rebels marks the member for reprisal regardless of role.
func causeOfDeath(m *FamilyMember) DeathCause {
	if m.HasToken(TokenContactedRebels) {
		return CauseRebelReprisal
	}
	if cause, ok := defaultDeathCause[m.Role]; ok {
		return cause
	}
	return CauseAccident
}

// evaluateThresholds runs the three independent crisis checks for every
// living member, after decay. Concurrent conditions create independent
// crises; open pairs are skipped by the dedup rule.
func (d *Driver) evaluateThresholds() {
	for _, m := range d.store.LivingMembers() {
		for _, check := range crisisFloors {
			if check.value(m) < check.floor {
				d.triggerCrisis(m.Role, check.kind)
			}
		}
	}
}
