package sim

import (
	"sort"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

// Captain return tuning.
const (
	captainBaseChance     = 0.30
	captainMaxAppearances = 3
	captainCooldownDays   = 2
)

// Return-chance multipliers by standing, plus the story-significance bump.
const (
	hostileReturnMultiplier      = 1.5
	friendlyReturnMultiplier     = 1.2
	significanceReturnMultiplier = 1.3
)

// Family popup tuning: at most this many family-originated items surface
// per day, and a member only becomes due again after the cadence gap.
const (
	familyPopupCap     = 2
	familyPopupCadence = 3
)

// storySignificant reports whether a captain carries narrative weight: a
// non-neutral standing, or a bribe or tractor-beam moment in their past.
func storySignificant(c *Captain) bool {
	if c.Standing == StandingFriendly || c.Standing == StandingHostile {
		return true
	}
	for _, kind := range c.Decisions {
		if kind == DecisionAcceptBribe || kind == DecisionTractorBeam {
			return true
		}
	}
	return false
}

// eligibleCaptains rolls return eligibility for every known captain.
// Unknown captains never return through this path; capped captains are out
// permanently; cooldown only blocks the current day.
func (d *Driver) eligibleCaptains() []string {
	var out []string
	for _, c := range d.store.Captains() {
		if len(c.Decisions) == 0 {
			continue
		}
		if c.EncounterCount >= captainMaxAppearances {
			continue
		}
		if d.day-c.LastEncounterDay < captainCooldownDays {
			continue
		}

		chance := captainBaseChance
		switch c.Standing {
		case StandingHostile:
			chance *= hostileReturnMultiplier
		case StandingFriendly:
			chance *= friendlyReturnMultiplier
		}
		if storySignificant(c) {
			chance *= significanceReturnMultiplier
		}
		if bernoulli(d.rng, chance) {
			out = append(out, c.ID)
		}
	}
	return out
}

// contentQueue builds today's ordered, deduplicated content queue.
//
// Family-originated items are gated by the popup cap: the due members are
// computed first (cadence since their last surfaced item), sampled down to
// the cap, and only their items proceed to the per-item checks. Every item
// then passes the day-range check, the campaign-wide shown-id set, and its
// own appearance trial. A failed trial leaves the item eligible on a later
// day; a successful one retires the id for the whole campaign.
func (d *Driver) contentQueue() []catalog.Item {
	allowed := d.dueFamilyRoles()

	var queue []catalog.Item
	for _, it := range d.catalog {
		if !it.InRange(d.day) {
			continue
		}
		if d.shown[it.ID] {
			continue
		}
		role := Role(it.Role)
		if it.Role != "" && !allowed[role] {
			continue
		}
		if !bernoulli(d.rng, it.Probability) {
			continue
		}

		d.shown[it.ID] = true
		if it.Role != "" {
			if m, ok := d.store.Member(role); ok {
				m.LastPopupDay = d.day
			}
		}
		queue = append(queue, it)
	}
	return queue
}

// dueFamilyRoles selects which members may surface a popup today: living
// members past their cadence, randomly sampled down to the daily cap.
func (d *Driver) dueFamilyRoles() map[Role]bool {
	var due []Role
	for _, m := range d.store.LivingMembers() {
		if d.day-m.LastPopupDay >= familyPopupCadence {
			due = append(due, m.Role)
		}
	}

	for len(due) > familyPopupCap {
		drop := d.rng.Intn(len(due))
		due = append(due[:drop], due[drop+1:]...)
	}

	allowed := make(map[Role]bool, len(due))
	for _, role := range due {
		allowed[role] = true
	}
	return allowed
}

// ShownContentIDs returns the persistent shown-id set: catalog order
// first, then any ids restored from an older catalog, sorted. The set only
// ever grows within a campaign; starting a new campaign is the single
// reset path.
func (d *Driver) ShownContentIDs() []string {
	var out []string
	seen := make(map[string]bool, len(d.shown))
	for _, it := range d.catalog {
		if d.shown[it.ID] {
			out = append(out, it.ID)
			seen[it.ID] = true
		}
	}
	var extra []string
	for id := range d.shown {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
