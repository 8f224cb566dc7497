package sim

// DecisionKind identifies a player decision recorded against an entity.
// Captain-facing and family-facing kinds share one namespace because the
// scorer only cares about the weight table it is given.
type DecisionKind string

// Checkpoint decisions toward captains.
const (
	DecisionApprove     DecisionKind = "approve"
	DecisionDeny        DecisionKind = "deny"
	DecisionInspect     DecisionKind = "inspect"
	DecisionAcceptBribe DecisionKind = "accept_bribe"
	DecisionReportBribe DecisionKind = "report_bribe"
	DecisionTractorBeam DecisionKind = "tractor_beam"
)

// Decisions toward family members.
const (
	DecisionComfort     DecisionKind = "comfort"
	DecisionVisit       DecisionKind = "visit"
	DecisionSendCredits DecisionKind = "send_credits"
	DecisionRefuse      DecisionKind = "refuse"
	DecisionReprimand   DecisionKind = "reprimand"
)

// WeightTable maps decision kinds to signed weights. Higher-stakes
// decisions carry larger magnitudes.
type WeightTable map[DecisionKind]int

// CaptainWeights scores checkpoint history. Accepting a bribe buys a lot
// of goodwill; a tractor beam burns it.
var CaptainWeights = WeightTable{
	DecisionApprove:     1,
	DecisionDeny:        -1,
	DecisionInspect:     -1,
	DecisionAcceptBribe: 3,
	DecisionReportBribe: -2,
	DecisionTractorBeam: -3,
}

// FamilyWeights scores decisions directed at a family member.
var FamilyWeights = WeightTable{
	DecisionComfort:     1,
	DecisionVisit:       1,
	DecisionSendCredits: 2,
	DecisionRefuse:      -2,
	DecisionReprimand:   -1,
}

// Leaning is the scorer's three-way output.
type Leaning int

const (
	LeanNeutral Leaning = iota
	LeanPositive
	LeanNegative
)

// classifyMargin is how far the positive and negative sums must diverge
// before the history stops reading as neutral.
const classifyMargin = 2

// Score classifies an ordered decision history against a weight table.
//
// Each decision contributes its signed weight. The most recent decision
// additionally contributes one extra point in the direction of its base
// weight (recency emphasis, applied once, never compounded). Positive wins
// when the positive sum exceeds the negative sum by more than the margin;
// the mirror holds for negative; anything else is neutral.
//
// Score is a pure function of its inputs: same history, same answer.
func Score(history []DecisionKind, weights WeightTable) Leaning {
	if len(history) == 0 {
		return LeanNeutral
	}

	positive, negative := 0, 0
	for _, kind := range history {
		w := weights[kind]
		switch {
		case w > 0:
			positive += w
		case w < 0:
			negative += -w
		}
	}

	// Recency emphasis for the latest decision.
	switch last := weights[history[len(history)-1]]; {
	case last > 0:
		positive++
	case last < 0:
		negative++
	}

	switch {
	case positive-negative > classifyMargin:
		return LeanPositive
	case negative-positive > classifyMargin:
		return LeanNegative
	}
	return LeanNeutral
}

// StandingFor maps a captain's history to a standing. An empty history is
// always FirstMeeting; a recorded history never is.
func StandingFor(history []DecisionKind) CaptainStanding {
	if len(history) == 0 {
		return StandingFirstMeeting
	}
	switch Score(history, CaptainWeights) {
	case LeanPositive:
		return StandingFriendly
	case LeanNegative:
		return StandingHostile
	}
	return StandingNeutral
}

// FamilyStanding classifies how a family member reads the player's recent
// treatment of them. It gates crisis-flavored dialog, not crisis creation.
type FamilyStanding string

const (
	FamilySupportive FamilyStanding = "supportive"
	FamilySteady     FamilyStanding = "steady"
	FamilyStrained   FamilyStanding = "strained"
)

// FamilyStandingFor maps a member's decision history to a standing.
func FamilyStandingFor(history []DecisionKind) FamilyStanding {
	switch Score(history, FamilyWeights) {
	case LeanPositive:
		return FamilySupportive
	case LeanNegative:
		return FamilyStrained
	}
	return FamilySteady
}
