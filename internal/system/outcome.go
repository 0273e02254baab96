package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
)

// OutcomeKind is the closed set of results a single HP-reducing event can
// have. Every damage event produces exactly one of these; an entity is never
// both split and dead from the same hit.
type OutcomeKind uint8

const (
	OutcomeNone    OutcomeKind = iota // miss, or target had nothing to damage
	OutcomeDamaged                    // HP reduced, target survives
	OutcomeSplit                      // split-under-pressure fired instead of death
	OutcomeDied                       // HP reached zero, death finalized
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDamaged:
		return "damaged"
	case OutcomeSplit:
		return "split"
	case OutcomeDied:
		return "died"
	}
	return "none"
}

// SplitPlan is the pending replacement of a combatant by its offspring. It is
// produced by CheckSplitTrigger and consumed exactly once by ExecuteSplit.
type SplitPlan struct {
	Parent ecs.EntityID
	Origin component.Position

	ChildKind   string
	MinChildren int
	MaxChildren int
	Weights     []int
}

// DamageOutcome is the authoritative result of one damage event. Callers
// must treat it as the only signal for post-event entity state: a split or
// died outcome means the target reference is no longer safe to use.
type DamageOutcome struct {
	Kind   OutcomeKind
	Target ecs.EntityID

	// Attack-roll detail, populated by ResolveAttack only.
	Attacker ecs.EntityID
	Hit      bool
	Crit     bool

	Amount      int // damage actually applied
	RemainingHP int

	// Death detail: experience for the killer and who dealt the blow.
	XP     int
	Killer ecs.EntityID

	// Split detail.
	Plan     *SplitPlan
	Children []ecs.EntityID // populated once the plan has been executed
}
