package component

import "gravedelve/internal/ecs"

const CHealth ecs.ComponentType = 2

// Health tracks hit points. Max is always BaseMax + ConBonus; the pieces are
// kept separate because split thresholds and several scaling rules compare
// against BaseMax, not the constitution-adjusted total.
type Health struct {
	Current  int
	BaseMax  int
	ConBonus int
}

func (Health) Type() ecs.ComponentType { return CHealth }

// Max returns the effective hit point ceiling.
func (h Health) Max() int { return h.BaseMax + h.ConBonus }
