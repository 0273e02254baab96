package component

import "gravedelve/internal/ecs"

const CPlague ecs.ComponentType = 9

// Plague is the damage-over-time infection spread by plague-bearing attacks.
// It ticks once per turn and may jump to adjacent combatants.
type Plague struct {
	DamagePerTurn  int
	TurnsRemaining int
	SpreadChance   int // 0-100 percent, rolled once per turn per neighbor
}

func (Plague) Type() ecs.ComponentType { return CPlague }
