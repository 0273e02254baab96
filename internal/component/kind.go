package component

import "gravedelve/internal/ecs"

const CKind ecs.ComponentType = 5

// Kind identifies what a combatant is ("skeleton", "gravemold", ...) and
// carries the shield-wall membership rule for that kind.
type Kind struct {
	Name string

	// ShieldWall marks kinds that gain armor from orthogonally-adjacent
	// living allies of the same Name. AllyArmorBonus is the AC gained per
	// such ally; there is no cap.
	ShieldWall     bool
	AllyArmorBonus int
}

func (Kind) Type() ecs.ComponentType { return CKind }
