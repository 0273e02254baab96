package component

import "gravedelve/internal/ecs"

const CCorpse ecs.ComponentType = 7

// Corpse marks the non-blocking remnant left behind by a finalized monster
// death. A corpsed entity has no Combat or Health component, so any further
// damage application is a no-op.
type Corpse struct {
	Of string // kind name of the former combatant
}

func (Corpse) Type() ecs.ComponentType { return CCorpse }
