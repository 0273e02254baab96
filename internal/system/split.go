package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/dice"
	"gravedelve/internal/ecs"
	"gravedelve/internal/run"
)

// CheckSplitTrigger reports whether the entity's HP has crossed below its
// split threshold, returning the plan to execute if so. The one-shot flag is
// set before the trigger is reported, so a second check on the same entity —
// even within the same tick — returns nil.
func CheckSplitTrigger(w *ecs.World, id ecs.EntityID) *SplitPlan {
	splitComp := w.Get(id, component.CSplit)
	if splitComp == nil {
		return nil
	}
	sp := splitComp.(component.Split)
	if sp.Done {
		return nil
	}
	hpComp := w.Get(id, component.CHealth)
	if hpComp == nil {
		return nil
	}
	hp := hpComp.(component.Health)

	// Threshold compares against base max HP, not the con-adjusted total.
	if float64(hp.Current) >= sp.TriggerPct*float64(hp.BaseMax) {
		return nil
	}

	sp.Done = true
	w.Add(id, sp)

	var origin component.Position
	if posComp := w.Get(id, component.CPosition); posComp != nil {
		origin = posComp.(component.Position)
	}
	return &SplitPlan{
		Parent:      id,
		Origin:      origin,
		ChildKind:   sp.ChildKind,
		MinChildren: sp.MinChildren,
		MaxChildren: sp.MaxChildren,
		Weights:     sp.Weights,
	}
}

// ExecuteSplit removes the original combatant and spawns its offspring via
// the run's entity factory. The child count is a weighted draw over the
// configured range; placement searches rings around the origin and falls
// back to the origin tile itself, so execution never fails.
func ExecuteSplit(r *run.Run, plan *SplitPlan) []ecs.EntityID {
	count := dice.WeightedRange(r.Rand, plan.MinChildren, plan.MaxChildren, plan.Weights)
	if count < 1 {
		count = 1
	}
	positions := splitPositions(r, plan.Origin, count)

	r.World.DestroyEntity(plan.Parent)
	r.World.InvalidatePositions()

	children := make([]ecs.EntityID, 0, count)
	for _, pos := range positions {
		if child := r.SpawnMonster(plan.ChildKind, pos.X, pos.Y); child != ecs.NilEntity {
			children = append(children, child)
		}
	}
	return children
}

// splitPositions collects up to n spawn tiles by walking square rings of
// radius 1..3 around origin, keeping tiles that are walkable and not held by
// a blocking entity. Any shortfall is padded with the origin tile.
func splitPositions(r *run.Run, origin component.Position, n int) []component.Position {
	out := make([]component.Position, 0, n)
	for radius := 1; radius <= 3 && len(out) < n; radius++ {
		for dy := -radius; dy <= radius && len(out) < n; dy++ {
			for dx := -radius; dx <= radius && len(out) < n; dx++ {
				if max(abs(dx), abs(dy)) != radius {
					continue // interior of the ring, already visited
				}
				x, y := origin.X+dx, origin.Y+dy
				if !r.Map.IsWalkable(x, y) {
					continue
				}
				if tileBlocked(r.World, x, y) {
					continue
				}
				out = append(out, component.Position{X: x, Y: y})
			}
		}
	}
	for len(out) < n {
		out = append(out, origin)
	}
	return out
}

// tileBlocked reports whether any blocking entity holds the tile.
func tileBlocked(w *ecs.World, x, y int) bool {
	for _, id := range w.EntitiesAt(x, y) {
		if w.Has(id, component.CTagBlocking) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
