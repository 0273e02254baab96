package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall or out-of-bounds
	MoveAttack                    // bumped a blocking entity
)

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and (if MoveAttack) the bumped entity.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	posComp := w.Get(id, component.CPosition)
	if posComp == nil {
		return MoveBlocked, ecs.NilEntity
	}
	pos := posComp.(component.Position)
	nx, ny := pos.X+dx, pos.Y+dy

	for _, other := range w.EntitiesAt(nx, ny) {
		if other != id && w.Has(other, component.CTagBlocking) {
			return MoveAttack, other
		}
	}

	if !gmap.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}

	w.Add(id, component.Position{X: nx, Y: ny})
	return MoveOK, ecs.NilEntity
}

// TryMoveSimple is a convenience wrapper that discards the target.
func TryMoveSimple(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) MoveResult {
	r, _ := TryMove(w, gmap, id, dx, dy)
	return r
}
