package system

import (
	"math"

	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/run"
)

// ProcessAI runs one turn for every AI-controlled monster and returns the
// outcomes of any attacks made against the player.
func ProcessAI(r *run.Run, playerID ecs.EntityID) []DamageOutcome {
	w := r.World
	if playerID == ecs.NilEntity || !w.Alive(playerID) {
		return nil
	}
	playerPosComp := w.Get(playerID, component.CPosition)
	if playerPosComp == nil {
		return nil
	}
	playerPos := playerPosComp.(component.Position)

	var hits []DamageOutcome
	for _, id := range w.Query(component.CAI, component.CPosition, component.CCombat) {
		ai := w.Get(id, component.CAI).(component.AI)
		pos := w.Get(id, component.CPosition).(component.Position)

		dx := playerPos.X - pos.X
		dy := playerPos.Y - pos.Y
		dist := math.Sqrt(float64(dx*dx + dy*dy))
		if dist > float64(ai.SightRange) {
			continue
		}

		if adjacentOrtho(pos, playerPos) {
			weapon := w.Get(id, component.CCombat).(component.Combat).Weapon
			hits = append(hits, ResolveAttack(r, id, playerID, weapon))
			continue
		}
		if ai.Behavior == component.BehaviorStationary {
			continue
		}

		// Chase: step on the dominant axis, then the other.
		stepX, stepY := sign(dx), sign(dy)
		if TryMoveSimple(w, r.Map, id, stepX, 0) == MoveOK {
			continue
		}
		TryMoveSimple(w, r.Map, id, 0, stepY)
	}
	return hits
}

// adjacentOrtho reports whether a and b share an orthogonal edge.
func adjacentOrtho(a, b component.Position) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
