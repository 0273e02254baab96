package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
)

// The four orthogonal neighbor offsets. Diagonals never count toward a
// shield wall.
var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// CountAdjacentAllies counts the other living combatants of the same
// shield-wall kind on the entity's four orthogonal neighbor tiles.
func CountAdjacentAllies(w *ecs.World, id ecs.EntityID) int {
	kindComp := w.Get(id, component.CKind)
	posComp := w.Get(id, component.CPosition)
	if kindComp == nil || posComp == nil {
		return 0
	}
	kind := kindComp.(component.Kind)
	pos := posComp.(component.Position)

	count := 0
	for _, off := range orthogonal {
		for _, other := range w.EntitiesAt(pos.X+off[0], pos.Y+off[1]) {
			if other == id {
				continue
			}
			otherKindComp := w.Get(other, component.CKind)
			if otherKindComp == nil {
				continue
			}
			otherKind := otherKindComp.(component.Kind)
			if !otherKind.ShieldWall || otherKind.Name != kind.Name {
				continue
			}
			hpComp := w.Get(other, component.CHealth)
			if hpComp == nil || hpComp.(component.Health).Current <= 0 {
				continue // the dead hold no line
			}
			count++
		}
	}
	return count
}

// UpdateShieldWall recomputes the entity's adjacency armor bonus:
// allies × per-ally bonus, uncapped. Kinds without the shield-wall trait are
// untouched. Not self-updating — callers invoke this after anything that
// moves or removes entities.
func UpdateShieldWall(w *ecs.World, id ecs.EntityID) {
	kindComp := w.Get(id, component.CKind)
	if kindComp == nil || !kindComp.(component.Kind).ShieldWall {
		return
	}
	cmbComp := w.Get(id, component.CCombat)
	if cmbComp == nil {
		return
	}
	cmb := cmbComp.(component.Combat)
	cmb.ArmorBonus = CountAdjacentAllies(w, id) * kindComp.(component.Kind).AllyArmorBonus
	w.Add(id, cmb)
}

// RefreshShieldWalls recomputes the bonus for every eligible combatant.
// Called once per turn after movement and deaths settle.
func RefreshShieldWalls(w *ecs.World) {
	for _, id := range w.Query(component.CKind, component.CCombat, component.CPosition) {
		UpdateShieldWall(w, id)
	}
}
