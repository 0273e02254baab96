package system

import (
	"testing"

	"gravedelve/internal/component"
	"gravedelve/internal/gamemap"
)

func TestTryMoveUpdatesPosition(t *testing.T) {
	r := newTestRun(1)
	id := addCombatant(r, 10, 0, 10, component.Weapon{})

	res, _ := TryMove(r.World, r.Map, id, 1, 0)
	if res != MoveOK {
		t.Fatalf("expected MoveOK, got %v", res)
	}
	pos := r.World.Get(id, component.CPosition).(component.Position)
	if pos.X != 11 || pos.Y != 10 {
		t.Errorf("position (%d,%d), want (11,10)", pos.X, pos.Y)
	}
}

func TestTryMoveBlockedByWall(t *testing.T) {
	r := newTestRun(1)
	id := addCombatant(r, 10, 0, 10, component.Weapon{})
	r.Map.Set(11, 10, gamemap.MakeWall())

	res, _ := TryMove(r.World, r.Map, id, 1, 0)
	if res != MoveBlocked {
		t.Fatalf("expected MoveBlocked, got %v", res)
	}
}

func TestTryMoveBumpsBlockingEntity(t *testing.T) {
	r := newTestRun(1)
	mover := addCombatant(r, 10, 0, 10, component.Weapon{})
	other := addCombatant(r, 10, 0, 10, component.Weapon{})
	r.World.Add(other, component.Position{X: 11, Y: 10})

	res, target := TryMove(r.World, r.Map, mover, 1, 0)
	if res != MoveAttack || target != other {
		t.Fatalf("expected bump into %v, got %v/%v", other, res, target)
	}
}

func TestTryMoveThroughCorpse(t *testing.T) {
	// Corpses don't block: walking over one succeeds.
	r := newTestRun(1)
	mover := addCombatant(r, 10, 0, 10, component.Weapon{})
	victim := addCombatant(r, 5, 0, 10, component.Weapon{})
	r.World.Add(victim, component.Position{X: 11, Y: 10})
	ApplyDamage(r, victim, 50, "a maul", DamageOpts{})

	res, _ := TryMove(r.World, r.Map, mover, 1, 0)
	if res != MoveOK {
		t.Fatalf("corpse tile should be walkable; got %v", res)
	}
}
