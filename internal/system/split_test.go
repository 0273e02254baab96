package system

import (
	"testing"

	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/run"
)

// addSplitter creates a 42-HP combatant that splits into 2-3 "minor"
// children below 35% of base max.
func addSplitter(r *run.Run) ecs.EntityID {
	id := r.World.CreateEntity()
	r.World.Add(id, component.Position{X: 10, Y: 10})
	r.World.Add(id, component.Health{Current: 42, BaseMax: 42})
	r.World.Add(id, component.Combat{BaseArmor: 10, XP: 18})
	r.World.Add(id, component.Kind{Name: "gravemold"})
	r.World.Add(id, component.Split{
		TriggerPct:  0.35,
		ChildKind:   "minor",
		MinChildren: 2,
		MaxChildren: 3,
		Weights:     []int{3, 1},
	})
	r.World.Add(id, component.TagBlocking{})
	return id
}

func TestSplitEndToEnd(t *testing.T) {
	// 28 damage leaves 14 of 42 HP — under the 35% line. The original must
	// vanish and 2 or 3 minors must take its place.
	r := newTestRun(42)
	original := addSplitter(r)

	outs := ApplyDamage(r, original, 28, "a maul", DamageOpts{})
	out := outs[0]
	if out.Kind != OutcomeSplit {
		t.Fatalf("expected a split outcome, got %v", out.Kind)
	}
	if out.RemainingHP != 14 {
		t.Errorf("remaining HP = %d, want 14", out.RemainingHP)
	}
	if r.World.Alive(original) {
		t.Fatal("split original should be removed from the live set")
	}
	if n := len(out.Children); n < 2 || n > 3 {
		t.Fatalf("split produced %d children, want 2 or 3", n)
	}
	for _, child := range out.Children {
		kind := r.World.Get(child, component.CKind).(component.Kind)
		if kind.Name != "minor" {
			t.Errorf("child kind %q, want minor", kind.Name)
		}
	}

	// A second identical hit on the now-nonexistent original is a no-op.
	outs = ApplyDamage(r, original, 28, "a maul", DamageOpts{})
	if outs[0].Kind != OutcomeNone {
		t.Fatalf("hitting the removed original should be a no-op; got %v", outs[0].Kind)
	}
}

func TestSplitCheckFiresOnce(t *testing.T) {
	r := newTestRun(1)
	id := addSplitter(r)
	hp := r.World.Get(id, component.CHealth).(component.Health)
	hp.Current = 10
	r.World.Add(id, hp)

	if CheckSplitTrigger(r.World, id) == nil {
		t.Fatal("first check below threshold should trigger")
	}
	if CheckSplitTrigger(r.World, id) != nil {
		t.Fatal("second check on the same entity must not trigger again")
	}
}

func TestSplitThresholdUsesBaseMax(t *testing.T) {
	// Base max 40 with +10 con bonus: the line is 0.35*40=14, not 0.35*50.
	r := newTestRun(1)
	id := addSplitter(r)
	r.World.Add(id, component.Health{Current: 15, BaseMax: 40, ConBonus: 10})

	if CheckSplitTrigger(r.World, id) != nil {
		t.Fatal("15 HP is above 35% of base max 40; must not trigger")
	}
	r.World.Add(id, component.Health{Current: 13, BaseMax: 40, ConBonus: 10})
	if CheckSplitTrigger(r.World, id) == nil {
		t.Fatal("13 HP is below 35% of base max 40; must trigger")
	}
}

func TestSplitWinsOverDeath(t *testing.T) {
	// Even overkill damage resolves as a split, never as a death, when the
	// threshold is crossed. It is never both.
	r := newTestRun(5)
	id := addSplitter(r)

	out := ApplyDamage(r, id, 500, "a cave-in", DamageOpts{})[0]
	if out.Kind != OutcomeSplit {
		t.Fatalf("overkill on a splitter should still split; got %v", out.Kind)
	}
	if len(out.Children) == 0 {
		t.Fatal("split children missing")
	}
}

func TestNoSplitConfigMeansNormalDeath(t *testing.T) {
	r := newTestRun(5)
	id := addCombatant(r, 42, 0, 10, component.Weapon{})

	out := ApplyDamage(r, id, 40, "a cave-in", DamageOpts{})[0]
	if out.Kind != OutcomeDamaged {
		t.Fatalf("no split config, survivable hit: got %v", out.Kind)
	}
	out = ApplyDamage(r, id, 40, "a cave-in", DamageOpts{})[0]
	if out.Kind != OutcomeDied {
		t.Fatalf("no split config, lethal hit should die normally: got %v", out.Kind)
	}
}

func TestSplitChildCountUniformFallback(t *testing.T) {
	// Weight list length mismatching the [min,max] option count degrades to
	// a uniform draw — still always inside the range.
	counts := make(map[int]int)
	for seed := int64(0); seed < 60; seed++ {
		r := newTestRun(seed)
		id := addSplitter(r)
		sp := r.World.Get(id, component.CSplit).(component.Split)
		sp.Weights = []int{1, 2, 3, 4, 5} // wrong length for two options
		r.World.Add(id, sp)

		out := ApplyDamage(r, id, 30, "a maul", DamageOpts{})[0]
		if out.Kind != OutcomeSplit {
			t.Fatalf("seed %d: expected split", seed)
		}
		counts[len(out.Children)]++
	}
	if counts[2] == 0 || counts[3] == 0 {
		t.Errorf("uniform fallback should produce both 2 and 3 children across seeds: %v", counts)
	}
	for n := range counts {
		if n < 2 || n > 3 {
			t.Errorf("child count %d outside [2,3]", n)
		}
	}
}

func TestSplitPlacementFallsBackToOrigin(t *testing.T) {
	// On a map of solid wall there is nowhere to stand, so every child
	// lands on the original's own tile. Spawning must never fail outright.
	r := newTestRun(11)
	r.Map = gamemap.New(20, 20) // all walls
	id := addSplitter(r)

	out := ApplyDamage(r, id, 30, "a maul", DamageOpts{})[0]
	if out.Kind != OutcomeSplit || len(out.Children) < 2 {
		t.Fatalf("split must succeed even with no free tiles; got %+v", out)
	}
	for _, child := range out.Children {
		pos := r.World.Get(child, component.CPosition).(component.Position)
		if pos.X != 10 || pos.Y != 10 {
			t.Errorf("child at (%d,%d), want origin (10,10)", pos.X, pos.Y)
		}
	}
}

func TestSplitPlacementPrefersFreeTiles(t *testing.T) {
	r := newTestRun(11)
	id := addSplitter(r)

	out := ApplyDamage(r, id, 30, "a maul", DamageOpts{})[0]
	if out.Kind != OutcomeSplit {
		t.Fatal("expected split")
	}
	seen := make(map[[2]int]bool)
	for _, child := range out.Children {
		pos := r.World.Get(child, component.CPosition).(component.Position)
		key := [2]int{pos.X, pos.Y}
		if seen[key] {
			t.Errorf("two children share tile %v despite free neighbors", key)
		}
		seen[key] = true
		if dist := max(abs(pos.X-10), abs(pos.Y-10)); dist < 1 || dist > 3 {
			t.Errorf("child at ring distance %d, want 1..3", dist)
		}
	}
}
