package system

import (
	"math/rand"

	"gravedelve/internal/component"
	"gravedelve/internal/dice"
	"gravedelve/internal/ecs"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/loot"
	"gravedelve/internal/run"
)

// newTestRun builds a run context over an open 20x20 floor with a minimal
// monster factory, so the pipeline can finalize splits and deaths without
// the real asset library.
func newTestRun(seed int64) *run.Run {
	r := run.New(rand.New(rand.NewSource(seed)), loot.NewRegistry(nil))

	m := gamemap.New(20, 20)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, gamemap.MakeFloor())
		}
	}
	r.Map = m

	r.SpawnMonster = func(kind string, x, y int) ecs.EntityID {
		id := r.World.CreateEntity()
		r.World.Add(id, component.Position{X: x, Y: y})
		r.World.Add(id, component.Health{Current: 5, BaseMax: 5})
		r.World.Add(id, component.Combat{BaseArmor: 10, XP: 1})
		r.World.Add(id, component.Kind{Name: kind})
		r.World.Add(id, component.TagBlocking{})
		return id
	}
	return r
}

// addCombatant creates a plain monster with the given statline.
func addCombatant(r *run.Run, hp, accuracy, armor int, weapon component.Weapon) ecs.EntityID {
	id := r.World.CreateEntity()
	r.World.Add(id, component.Position{X: 10, Y: 10})
	r.World.Add(id, component.Health{Current: hp, BaseMax: hp})
	r.World.Add(id, component.Combat{
		Accuracy:  accuracy,
		BaseArmor: armor,
		Weapon:    weapon,
		XP:        7,
	})
	r.World.Add(id, component.Kind{Name: "husk"})
	r.World.Add(id, component.TagBlocking{})
	return id
}

// flatWeapon deals a fixed amount per hit (no dice variance).
func flatWeapon(amount int, t component.DamageType) component.Weapon {
	return component.Weapon{Name: "test arm", Dice: dice.Roll{Bonus: amount}, Type: t}
}
