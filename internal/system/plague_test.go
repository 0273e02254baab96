package system

import (
	"testing"

	"gravedelve/internal/component"
)

func TestPlagueTickDamagesAndExpires(t *testing.T) {
	r := newTestRun(2)
	host := addCombatant(r, 20, 0, 10, component.Weapon{})
	Infect(r.World, host, component.Plague{DamagePerTurn: 2, TurnsRemaining: 3})

	for turn := 0; turn < 3; turn++ {
		TickPlague(r)
	}
	hp := r.World.Get(host, component.CHealth).(component.Health)
	if hp.Current != 14 {
		t.Errorf("3 ticks of 2 damage: HP = %d, want 14", hp.Current)
	}
	if r.World.Has(host, component.CPlague) {
		t.Error("infection should expire after its last tick")
	}
}

func TestPlagueSpreadsToNeighbors(t *testing.T) {
	r := newTestRun(2)
	host := addCombatant(r, 50, 0, 10, component.Weapon{})
	neighbor := r.World.CreateEntity()
	r.World.Add(neighbor, component.Position{X: 11, Y: 10})
	r.World.Add(neighbor, component.Health{Current: 20, BaseMax: 20})

	Infect(r.World, host, component.Plague{DamagePerTurn: 1, TurnsRemaining: 5, SpreadChance: 100})
	TickPlague(r)

	if !r.World.Has(neighbor, component.CPlague) {
		t.Error("100%% spread chance should infect the orthogonal neighbor")
	}
}

func TestInfectKeepsLongerInfection(t *testing.T) {
	r := newTestRun(2)
	host := addCombatant(r, 20, 0, 10, component.Weapon{})
	Infect(r.World, host, component.Plague{DamagePerTurn: 1, TurnsRemaining: 6})
	Infect(r.World, host, component.Plague{DamagePerTurn: 1, TurnsRemaining: 2})

	p := r.World.Get(host, component.CPlague).(component.Plague)
	if p.TurnsRemaining != 6 {
		t.Errorf("shorter reinfection overwrote the longer one: %d turns", p.TurnsRemaining)
	}
}

func TestPlagueCannotInfectCorpse(t *testing.T) {
	r := newTestRun(2)
	target := addCombatant(r, 5, 0, 10, component.Weapon{})
	ApplyDamage(r, target, 50, "a maul", DamageOpts{})

	Infect(r.World, target, component.Plague{DamagePerTurn: 1, TurnsRemaining: 3})
	if r.World.Has(target, component.CPlague) {
		t.Error("corpses do not catch the plague")
	}
}

func TestPlagueDeathAwardsNoXP(t *testing.T) {
	r := newTestRun(2)
	host := addCombatant(r, 1, 0, 10, component.Weapon{})
	Infect(r.World, host, component.Plague{DamagePerTurn: 5, TurnsRemaining: 3})

	outs := TickPlague(r)
	if len(outs) != 1 || outs[0].Kind != OutcomeDied {
		t.Fatalf("expected one plague death; got %+v", outs)
	}
	if outs[0].XP != 0 {
		t.Errorf("plague deaths carry no XP; got %d", outs[0].XP)
	}
}
