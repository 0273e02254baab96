package system

import (
	"log/slog"

	"gravedelve/internal/component"
	"gravedelve/internal/dice"
	"gravedelve/internal/ecs"
	"gravedelve/internal/run"
)

// ResolveAttack runs one attack from attacker against target with the given
// weapon, applying the result through the shared damage pipeline.
//
// To-hit: d20, natural 20 always hits and crits, natural 1 always misses,
// otherwise roll+accuracy must reach the target's armor class. Damage: the
// weapon's dice plus the attacker's power, clamped at zero, then the
// target's damage-type modifier, then ×2 on a crit — the modifier applies
// before the doubling, never after.
func ResolveAttack(r *run.Run, attacker, target ecs.EntityID, weapon component.Weapon) DamageOutcome {
	w := r.World

	atkComp := w.Get(attacker, component.CCombat)
	tgtComp := w.Get(target, component.CCombat)
	if atkComp == nil || tgtComp == nil || !w.Has(target, component.CHealth) {
		if !w.Has(target, component.CCorpse) {
			slog.Warn("attack with missing combat component",
				"attacker", attacker, "target", target)
		}
		return DamageOutcome{Kind: OutcomeNone, Target: target}
	}
	atk := atkComp.(component.Combat)
	tgt := tgtComp.(component.Combat)

	roll := dice.D20(r.Rand)
	crit := roll == 20
	hit := crit || (roll != 1 && roll+atk.Accuracy >= tgt.ArmorClass())
	if !hit {
		return DamageOutcome{Kind: OutcomeNone, Target: target, Attacker: attacker, Hit: false}
	}

	dmg := weapon.Dice.Total(r.Rand) + atk.Power
	if dmg < 0 {
		dmg = 0
	}
	dmg = int(float64(dmg) * tgt.ResistFor(weapon.Type))
	if crit {
		dmg *= 2
	}

	out := reduceHP(w, target, dmg)
	out.Attacker = attacker
	out.Hit = true
	out.Crit = crit
	finalize(r, &out, attackerName(w, attacker), DamageOpts{Attacker: attacker, AllowXP: true})

	// Plague side-channel: a bearer may infect on any landed hit, as long as
	// the target still has something to infect.
	if atk.PlagueChance > 0 && out.Kind == OutcomeDamaged && r.Rand.Intn(100) < atk.PlagueChance {
		Infect(w, target, component.Plague{
			DamagePerTurn:  1,
			TurnsRemaining: 5,
			SpreadChance:   plagueSpreadChance,
		})
	}

	return out
}

// attackerName names the attacker for death-cause reporting.
func attackerName(w *ecs.World, id ecs.EntityID) string {
	if kindComp := w.Get(id, component.CKind); kindComp != nil {
		return kindComp.(component.Kind).Name
	}
	if w.Has(id, component.CTagPlayer) {
		return "the delver"
	}
	return "something"
}
