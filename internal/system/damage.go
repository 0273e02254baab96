package system

import (
	"log/slog"

	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/run"

	"github.com/gdamore/tcell/v2"
)

// DamageOpts carries the optional parts of a damage application.
type DamageOpts struct {
	// Attacker is credited with the kill, if any.
	Attacker ecs.EntityID

	// Typed applies the target's modifier for DamageType before the damage
	// lands. Untyped damage (falling rocks, starvation) skips the table.
	Typed      bool
	DamageType component.DamageType

	// AllowXP lets a finalized monster death report its XP value.
	AllowXP bool
}

// ApplyDamage is the single sanctioned entry point for damage that doesn't
// come out of normal attack resolution: traps, thrown weapons, spells,
// hazards. It reduces HP through the shared primitive and finalizes every
// death or split marker in the result.
//
// A nil run context is rejected with a loud diagnostic and no damage:
// without a run, deaths could never be finalized. Tests that want bare HP
// reduction use ApplyDamageDryRun instead.
func ApplyDamage(r *run.Run, target ecs.EntityID, amount int, cause string, opts DamageOpts) []DamageOutcome {
	var w *ecs.World
	if r != nil {
		w = r.World
	}
	if w == nil {
		slog.Error("damage applied without run context; death not finalized (expected only in tests)",
			"target", target, "cause", cause, "amount", amount)
		return nil
	}

	if amount < 0 {
		amount = 0
	}
	if opts.Typed {
		if cmbComp := w.Get(target, component.CCombat); cmbComp != nil {
			mod := cmbComp.(component.Combat).ResistFor(opts.DamageType)
			amount = int(float64(amount) * mod)
		}
	}

	out := reduceHP(w, target, amount)
	finalize(r, &out, cause, opts)
	return []DamageOutcome{out}
}

// ApplyDamageDryRun is the no-context form: the HP reduction primitive with
// nothing downstream. Deaths and splits are reported but not finalized.
// Only test harnesses should reach for this.
func ApplyDamageDryRun(w *ecs.World, target ecs.EntityID, amount int) DamageOutcome {
	slog.Error("damage applied without run context; death not finalized (expected only in tests)",
		"target", target, "amount", amount)
	if amount < 0 {
		amount = 0
	}
	return reduceHP(w, target, amount)
}

// reduceHP is the HP-reduction primitive every damage path funnels through.
// It lowers the target's hit points and classifies the result, consulting
// the split trigger before declaring death. An entity with no Health
// component — including corpses — yields a no-op outcome.
func reduceHP(w *ecs.World, target ecs.EntityID, amount int) DamageOutcome {
	hpComp := w.Get(target, component.CHealth)
	if hpComp == nil {
		if !w.Has(target, component.CCorpse) {
			slog.Warn("damage target has no health component", "target", target)
		}
		return DamageOutcome{Kind: OutcomeNone, Target: target}
	}
	hp := hpComp.(component.Health)
	hp.Current -= amount
	w.Add(target, hp)

	out := DamageOutcome{
		Target:      target,
		Amount:      amount,
		RemainingHP: hp.Current,
	}

	// Split interception comes strictly before the death check.
	if plan := CheckSplitTrigger(w, target); plan != nil {
		out.Kind = OutcomeSplit
		out.Plan = plan
		return out
	}
	if hp.Current <= 0 {
		out.Kind = OutcomeDied
		if cmbComp := w.Get(target, component.CCombat); cmbComp != nil {
			out.XP = cmbComp.(component.Combat).XP
		}
		return out
	}
	out.Kind = OutcomeDamaged
	return out
}

// finalize routes a damage outcome to its single terminal handler. Split
// outcomes execute their plan; death outcomes go to exactly one of the
// player or monster finalizers.
func finalize(r *run.Run, out *DamageOutcome, cause string, opts DamageOpts) {
	switch out.Kind {
	case OutcomeSplit:
		out.Children = ExecuteSplit(r, out.Plan)
	case OutcomeDied:
		if r.World.Has(out.Target, component.CTagPlayer) {
			finalizePlayerDeath(r, cause)
			out.XP = 0
			return
		}
		finalizeMonsterDeath(r, out, opts)
	}
}

// finalizePlayerDeath flips the run into its dead state. Bookkeeping runs
// once no matter how many damage events arrive afterward.
func finalizePlayerDeath(r *run.Run, cause string) {
	r.SetPlayerDead(cause)
}

// finalizeMonsterDeath converts the entity into a non-blocking corpse
// remnant: combat and AI capabilities are stripped, carried loot drops at
// its feet, and the world's tile index is invalidated. XP is reported on the
// outcome only when the caller allowed it and named an attacker.
func finalizeMonsterDeath(r *run.Run, out *DamageOutcome, opts DamageOpts) {
	w := r.World
	id := out.Target

	kindName := "creature"
	if kindComp := w.Get(id, component.CKind); kindComp != nil {
		kindName = kindComp.(component.Kind).Name
	}

	// Drop carried loot before the components go away.
	var pos component.Position
	if posComp := w.Get(id, component.CPosition); posComp != nil {
		pos = posComp.(component.Position)
	}
	if carryComp := w.Get(id, component.CLootCarry); carryComp != nil && r.SpawnItem != nil {
		for _, itemID := range carryComp.(component.LootCarry).ItemIDs {
			r.SpawnItem(itemID, pos.X, pos.Y)
		}
	}

	w.Remove(id, component.CHealth)
	w.Remove(id, component.CCombat)
	w.Remove(id, component.CAI)
	w.Remove(id, component.CSplit)
	w.Remove(id, component.CPlague)
	w.Remove(id, component.CLootCarry)
	w.Remove(id, component.CTagBlocking)
	w.Add(id, component.Corpse{Of: kindName})
	w.Add(id, component.Renderable{
		Glyph:       "᠅",
		FGColor:     tcell.ColorGray,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 1,
	})
	w.InvalidatePositions()

	if !opts.AllowXP || opts.Attacker == ecs.NilEntity {
		out.XP = 0
	}
	out.Killer = opts.Attacker
}
