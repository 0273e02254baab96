package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/run"
)

// plagueSpreadChance is the per-neighbor, per-turn percent chance that an
// infection jumps tiles.
const plagueSpreadChance = 15

// Infect applies a plague infection to an entity that can carry one. An
// existing infection keeps whichever duration is longer.
func Infect(w *ecs.World, id ecs.EntityID, p component.Plague) {
	if !w.Has(id, component.CHealth) {
		return
	}
	if existing := w.Get(id, component.CPlague); existing != nil {
		if existing.(component.Plague).TurnsRemaining >= p.TurnsRemaining {
			return
		}
	}
	w.Add(id, p)
}

// TickPlague advances every infection one turn: each infected entity takes
// its per-turn damage through the central pipeline, may pass the infection
// to orthogonal neighbors, and sheds the infection when it expires.
// Plague deaths award no XP; nobody gets credit for an epidemic.
func TickPlague(r *run.Run) []DamageOutcome {
	w := r.World
	var outcomes []DamageOutcome

	for _, id := range w.Query(component.CPlague, component.CHealth) {
		p := w.Get(id, component.CPlague).(component.Plague)

		// Spread first, while the host is still alive.
		if posComp := w.Get(id, component.CPosition); posComp != nil {
			pos := posComp.(component.Position)
			for _, off := range orthogonal {
				for _, other := range w.EntitiesAt(pos.X+off[0], pos.Y+off[1]) {
					if other == id || !w.Has(other, component.CHealth) {
						continue
					}
					if r.Rand.Intn(100) < p.SpreadChance {
						Infect(w, other, component.Plague{
							DamagePerTurn:  p.DamagePerTurn,
							TurnsRemaining: p.TurnsRemaining,
							SpreadChance:   p.SpreadChance,
						})
					}
				}
			}
		}

		outcomes = append(outcomes, ApplyDamage(r, id, p.DamagePerTurn, "the plague", DamageOpts{})...)

		if !w.Alive(id) || !w.Has(id, component.CPlague) {
			continue // died, split, or corpsed this tick
		}
		p.TurnsRemaining--
		if p.TurnsRemaining <= 0 {
			w.Remove(id, component.CPlague)
		} else {
			w.Add(id, p)
		}
	}
	return outcomes
}
