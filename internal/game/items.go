package game

import (
	"fmt"

	"gravedelve/internal/component"
	"gravedelve/internal/system"
)

// applyItem uses a picked-up item immediately. Every ground item is a
// consumable; upgrades write straight into the player's components and so
// carry over between depths with them.
func (g *Game) applyItem(item component.Item) {
	switch item.ID {
	case "potion_lesser":
		g.healPlayer(10)
		g.addMessage(fmt.Sprintf("The %s knits your wounds. (+10 HP)", item.Name))

	case "potion_greater":
		g.healPlayer(20)
		g.addMessage(fmt.Sprintf("The %s knits your wounds. (+20 HP)", item.Name))

	case "embalming_salts":
		g.healPlayer(30)
		g.run.World.Remove(g.playerID, component.CPlague)
		g.addMessage("The salts scour flesh and sickness alike. (+30 HP, plague cured)")

	case "smoke_vial":
		g.blinkPlayer(5)
		g.addMessage("Smoke swallows you; you stumble out elsewhere.")

	case "blink_talisman":
		g.teleportPlayer()
		g.addMessage("The talisman folds the barrow around you.")

	case "whetstone":
		g.adjustCombat(func(c *component.Combat) { c.Power++ })
		g.addMessage("You hone your blade. (+1 power)")

	case "plating_kit":
		g.adjustCombat(func(c *component.Combat) { c.BaseArmor++ })
		g.addMessage("You rivet the plates over your ribs. (+1 armor)")

	case "ward_scroll":
		g.adjustCombat(func(c *component.Combat) { c.Evasion++ })
		g.addMessage("The ward settles over you like cold water. (+1 evasion)")

	case "firebomb":
		g.throwFirebomb()

	case "barrow_key":
		g.addMessage("You pocket the blackened key. Something below must fit it.")

	default:
		g.addMessage(fmt.Sprintf("You pick up the %s.", item.Name))
	}
}

func (g *Game) healPlayer(n int) {
	c := g.run.World.Get(g.playerID, component.CHealth)
	if c == nil {
		return
	}
	hp := c.(component.Health)
	hp.Current = min(hp.Current+n, hp.Max())
	g.run.World.Add(g.playerID, hp)
}

func (g *Game) adjustCombat(fn func(*component.Combat)) {
	c := g.run.World.Get(g.playerID, component.CCombat)
	if c == nil {
		return
	}
	cb := c.(component.Combat)
	fn(&cb)
	g.run.World.Add(g.playerID, cb)
}

// blinkPlayer hops to a random walkable, unoccupied tile within the given
// radius. Falls back to staying put.
func (g *Game) blinkPlayer(radius int) {
	pos := g.playerPosition()
	for try := 0; try < 30; try++ {
		x := pos.X + g.run.Rand.Intn(2*radius+1) - radius
		y := pos.Y + g.run.Rand.Intn(2*radius+1) - radius
		if !g.run.Map.IsWalkable(x, y) || len(g.run.World.EntitiesAt(x, y)) > 0 {
			continue
		}
		g.run.World.Add(g.playerID, component.Position{X: x, Y: y})
		system.UpdateFOV(g.run.World, g.run.Map, g.playerID, g.lib.Player().Sight)
		return
	}
}

// teleportPlayer warps to a random room center.
func (g *Game) teleportPlayer() {
	rooms := g.run.Map.Rooms
	if len(rooms) == 0 {
		return
	}
	room := rooms[g.run.Rand.Intn(len(rooms))]
	x, y := room.Center()
	g.run.World.Add(g.playerID, component.Position{X: x, Y: y})
	system.UpdateFOV(g.run.World, g.run.Map, g.playerID, g.lib.Player().Sight)
}

// throwFirebomb burns every visible monster within three tiles. Fire damage
// respects resistances and can force a split the same as any other hit.
func (g *Game) throwFirebomb() {
	const blastRadius = 3
	const blastDamage = 8

	pos := g.playerPosition()
	g.addMessage("The firebomb shatters and the dark catches light!")
	for _, id := range g.run.World.Query(component.CAI, component.CPosition, component.CHealth) {
		mp := g.run.World.Get(id, component.CPosition).(component.Position)
		if abs(mp.X-pos.X) > blastRadius || abs(mp.Y-pos.Y) > blastRadius {
			continue
		}
		if !g.run.Map.At(mp.X, mp.Y).Visible {
			continue
		}
		name := g.entityName(id)
		outs := system.ApplyDamage(g.run, id, blastDamage, "the fire", system.DamageOpts{
			Attacker:   g.playerID,
			Typed:      true,
			DamageType: component.DamageFire,
			AllowXP:    true,
		})
		for _, out := range outs {
			g.runLog.DamageDealt += out.Amount
			switch out.Kind {
			case system.OutcomeSplit:
				g.runLog.SplitsSeen++
				g.addMessage(fmt.Sprintf("The %s bursts apart in the flames!", name))
			case system.OutcomeDied:
				g.runLog.MonstersSlain[name]++
				g.xp += out.XP
				g.addMessage(fmt.Sprintf("The %s burns to ash.", name))
			}
		}
	}
	g.checkVictory()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
