// Package factory builds entities from static definitions. One Factory
// composes a builder per entity family; callers dispatch explicitly rather
// than through a shared base.
package factory

import (
	"log/slog"

	"gravedelve/assets"
	"gravedelve/internal/component"
	"gravedelve/internal/dice"
	"gravedelve/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// MonsterBuilder instantiates a combatant of a kind, scaled for depth.
type MonsterBuilder interface {
	BuildMonster(w *ecs.World, kind string, x, y, depth int) ecs.EntityID
}

// ItemBuilder places a ground item by registry ID.
type ItemBuilder interface {
	BuildItem(w *ecs.World, itemID string, x, y int) ecs.EntityID
}

// PlayerBuilder creates the player entity.
type PlayerBuilder interface {
	BuildPlayer(w *ecs.World, x, y int) ecs.EntityID
}

// Factory holds one builder per entity family.
type Factory struct {
	Monsters MonsterBuilder
	Items    ItemBuilder
	Players  PlayerBuilder
}

// New wires the default builders over a definition library.
func New(lib *assets.Library) *Factory {
	return &Factory{
		Monsters: &monsterFactory{lib: lib},
		Items:    &itemFactory{lib: lib},
		Players:  &playerFactory{lib: lib},
	}
}

// NewMonster dispatches to the monster builder.
func (f *Factory) NewMonster(w *ecs.World, kind string, x, y, depth int) ecs.EntityID {
	return f.Monsters.BuildMonster(w, kind, x, y, depth)
}

// NewItem dispatches to the item builder.
func (f *Factory) NewItem(w *ecs.World, itemID string, x, y int) ecs.EntityID {
	return f.Items.BuildItem(w, itemID, x, y)
}

// NewPlayer dispatches to the player builder.
func (f *Factory) NewPlayer(w *ecs.World, x, y int) ecs.EntityID {
	return f.Players.BuildPlayer(w, x, y)
}

type monsterFactory struct {
	lib *assets.Library
}

func (f *monsterFactory) BuildMonster(w *ecs.World, kind string, x, y, depth int) ecs.EntityID {
	def, ok := f.lib.Monster(kind)
	if !ok {
		slog.Warn("unknown monster kind requested", "kind", kind)
		return ecs.NilEntity
	}
	if depth < 1 {
		depth = 1
	}

	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})

	baseMax := def.MaxHP + def.HPScale*(depth-1)
	w.Add(id, component.Health{
		Current:  baseMax + def.ConBonus,
		BaseMax:  baseMax,
		ConBonus: def.ConBonus,
	})

	w.Add(id, component.Combat{
		Accuracy:     def.Accuracy,
		Evasion:      def.Evasion,
		BaseArmor:    def.BaseArmor,
		Power:        def.Power + def.PowerScale*(depth-1),
		Weapon:       weaponFromDef(def),
		Resist:       resistTable(def.Resist),
		PlagueChance: def.PlagueChance,
		XP:           def.XP,
	})

	w.Add(id, component.Kind{
		Name:           def.Kind,
		ShieldWall:     def.ShieldWall,
		AllyArmorBonus: def.AllyArmorBonus,
	})

	behavior := component.BehaviorChase
	if def.Stationary {
		behavior = component.BehaviorStationary
	}
	w.Add(id, component.AI{Behavior: behavior, SightRange: def.Sight})

	if def.Split != nil {
		w.Add(id, component.Split{
			TriggerPct:  def.Split.TriggerPct,
			ChildKind:   def.Split.ChildKind,
			MinChildren: def.Split.MinChildren,
			MaxChildren: def.Split.MaxChildren,
			Weights:     def.Split.Weights,
		})
	}

	w.Add(id, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorRed,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	})
	w.Add(id, component.TagBlocking{})
	return id
}

// weaponFromDef parses the definition's dice expression, degrading to a 1d4
// claw on malformed config rather than failing the spawn.
func weaponFromDef(def assets.MonsterDef) component.Weapon {
	roll, err := dice.Parse(def.Dice)
	if err != nil {
		slog.Warn("monster has malformed damage dice", "kind", def.Kind, "dice", def.Dice, "err", err)
		roll = dice.Roll{Count: 1, Sides: 4}
	}
	return component.Weapon{
		Name: def.Name,
		Dice: roll,
		Type: component.DamageTypeFromName(def.DamageType),
	}
}

// resistTable converts definition-file type names to the typed table.
// Unknown names collapse onto physical; absent tables stay nil (all 1.0).
func resistTable(resist map[string]float64) map[component.DamageType]float64 {
	if len(resist) == 0 {
		return nil
	}
	out := make(map[component.DamageType]float64, len(resist))
	for name, mult := range resist {
		out[component.DamageTypeFromName(name)] = mult
	}
	return out
}

type itemFactory struct {
	lib *assets.Library
}

func (f *itemFactory) BuildItem(w *ecs.World, itemID string, x, y int) ecs.EntityID {
	def, ok := f.lib.Item(itemID)
	if !ok {
		slog.Warn("unknown item requested", "item", itemID)
		return ecs.NilEntity
	}
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Item{ID: itemID, Name: def.Name})
	w.Add(id, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorGreen,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	return id
}

type playerFactory struct {
	lib *assets.Library
}

func (f *playerFactory) BuildPlayer(w *ecs.World, x, y int) ecs.EntityID {
	def := f.lib.Player()
	roll, err := dice.Parse(def.Dice)
	if err != nil {
		roll = dice.Roll{Count: 1, Sides: 6}
	}

	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Health{
		Current:  def.MaxHP + def.ConBonus,
		BaseMax:  def.MaxHP,
		ConBonus: def.ConBonus,
	})
	w.Add(id, component.Combat{
		Accuracy:  def.Accuracy,
		BaseArmor: def.BaseArmor,
		Power:     def.Power,
		Weapon: component.Weapon{
			Name: "rusted sword",
			Dice: roll,
			Type: component.DamageSlashing,
		},
	})
	w.Add(id, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorYellow,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})
	return id
}
