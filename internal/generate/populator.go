package generate

import (
	"log/slog"
	"math/rand"

	"gravedelve/assets"
	"gravedelve/internal/dice"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/loot"
)

// MonsterSpawn is one planned monster placement.
type MonsterSpawn struct {
	Kind  string
	X, Y  int
	Carry []string // item IDs dropped on death
}

// ItemSpawn is one planned ground item placement.
type ItemSpawn struct {
	ID   string
	X, Y int
}

// Populated is the spawn plan for one depth. The game layer turns it into
// entities through the factory; generation itself touches no ECS state.
type Populated struct {
	Monsters []MonsterSpawn
	Items    []ItemSpawn
	Pity     []loot.PityResult
}

// threatBudget scales the monster allowance for a room by depth and role.
func threatBudget(depth int, role gamemap.RoomRole) int {
	base := 4 + depth*2
	switch role {
	case gamemap.RoomTreasure:
		return depth // lightly guarded
	case gamemap.RoomMiniBoss:
		return base * 3 / 2
	case gamemap.RoomBoss:
		return base * 2
	case gamemap.RoomEndBoss:
		return base * 3
	default:
		return base
	}
}

// Populate plans monster and item placements for every room past the first,
// then gives the pity scheduler one pass per eligible room. The first room is
// the player's and stays empty.
func Populate(gmap *gamemap.GameMap, cfg *Config, lib *assets.Library, pity *loot.Pity) Populated {
	var out Populated
	occ := make(map[[2]int]bool)

	table := lib.MonstersForDepth(cfg.Depth)
	itemIDs, itemWeights := itemTable(lib, cfg.Depth)
	band := loot.BandForDepth(cfg.Depth)

	for i, room := range gmap.Rooms {
		if i == 0 {
			continue
		}

		budget := threatBudget(cfg.Depth, room.Role)
		for budget > 0 {
			def, ok := pickMonster(cfg.Rand, table, budget)
			if !ok {
				break
			}
			x, y, ok := freeTile(gmap, room, occ, cfg.Rand)
			if !ok {
				break
			}
			occ[[2]int{x, y}] = true
			out.Monsters = append(out.Monsters, MonsterSpawn{
				Kind:  def.Kind,
				X:     x,
				Y:     y,
				Carry: rollCarry(cfg.Rand, def.Carry),
			})
			budget -= max(def.Threat, 1)
		}

		var roomItems []string
		for range itemRolls(cfg.Rand, room.Role) {
			if len(itemIDs) == 0 {
				break
			}
			id := itemIDs[dice.WeightedIndex(cfg.Rand, len(itemIDs), itemWeights)]
			x, y, ok := freeTile(gmap, room, occ, cfg.Rand)
			if !ok {
				break
			}
			occ[[2]int{x, y}] = true
			out.Items = append(out.Items, ItemSpawn{ID: id, X: x, Y: y})
			roomItems = append(roomItems, id)
		}

		res := pity.CheckAndApply(cfg.Depth, band, room.Role, false, roomItems,
			pitySpawners(&out, gmap, room, occ, cfg.Rand, pity.Registry, band), room.ID())
		out.Pity = append(out.Pity, res)
	}
	return out
}

// pitySpawners builds the per-category callbacks for one room. Each picks an
// in-band item of its category and places it on a free tile.
func pitySpawners(out *Populated, gmap *gamemap.GameMap, room gamemap.Room,
	occ map[[2]int]bool, rng *rand.Rand, reg *loot.Registry, band int) map[loot.Category]loot.SpawnFunc {

	spawners := make(map[loot.Category]loot.SpawnFunc, len(loot.GuaranteedOrder))
	for _, c := range loot.GuaranteedOrder {
		c := c
		spawners[c] = func() bool {
			ids := reg.IDsInBand(c, band)
			if len(ids) == 0 {
				slog.Warn("no items defined for guaranteed category", "category", c, "band", band)
				return false
			}
			x, y, ok := freeTile(gmap, room, occ, rng)
			if !ok {
				return false
			}
			occ[[2]int{x, y}] = true
			out.Items = append(out.Items, ItemSpawn{ID: ids[rng.Intn(len(ids))], X: x, Y: y})
			return true
		}
	}
	return spawners
}

// itemRolls is how many natural items a room attempts.
func itemRolls(rng *rand.Rand, role gamemap.RoomRole) int {
	switch role {
	case gamemap.RoomTreasure:
		return 2 + rng.Intn(2)
	case gamemap.RoomBoss, gamemap.RoomEndBoss:
		return 1
	case gamemap.RoomMiniBoss:
		return rng.Intn(2)
	default:
		if rng.Intn(100) < 45 {
			return 1
		}
		return 0
	}
}

// itemTable builds the weighted natural-drop table for a depth. Keys never
// drop randomly; they only arrive via monster carry lists.
func itemTable(lib *assets.Library, depth int) ([]string, []int) {
	band := loot.BandForDepth(depth)
	var ids []string
	var weights []int
	for _, id := range lib.ItemIDs() {
		tags, ok := lib.Registry().GetLootTags(id)
		if !ok || tags.Has(loot.CatKey) {
			continue
		}
		if tags.BandMin > band || band > tags.BandMax {
			continue
		}
		ids = append(ids, id)
		weights = append(weights, tags.Weight)
	}
	return ids, weights
}

// pickMonster uniformly picks a kind whose threat fits the remaining budget.
func pickMonster(rng *rand.Rand, table []assets.MonsterDef, budget int) (assets.MonsterDef, bool) {
	var fits []assets.MonsterDef
	for _, def := range table {
		if def.Threat > 0 && def.Threat <= budget {
			fits = append(fits, def)
		}
	}
	if len(fits) == 0 {
		return assets.MonsterDef{}, false
	}
	return fits[rng.Intn(len(fits))], true
}

// rollCarry rolls each carry entry independently.
func rollCarry(rng *rand.Rand, carry []assets.CarryDef) []string {
	var items []string
	for _, c := range carry {
		if rng.Intn(100) < c.Chance {
			items = append(items, c.Item)
		}
	}
	return items
}

// freeTile picks a walkable, unoccupied tile in the room, trying random
// probes before a full scan.
func freeTile(gmap *gamemap.GameMap, room gamemap.Room, occ map[[2]int]bool, rng *rand.Rand) (int, int, bool) {
	w := room.X2 - room.X1 + 1
	h := room.Y2 - room.Y1 + 1
	for range 20 {
		x := room.X1 + rng.Intn(w)
		y := room.Y1 + rng.Intn(h)
		if gmap.IsWalkable(x, y) && !occ[[2]int{x, y}] && gmap.At(x, y).Kind != gamemap.TileStairsDown {
			return x, y, true
		}
	}
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			if gmap.IsWalkable(x, y) && !occ[[2]int{x, y}] && gmap.At(x, y).Kind != gamemap.TileStairsDown {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
