package generate

import (
	"math/rand"
	"testing"

	"gravedelve/assets"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/loot"
)

func testLibrary(t *testing.T) *assets.Library {
	t.Helper()
	lib, err := assets.Load()
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return lib
}

// floodFill counts walkable tiles reachable from (x, y).
func floodFill(gmap *gamemap.GameMap, x, y int) map[[2]int]bool {
	seen := map[[2]int]bool{}
	stack := [][2]int{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[p] || !gmap.IsWalkable(p[0], p[1]) {
			continue
		}
		seen[p] = true
		stack = append(stack,
			[2]int{p[0] + 1, p[1]}, [2]int{p[0] - 1, p[1]},
			[2]int{p[0], p[1] + 1}, [2]int{p[0], p[1] - 1})
	}
	return seen
}

func TestGenerateRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		cfg := DefaultConfig(1, rand.New(rand.NewSource(seed)))
		gmap, px, py := Generate(cfg)

		if len(gmap.Rooms) < 2 {
			t.Fatalf("seed %d: got %d rooms, want at least 2", seed, len(gmap.Rooms))
		}
		if !gmap.IsWalkable(px, py) {
			t.Fatalf("seed %d: player start (%d,%d) not walkable", seed, px, py)
		}
		reach := floodFill(gmap, px, py)
		for i, room := range gmap.Rooms {
			cx, cy := room.Center()
			if !reach[[2]int{cx, cy}] {
				t.Errorf("seed %d: room %d center (%d,%d) unreachable from start", seed, i, cx, cy)
			}
		}
	}
}

func TestGenerateStairsInLastRoom(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(2, rand.New(rand.NewSource(seed)))
		gmap, _, _ := Generate(cfg)
		sx, sy := gmap.Rooms[len(gmap.Rooms)-1].Center()
		if gmap.At(sx, sy).Kind != gamemap.TileStairsDown {
			t.Fatalf("seed %d: no stairs at last room center (%d,%d)", seed, sx, sy)
		}
	}
}

func TestGenerateMapBorderStaysWalled(t *testing.T) {
	cfg := DefaultConfig(1, rand.New(rand.NewSource(7)))
	gmap, _, _ := Generate(cfg)
	for x := 0; x < gmap.Width; x++ {
		if gmap.IsWalkable(x, 0) || gmap.IsWalkable(x, gmap.Height-1) {
			t.Fatalf("border breached at column %d", x)
		}
	}
	for y := 0; y < gmap.Height; y++ {
		if gmap.IsWalkable(0, y) || gmap.IsWalkable(gmap.Width-1, y) {
			t.Fatalf("border breached at row %d", y)
		}
	}
}

func TestAssignRolesByDepth(t *testing.T) {
	cases := []struct {
		depth int
		want  gamemap.RoomRole
	}{
		{1, gamemap.RoomNormal},
		{3, gamemap.RoomMiniBoss},
		{5, gamemap.RoomBoss},
		{10, gamemap.RoomBoss},
		{25, gamemap.RoomEndBoss},
	}
	for _, tc := range cases {
		cfg := DefaultConfig(tc.depth, rand.New(rand.NewSource(3)))
		gmap, _, _ := Generate(cfg)
		got := gmap.Rooms[len(gmap.Rooms)-1].Role
		if got != tc.want {
			t.Errorf("depth %d: last room role = %v, want %v", tc.depth, got, tc.want)
		}
	}
}

func TestPopulateLeavesFirstRoomEmpty(t *testing.T) {
	lib := testLibrary(t)
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(1, rand.New(rand.NewSource(seed)))
		gmap, _, _ := Generate(cfg)
		pop := Populate(gmap, cfg, lib, loot.NewPity(lib.Registry()))

		first := gmap.Rooms[0]
		inFirst := func(x, y int) bool {
			return x >= first.X1 && x <= first.X2 && y >= first.Y1 && y <= first.Y2
		}
		for _, m := range pop.Monsters {
			if inFirst(m.X, m.Y) {
				t.Fatalf("seed %d: monster %s spawned in the start room", seed, m.Kind)
			}
		}
		for _, it := range pop.Items {
			if inFirst(it.X, it.Y) {
				t.Fatalf("seed %d: item %s spawned in the start room", seed, it.ID)
			}
		}
	}
}

func TestPopulatePlacementsValid(t *testing.T) {
	lib := testLibrary(t)
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(4, rand.New(rand.NewSource(seed)))
		gmap, _, _ := Generate(cfg)
		pop := Populate(gmap, cfg, lib, loot.NewPity(lib.Registry()))

		used := map[[2]int]bool{}
		for _, m := range pop.Monsters {
			if !gmap.IsWalkable(m.X, m.Y) {
				t.Fatalf("seed %d: monster on unwalkable tile (%d,%d)", seed, m.X, m.Y)
			}
			if used[[2]int{m.X, m.Y}] {
				t.Fatalf("seed %d: two spawns share tile (%d,%d)", seed, m.X, m.Y)
			}
			used[[2]int{m.X, m.Y}] = true
			if _, ok := lib.Monster(m.Kind); !ok {
				t.Fatalf("seed %d: unknown kind %q", seed, m.Kind)
			}
			for _, id := range m.Carry {
				if _, ok := lib.Item(id); !ok {
					t.Fatalf("seed %d: monster carries unknown item %q", seed, id)
				}
			}
		}
		for _, it := range pop.Items {
			if !gmap.IsWalkable(it.X, it.Y) {
				t.Fatalf("seed %d: item on unwalkable tile (%d,%d)", seed, it.X, it.Y)
			}
			if used[[2]int{it.X, it.Y}] {
				t.Fatalf("seed %d: item shares tile (%d,%d)", seed, it.X, it.Y)
			}
			used[[2]int{it.X, it.Y}] = true
			if _, ok := lib.Item(it.ID); !ok {
				t.Fatalf("seed %d: unknown item %q", seed, it.ID)
			}
		}
		if len(pop.Monsters) == 0 {
			t.Fatalf("seed %d: depth 4 populated zero monsters", seed)
		}
	}
}

func TestPopulateRunsPityPerEligibleRoom(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig(2, rand.New(rand.NewSource(11)))
	gmap, _, _ := Generate(cfg)
	pity := loot.NewPity(lib.Registry())
	pop := Populate(gmap, cfg, lib, pity)

	if got, want := len(pop.Pity), len(gmap.Rooms)-1; got != want {
		t.Fatalf("pity results = %d, want one per populated room (%d)", got, want)
	}
	processed, skipped := 0, 0
	for _, res := range pop.Pity {
		if res.Skipped {
			skipped++
		} else {
			processed++
		}
	}
	if pity.Stats.RoomsProcessed != processed || pity.Stats.RoomsSkipped != skipped {
		t.Fatalf("stats (%d processed, %d skipped) disagree with results (%d, %d)",
			pity.Stats.RoomsProcessed, pity.Stats.RoomsSkipped, processed, skipped)
	}
}

func TestItemTableExcludesKeys(t *testing.T) {
	lib := testLibrary(t)
	for depth := 1; depth <= 25; depth += 6 {
		ids, weights := itemTable(lib, depth)
		if len(ids) != len(weights) {
			t.Fatalf("depth %d: %d ids but %d weights", depth, len(ids), len(weights))
		}
		for _, id := range ids {
			tags, _ := lib.Registry().GetLootTags(id)
			if tags.Has(loot.CatKey) {
				t.Errorf("depth %d: key item %q in random drop table", depth, id)
			}
		}
	}
}

func TestThreatBudgetGrowsWithRole(t *testing.T) {
	normal := threatBudget(5, gamemap.RoomNormal)
	if threatBudget(5, gamemap.RoomBoss) <= normal {
		t.Fatal("boss room budget should exceed a normal room's")
	}
	if threatBudget(5, gamemap.RoomTreasure) >= normal {
		t.Fatal("treasure room budget should stay below a normal room's")
	}
}
