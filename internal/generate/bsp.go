// Package generate builds dungeon depths: BSP room layout, corridors, and
// the per-room population pass that feeds the loot-pity scheduler.
package generate

import (
	"math/rand"

	"gravedelve/internal/gamemap"
)

// Config drives procedural generation for one depth.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	Depth               int
	Rand                *rand.Rand
}

// DefaultConfig returns the standard layout parameters for a depth.
func DefaultConfig(depth int, rng *rand.Rand) *Config {
	return &Config{
		MapWidth:    70,
		MapHeight:   40,
		MinLeafSize: 10,
		MaxLeafSize: 20,
		MinRoomSize: 4,
		RoomPadding: 1,
		Depth:       depth,
		Rand:        rng,
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Room
}

// split divides the leaf into two children, returning false when it is too
// small to cut.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Cut across the long axis; near-square leaves cut randomly.
	horizontal := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		horizontal = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		horizontal = true
	}

	size := l.H
	if !horizontal {
		size = l.W
	}
	if size <= cfg.MinLeafSize*2 {
		return false
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if horizontal {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// carveRooms places a room inside every terminal leaf.
func (l *bspLeaf) carveRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.left != nil || l.right != nil {
		l.left.carveRooms(gmap, cfg)
		l.right.carveRooms(gmap, cfg)
		return
	}

	pad := cfg.RoomPadding
	availW := max(l.W-2*pad, cfg.MinRoomSize)
	availH := max(l.H-2*pad, cfg.MinRoomSize)

	rw := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1))
	rh := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1))
	rw = min(rw, l.W-2*pad)
	rh = min(rh, l.H-2*pad)
	rw = max(rw, 3)
	rh = max(rh, 3)

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Keep a one-tile wall border around the map.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Room{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// anyRoom returns a room from this subtree.
func (l *bspLeaf) anyRoom() *gamemap.Room {
	if l.room != nil {
		return l.room
	}
	if l.left != nil {
		if r := l.left.anyRoom(); r != nil {
			return r
		}
	}
	if l.right != nil {
		return l.right.anyRoom()
	}
	return nil
}

// connect carves L-shaped corridors between sibling subtrees.
func (l *bspLeaf) connect(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connect(gmap, cfg)
	l.right.connect(gmap, cfg)

	a, b := l.left.anyRoom(), l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	if cfg.Rand.Intn(2) == 0 {
		carveH(gmap, ax, bx, ay)
		carveV(gmap, ay, by, bx)
	} else {
		carveV(gmap, ay, by, ax)
		carveH(gmap, ax, bx, by)
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

// Generate lays out one depth and returns the map plus the player start.
// The first room is the player's; the last holds the stairs and, on
// band-boundary depths, a boss. One mid room may become a treasure vault.
func Generate(cfg *Config) (*gamemap.GameMap, int, int) {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	for again := true; again; {
		again = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					again = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.carveRooms(gmap, cfg)
	root.connect(gmap, cfg)
	assignRoles(gmap, cfg)

	px, py := 1, 1
	if len(gmap.Rooms) > 0 {
		px, py = gmap.Rooms[0].Center()
	}
	if len(gmap.Rooms) > 1 {
		sx, sy := gmap.Rooms[len(gmap.Rooms)-1].Center()
		gmap.Set(sx, sy, gamemap.MakeStairsDown())
	}
	return gmap, px, py
}

// assignRoles marks the last room on boss depths and rolls one optional
// treasure vault among the middle rooms.
func assignRoles(gmap *gamemap.GameMap, cfg *Config) {
	n := len(gmap.Rooms)
	if n < 2 {
		return
	}
	switch {
	case cfg.Depth >= 25:
		gmap.Rooms[n-1].Role = gamemap.RoomEndBoss
	case cfg.Depth%5 == 0:
		gmap.Rooms[n-1].Role = gamemap.RoomBoss
	case cfg.Depth%5 == 3:
		gmap.Rooms[n-1].Role = gamemap.RoomMiniBoss
	}
	if n > 3 && cfg.Rand.Intn(100) < 20 {
		gmap.Rooms[1+cfg.Rand.Intn(n-2)].Role = gamemap.RoomTreasure
	}
}
