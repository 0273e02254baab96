package gamemap

import "fmt"

// RoomRole classifies a room for populating and loot purposes. Special roles
// are exempt from the pity scheduler.
type RoomRole uint8

const (
	RoomNormal RoomRole = iota
	RoomTreasure
	RoomMiniBoss
	RoomBoss
	RoomEndBoss
)

var roomRoleNames = map[RoomRole]string{
	RoomNormal:   "normal",
	RoomTreasure: "treasure",
	RoomMiniBoss: "miniboss",
	RoomBoss:     "boss",
	RoomEndBoss:  "endboss",
}

func (r RoomRole) String() string {
	if s, ok := roomRoleNames[r]; ok {
		return s
	}
	return "unknown"
}

// Special reports whether the role exempts the room from guaranteed drops.
func (r RoomRole) Special() bool { return r != RoomNormal }

// Room is an axis-aligned rectangle with a populating role.
type Room struct {
	X1, Y1, X2, Y2 int
	Role           RoomRole
}

// Center returns the center point of the room.
func (r Room) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Room) Intersects(other Room) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// ID returns a stable identifier for the room, used by the pity scheduler's
// trigger stats.
func (r Room) ID() string {
	return fmt.Sprintf("%s@%d,%d", r.Role, r.X1, r.Y1)
}

// GameMap holds the tile grid and room list for one dungeon depth.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Room
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *GameMap) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}
