package component

import "gravedelve/internal/ecs"

const CPosition ecs.ComponentType = 1

type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// XY satisfies ecs.Positioned so the world can index entities by tile.
func (p Position) XY() (int, int) { return p.X, p.Y }
