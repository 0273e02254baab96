package system

import (
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/gamemap"
)

// Octant transforms for recursive shadowcasting: a (col, row) sweep pair maps
// to a world offset through each 4-element matrix.
var fovOctants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// UpdateFOV clears visibility and recomputes it around the viewer entity.
func UpdateFOV(w *ecs.World, gmap *gamemap.GameMap, viewer ecs.EntityID, radius int) {
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			gmap.At(x, y).Visible = false
		}
	}

	posComp := w.Get(viewer, component.CPosition)
	if posComp == nil {
		return
	}
	pos := posComp.(component.Position)

	if gmap.InBounds(pos.X, pos.Y) {
		t := gmap.At(pos.X, pos.Y)
		t.Visible = true
		t.Explored = true
	}
	for _, m := range fovOctants {
		castShadows(gmap, pos.X, pos.Y, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
}

// castShadows sweeps one octant row by row, narrowing the lit slope range as
// walls are encountered (standard recursive shadowcasting).
func castShadows(gmap *gamemap.GameMap, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && gmap.InBounds(wx, wy) {
				t := gmap.At(wx, wy)
				t.Visible = true
				t.Explored = true
			}

			opaque := !gmap.InBounds(wx, wy) || !gmap.IsTransparent(wx, wy)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castShadows(gmap, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
