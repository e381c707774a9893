package raster

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"
)

// fixedPoint is a vertex snapped to the 26.6 sub-pixel grid.
type fixedPoint struct {
	x, y int64
}

func snap(p Point) fixedPoint {
	return fixedPoint{
		x: int64(fixed.Int26_6(math32.Round(p.X * 64))),
		y: int64(fixed.Int26_6(math32.Round(p.Y * 64))),
	}
}

// edge evaluates the edge function of a->b at p. It is positive on the
// interior side of an edge of a positively oriented triangle.
func edge(a, b, p fixedPoint) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// topLeft reports whether a->b is a top or a left edge of a positively
// oriented triangle in Y-down screen space.
func topLeft(a, b fixedPoint) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy < 0 || (dy == 0 && dx > 0)
}

// DrawTriangle plots every pixel whose center lies inside the triangle abc.
//
// Pixels whose center falls exactly on an edge are only drawn for top and
// left edges, so triangles sharing an edge never cover a pixel twice. Both
// windings are filled; degenerate triangles plot nothing.
func DrawTriangle(t Target, a, b, c Point) {
	v0, v1, v2 := snap(a), snap(b), snap(c)

	area := edge(v0, v1, v2)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
	}

	// Bounding box in whole pixels, clamped to the target.
	minX := int(fixed.Int26_6(min(v0.x, v1.x, v2.x)).Floor())
	minY := int(fixed.Int26_6(min(v0.y, v1.y, v2.y)).Floor())
	maxX := int(fixed.Int26_6(max(v0.x, v1.x, v2.x)).Ceil())
	maxY := int(fixed.Int26_6(max(v0.y, v1.y, v2.y)).Ceil())
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, t.Width()-1), min(maxY, t.Height()-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Non top-left edges exclude their own boundary: biasing by one unit
	// turns "w > 0" into "w >= 0".
	var bias [3]int64
	if !topLeft(v1, v2) {
		bias[0] = -1
	}
	if !topLeft(v2, v0) {
		bias[1] = -1
	}
	if !topLeft(v0, v1) {
		bias[2] = -1
	}

	const one = 64
	start := fixedPoint{x: int64(minX)*one + one/2, y: int64(minY)*one + one/2}
	row0 := edge(v1, v2, start) + bias[0]
	row1 := edge(v2, v0, start) + bias[1]
	row2 := edge(v0, v1, start) + bias[2]

	// Per-pixel increments of each edge function.
	stepX0, stepY0 := -(v2.y-v1.y)*one, (v2.x-v1.x)*one
	stepX1, stepY1 := -(v0.y-v2.y)*one, (v0.x-v2.x)*one
	stepX2, stepY2 := -(v1.y-v0.y)*one, (v1.x-v0.x)*one

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := row0, row1, row2
		for x := minX; x <= maxX; x++ {
			if w0|w1|w2 >= 0 {
				t.Plot(x, y)
			}
			w0 += stepX0
			w1 += stepX1
			w2 += stepX2
		}
		row0 += stepY0
		row1 += stepY1
		row2 += stepY2
	}
}
