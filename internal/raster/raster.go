// Package raster converts screen-space points, lines and triangles into
// pixel coverage.
//
// Coordinates are in pixels with the origin at the top-left corner and Y
// growing downward. Pixel (x, y) covers [x, x+1) x [y, y+1) and its center is
// at (x+0.5, y+0.5).
package raster

import "github.com/chewxy/math32"

// Point is a screen-space position.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Target receives the pixels covered by a primitive. Plot is only called
// with coordinates inside [0, Width) x [0, Height) for triangles; points and
// lines rely on the target to ignore out-of-range writes.
type Target interface {
	Width() int
	Height() int
	Plot(x, y int)
}

// pixel returns the pixel containing p.
func pixel(p Point) (int, int) {
	return int(math32.Floor(p.X)), int(math32.Floor(p.Y))
}

// DrawPoint plots the pixel containing p.
func DrawPoint(t Target, p Point) {
	x, y := pixel(p)
	t.Plot(x, y)
}

// DrawLine plots every pixel from p0 to p1 inclusive using Bresenham's
// integer algorithm.
func DrawLine(t Target, p0, p1 Point) {
	x0, y0 := pixel(p0)
	x1, y1 := pixel(p1)
	Bresenham(x0, y0, x1, y1, t.Plot)
}

// Bresenham calls plot for each pixel of the integer segment (x0, y0)-(x1, y1),
// endpoints included, in order from the first endpoint.
func Bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
