package raster

import (
	"fmt"
	"testing"
)

// grid is a Target that counts how many times each pixel is plotted.
type grid struct {
	w, h   int
	counts map[[2]int]int
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, counts: make(map[[2]int]int)}
}

func (g *grid) Width() int  { return g.w }
func (g *grid) Height() int { return g.h }
func (g *grid) Plot(x, y int) {
	g.counts[[2]int{x, y}]++
}

func (g *grid) covered() int { return len(g.counts) }

// =============================================================================
// Points and lines
// =============================================================================

func TestDrawPoint_Floors(t *testing.T) {
	g := newGrid(10, 10)
	DrawPoint(g, Pt(3.9, 4.2))
	if g.counts[[2]int{3, 4}] != 1 || g.covered() != 1 {
		t.Errorf("DrawPoint(3.9, 4.2) plotted %v, want only (3,4)", g.counts)
	}
}

func TestBresenham(t *testing.T) {
	tests := []struct {
		x0, y0, x1, y1 int
		want           int
	}{
		{0, 0, 3, 0, 4},
		{0, 0, 0, 5, 6},
		{0, 0, 3, 3, 4},
		{0, 0, 7, 2, 8},
		{2, 9, 0, 1, 9},
		{4, 4, 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d-%d,%d", tt.x0, tt.y0, tt.x1, tt.y1), func(t *testing.T) {
			var pts [][2]int
			Bresenham(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) {
				pts = append(pts, [2]int{x, y})
			})
			if len(pts) != tt.want {
				t.Fatalf("plotted %d pixels, want %d: %v", len(pts), tt.want, pts)
			}
			if pts[0] != [2]int{tt.x0, tt.y0} {
				t.Errorf("first pixel = %v, want (%d,%d)", pts[0], tt.x0, tt.y0)
			}
			if pts[len(pts)-1] != [2]int{tt.x1, tt.y1} {
				t.Errorf("last pixel = %v, want (%d,%d)", pts[len(pts)-1], tt.x1, tt.y1)
			}
			for i := 1; i < len(pts); i++ {
				dx, dy := abs(pts[i][0]-pts[i-1][0]), abs(pts[i][1]-pts[i-1][1])
				if dx > 1 || dy > 1 {
					t.Errorf("gap between %v and %v", pts[i-1], pts[i])
				}
			}
		})
	}
}

func TestDrawLine_Symmetric(t *testing.T) {
	a := newGrid(20, 20)
	b := newGrid(20, 20)
	DrawLine(a, Pt(1, 1), Pt(11, 5))
	DrawLine(b, Pt(11, 5), Pt(1, 1))
	if a.covered() != b.covered() {
		t.Errorf("forward covers %d pixels, reverse %d", a.covered(), b.covered())
	}
}

// =============================================================================
// Triangles
// =============================================================================

func TestDrawTriangle_SharedEdgeCoveredOnce(t *testing.T) {
	g := newGrid(8, 8)
	DrawTriangle(g, Pt(0, 0), Pt(4, 0), Pt(4, 4))
	DrawTriangle(g, Pt(0, 0), Pt(4, 4), Pt(0, 4))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if n := g.counts[[2]int{x, y}]; n != 1 {
				t.Errorf("pixel (%d,%d) covered %d times, want 1", x, y, n)
			}
		}
	}
	if g.covered() != 16 {
		t.Errorf("covered %d pixels, want 16", g.covered())
	}
}

func TestDrawTriangle_BothWindings(t *testing.T) {
	cw := newGrid(16, 16)
	ccw := newGrid(16, 16)
	DrawTriangle(cw, Pt(1, 1), Pt(12, 3), Pt(5, 11))
	DrawTriangle(ccw, Pt(1, 1), Pt(5, 11), Pt(12, 3))
	if cw.covered() == 0 {
		t.Fatal("triangle covered no pixels")
	}
	if cw.covered() != ccw.covered() {
		t.Errorf("windings cover %d and %d pixels", cw.covered(), ccw.covered())
	}
}

func TestDrawTriangle_Degenerate(t *testing.T) {
	g := newGrid(10, 10)
	DrawTriangle(g, Pt(1, 1), Pt(5, 5), Pt(9, 9))
	if g.covered() != 0 {
		t.Errorf("degenerate triangle covered %d pixels", g.covered())
	}
}

func TestDrawTriangle_ClampedToTarget(t *testing.T) {
	g := newGrid(4, 4)
	DrawTriangle(g, Pt(-10, -10), Pt(30, -10), Pt(-10, 30))
	for p := range g.counts {
		if p[0] < 0 || p[0] >= 4 || p[1] < 0 || p[1] >= 4 {
			t.Errorf("plotted outside the target: %v", p)
		}
	}
	if g.covered() != 16 {
		t.Errorf("covered %d pixels, want 16", g.covered())
	}
}

func TestDrawTriangle_PixelCenters(t *testing.T) {
	// Right triangle whose hypotenuse passes through pixel centers.
	g := newGrid(8, 8)
	DrawTriangle(g, Pt(0, 0), Pt(3, 0), Pt(0, 3))
	// Centers strictly inside: x+y+1 < 3 -> (0,0),(1,0),(0,1).
	want := [][2]int{{0, 0}, {1, 0}, {0, 1}}
	for _, p := range want {
		if g.counts[p] != 1 {
			t.Errorf("pixel %v not covered", p)
		}
	}
}
