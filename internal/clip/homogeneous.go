package clip

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Outcode records which clip planes a clip-space position violates.
type Outcode uint8

// Plane bits. A position is outside a plane when its test holds:
//
//	Left   x <  -w
//	Right  x >=  w
//	Bottom y <  -w
//	Top    y >=  w
//	Near   z <  -w
//	Far    z >=  w
const (
	Left Outcode = 1 << iota
	Right
	Bottom
	Top
	Near
	Far

	// Inside is the outcode of a position within the view volume.
	Inside Outcode = 0

	// Invalid is the outcode of a position with a NaN or infinite
	// component. No finite position can be left and right of the volume at
	// once, so Invalid never collides with a real outcode.
	Invalid = Left | Right | Bottom | Top | Near | Far
)

// planes lists every plane bit in the order they are clipped against.
var planes = [...]Outcode{Near, Far, Left, Right, Bottom, Top}

// Finite reports whether every component of p is a finite number.
func Finite(p f32.Vec4) bool {
	for _, c := range p {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Classify computes the outcode of p. Non-finite positions are Invalid.
func Classify(p f32.Vec4) Outcode {
	if !Finite(p) {
		return Invalid
	}
	x, y, z, w := p[0], p[1], p[2], p[3]
	code := Inside

	if x < -w {
		code |= Left
	} else if x >= w {
		code |= Right
	}

	if y < -w {
		code |= Bottom
	} else if y >= w {
		code |= Top
	}

	if z < -w {
		code |= Near
	} else if z >= w {
		code |= Far
	}

	return code
}

// distance returns the signed distance of p to plane. The clipper keeps the
// side where the distance is non-negative.
func distance(plane Outcode, p f32.Vec4) float32 {
	switch plane {
	case Left:
		return p[3] + p[0]
	case Right:
		return p[3] - p[0]
	case Bottom:
		return p[3] + p[1]
	case Top:
		return p[3] - p[1]
	case Near:
		return p[3] + p[2]
	default:
		return p[3] - p[2]
	}
}

// lerp interpolates all four components from a to b.
func lerp(a, b f32.Vec4, t float32) f32.Vec4 {
	return f32.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// intersect returns the point where the segment from in (inside) to out
// (outside) crosses plane. Always interpolating from the inside end makes
// shared edges produce identical points.
func intersect(plane Outcode, in, out f32.Vec4) f32.Vec4 {
	din, dout := distance(plane, in), distance(plane, out)
	return lerp(in, out, din/(din-dout))
}

// Point reports whether p lies inside the view volume.
func Point(p f32.Vec4) bool {
	return Classify(p) == Inside
}

// Line clips the segment p0-p1 against the view volume using
// Cohen-Sutherland outcodes in homogeneous space.
//
// Segments with a non-finite endpoint or whose endpoints share an outside
// plane are rejected, segments
// with both endpoints inside are returned unchanged, and every other segment
// is cut against each plane one of its endpoints violates.
func Line(p0, p1 f32.Vec4) (q0, q1 f32.Vec4, ok bool) {
	c0, c1 := Classify(p0), Classify(p1)

	if c0 == Invalid || c1 == Invalid || c0&c1 != 0 {
		return p0, p1, false
	}
	if c0|c1 == Inside {
		return p0, p1, true
	}

	mask := c0 | c1
	for _, plane := range planes {
		if mask&plane == 0 {
			continue
		}
		d0, d1 := distance(plane, p0), distance(plane, p1)
		switch {
		case d0 < 0 && d1 < 0:
			return p0, p1, false
		case d0 < 0:
			p0 = intersect(plane, p1, p0)
		case d1 < 0:
			p1 = intersect(plane, p0, p1)
		}
	}
	return p0, p1, true
}

// Tri is a clip-space triangle.
type Tri [3]f32.Vec4

// Triangle clips t against the view volume and appends the visible pieces to
// dst. Each plane splits a triangle into zero, one or two triangles, keeping
// the original winding. A triangle with a non-finite vertex yields nothing.
func Triangle(dst []Tri, t Tri) []Tri {
	c0, c1, c2 := Classify(t[0]), Classify(t[1]), Classify(t[2])

	if c0 == Invalid || c1 == Invalid || c2 == Invalid || c0&c1&c2 != 0 {
		return dst
	}
	if c0|c1|c2 == Inside {
		return append(dst, t)
	}

	work := []Tri{t}
	var next []Tri
	mask := c0 | c1 | c2
	for _, plane := range planes {
		if mask&plane == 0 {
			continue
		}
		next = next[:0]
		for _, tri := range work {
			next = splitTriangle(next, plane, tri)
		}
		work, next = next, work
		if len(work) == 0 {
			return dst
		}
	}
	return append(dst, work...)
}

// splitTriangle clips t against a single plane.
func splitTriangle(dst []Tri, plane Outcode, t Tri) []Tri {
	var d [3]float32
	inside := 0
	for i := range t {
		d[i] = distance(plane, t[i])
		if d[i] >= 0 {
			inside++
		}
	}

	switch inside {
	case 0:
		return dst
	case 3:
		return append(dst, t)
	case 1:
		// Rotate so the inside vertex comes first.
		r := 0
		for d[r] < 0 {
			r++
		}
		a, b, c := t[r], t[(r+1)%3], t[(r+2)%3]
		return append(dst, Tri{a, intersect(plane, a, b), intersect(plane, a, c)})
	default:
		// Rotate so the outside vertex comes last.
		r := 0
		for d[(r+2)%3] >= 0 {
			r++
		}
		a, b, c := t[r], t[(r+1)%3], t[(r+2)%3]
		bc := intersect(plane, b, c)
		ca := intersect(plane, a, c)
		return append(dst, Tri{a, b, bc}, Tri{a, bc, ca})
	}
}
