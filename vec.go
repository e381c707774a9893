package termgl

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Vec3 is a 3D vector, used for positions and directions in scene space.
type Vec3 = f32.Vec3

// Vec4 is a homogeneous 4D vector. Vertex shaders return clip-space
// positions as Vec4.
type Vec4 = f32.Vec4

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Point4 extends a position with w = 1.
func Point4(p Vec3) Vec4 {
	return Vec4{p[0], p[1], p[2], 1}
}

// Add3 returns a + b.
func Add3(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v scaled by s.
func Scale3(v Vec3, s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v Vec3) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize3(v Vec3) Vec3 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return Scale3(v, 1/l)
}
