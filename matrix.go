package termgl

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Mat4 is a 4x4 matrix in row-major order: element (row r, column c) is
// m[4*r+c]. Matrices multiply column vectors, so MulVec4(m, v) computes m*v
// and MulMat4(a, b) applies b first.
type Mat4 = f32.Mat4

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 returns a translation matrix.
func Translate4(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale4 returns a scaling matrix.
func Scale4(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Rotate4 returns a rotation of angle radians about axis, counter-clockwise
// when looking down the axis toward the origin. A zero axis yields the
// identity.
func Rotate4(angle float32, axis Vec3) Mat4 {
	axis = Normalize3(axis)
	x, y, z := axis[0], axis[1], axis[2]
	if x == 0 && y == 0 && z == 0 {
		return Identity4()
	}

	s, c := math32.Sincos(angle)
	t := 1 - c
	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed perspective projection mapping the
// view frustum to the clip volume -w <= z <= w. fovy is the vertical field
// of view in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// LookAt returns a right-handed view matrix for a camera at eye looking at
// center with the given up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := Normalize3(Sub3(center, eye))
	s := Normalize3(Cross3(f, up))
	u := Cross3(s, f)
	return Mat4{
		s[0], s[1], s[2], -Dot3(s, eye),
		u[0], u[1], u[2], -Dot3(u, eye),
		-f[0], -f[1], -f[2], Dot3(f, eye),
		0, 0, 0, 1,
	}
}

// MulMat4 returns the product a*b.
func MulMat4(a, b Mat4) Mat4 {
	var m Mat4
	for r := range 4 {
		for c := range 4 {
			m[4*r+c] = a[4*r]*b[c] + a[4*r+1]*b[4+c] + a[4*r+2]*b[8+c] + a[4*r+3]*b[12+c]
		}
	}
	return m
}

// MulVec4 returns the product m*v.
func MulVec4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
