package termgl

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func vecNear(a, b Vec4, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestMulVec4(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		v    Vec4
		want Vec4
	}{
		{"identity", Identity4(), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
		{"translate point", Translate4(1, -2, 3), V4(1, 1, 1, 1), V4(2, -1, 4, 1)},
		{"translate direction", Translate4(1, -2, 3), V4(1, 1, 1, 0), V4(1, 1, 1, 0)},
		{"scale", Scale4(2, 3, 4), V4(1, 1, 1, 1), V4(2, 3, 4, 1)},
		{"rotate z 90", Rotate4(math32.Pi/2, V3(0, 0, 1)), V4(1, 0, 0, 1), V4(0, 1, 0, 1)},
		{"rotate y 90", Rotate4(math32.Pi/2, V3(0, 1, 0)), V4(0, 0, 1, 1), V4(1, 0, 0, 1)},
		{"rotate zero axis", Rotate4(1, V3(0, 0, 0)), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MulVec4(tt.m, tt.v); !vecNear(got, tt.want, eps) {
				t.Errorf("MulVec4 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulMat4_Order(t *testing.T) {
	// Scale first, then translate.
	m := MulMat4(Translate4(10, 0, 0), Scale4(2, 2, 2))
	if got := MulVec4(m, V4(1, 1, 1, 1)); !vecNear(got, V4(12, 2, 2, 1), eps) {
		t.Errorf("translate*scale applied to (1,1,1) = %v, want (12,2,2,1)", got)
	}
	if got := MulMat4(Identity4(), m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
}

func TestPerspective(t *testing.T) {
	p := Perspective(math32.Pi/2, 1, 1, 10)

	near := MulVec4(p, V4(0, 0, -1, 1))
	if got := near[2] / near[3]; math32.Abs(got+1) > eps {
		t.Errorf("near plane NDC z = %v, want -1", got)
	}
	far := MulVec4(p, V4(0, 0, -10, 1))
	if got := far[2] / far[3]; math32.Abs(got-1) > 1e-4 {
		t.Errorf("far plane NDC z = %v, want 1", got)
	}
	// A 90 degree fov puts the frustum edge at x = -z.
	edge := MulVec4(p, V4(2, 0, -2, 1))
	if got := edge[0] / edge[3]; math32.Abs(got-1) > eps {
		t.Errorf("frustum edge NDC x = %v, want 1", got)
	}
}

func TestLookAt(t *testing.T) {
	view := LookAt(V3(0, 0, 2), V3(0, 0, 0), V3(0, 1, 0))
	if got := MulVec4(view, V4(0, 0, 0, 1)); !vecNear(got, V4(0, 0, -2, 1), eps) {
		t.Errorf("target in view space = %v, want (0,0,-2,1)", got)
	}
	if got := MulVec4(view, V4(1, 1, 0, 1)); !vecNear(got, V4(1, 1, -2, 1), eps) {
		t.Errorf("(1,1,0) in view space = %v, want (1,1,-2,1)", got)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math32.Abs(got-math32.Pi) > eps {
		t.Errorf("Radians(180) = %v, want Pi", got)
	}
}
