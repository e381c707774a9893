package termgl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestCross3(t *testing.T) {
	tests := []struct {
		a, b, want Vec3
	}{
		{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{V3(2, 0, 0), V3(4, 0, 0), V3(0, 0, 0)},
	}
	for _, tt := range tests {
		if got := Cross3(tt.a, tt.b); got != tt.want {
			t.Errorf("Cross3(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalize3(t *testing.T) {
	n := Normalize3(V3(3, 0, 4))
	if math32.Abs(Length3(n)-1) > eps {
		t.Errorf("|Normalize3(3,0,4)| = %v, want 1", Length3(n))
	}
	if math32.Abs(n[0]-0.6) > eps || n[1] != 0 || math32.Abs(n[2]-0.8) > eps {
		t.Errorf("Normalize3(3,0,4) = %v", n)
	}
	if got := Normalize3(Vec3{}); got != (Vec3{}) {
		t.Errorf("Normalize3(0) = %v, want zero", got)
	}
}

func TestVecHelpers(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)
	if got := Add3(a, b); got != V3(5, 7, 9) {
		t.Errorf("Add3 = %v", got)
	}
	if got := Sub3(b, a); got != V3(3, 3, 3) {
		t.Errorf("Sub3 = %v", got)
	}
	if got := Dot3(a, b); got != 32 {
		t.Errorf("Dot3 = %v, want 32", got)
	}
	if got := Point4(a); got != V4(1, 2, 3, 1) {
		t.Errorf("Point4 = %v", got)
	}
}
