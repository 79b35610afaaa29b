package input

import (
	"math"
	"testing"

	"github.com/tomz197/battlecursor/internal/physics"
)

func TestKeyVector(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		want                  physics.Vec
	}{
		{"none", false, false, false, false, physics.Vec{}},
		{"up", true, false, false, false, physics.Vec{Y: -1}},
		{"right", false, false, false, true, physics.Vec{X: 1}},
		{"opposed", true, true, false, false, physics.Vec{}},
		{"up-left", true, false, true, false, physics.Vec{X: -0.707, Y: -0.707}},
		{"down-right", false, true, false, true, physics.Vec{X: 0.707, Y: 0.707}},
		{"all", true, true, true, true, physics.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyVector(tt.up, tt.down, tt.left, tt.right)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragVector(t *testing.T) {
	start := physics.Vec{X: 100, Y: 100}

	if v := DragVector(start, physics.Vec{X: 104, Y: 103}); v != (physics.Vec{}) {
		t.Errorf("dead zone drag = %+v", v)
	}
	if v := DragVector(start, physics.Vec{X: 105, Y: 100}); v != (physics.Vec{}) {
		t.Errorf("drag of exactly the dead zone = %+v", v)
	}

	v := DragVector(start, physics.Vec{X: 125, Y: 100})
	if math.Abs(v.X-0.5) > 1e-9 || v.Y != 0 {
		t.Errorf("half drag = %+v, want {0.5 0}", v)
	}

	v = DragVector(start, physics.Vec{X: 100, Y: 400})
	if v.X != 0 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("long drag = %+v, want unit length", v)
	}
}

func TestDragVectorDiagonalKeepsItsLength(t *testing.T) {
	start := physics.Vec{X: 100, Y: 100}

	// A drag's length sets the speed, so diagonals are not scaled again.
	v := DragVector(start, physics.Vec{X: 150, Y: 150})
	if math.Abs(v.Len()-1) > 1e-9 || math.Abs(v.X-v.Y) > 1e-9 {
		t.Errorf("full diagonal drag = %+v, want unit length", v)
	}
	v = DragVector(start, physics.Vec{X: 115, Y: 120})
	if math.Abs(v.X-0.3) > 1e-9 || math.Abs(v.Y-0.4) > 1e-9 {
		t.Errorf("partial diagonal drag = %+v, want {0.3 0.4}", v)
	}
}
