package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSmoothDampConverges(t *testing.T) {
	current := cp.Vector{}
	target := cp.Vector{X: 10, Y: -4}
	var vel cp.Vector

	for i := 0; i < 200; i++ {
		current = SmoothDamp(current, target, &vel, 0.05, 0.02)
	}
	if current.Distance(target) > 1e-3 {
		t.Fatalf("expected convergence to %v, got %v", target, current)
	}
}

func TestSmoothDampNeverOvershoots(t *testing.T) {
	current := cp.Vector{}
	target := cp.Vector{X: 5}
	var vel cp.Vector

	for i := 0; i < 100; i++ {
		current = SmoothDamp(current, target, &vel, 0.1, 0.02)
		if current.X > target.X+1e-9 {
			t.Fatalf("step %d overshot: %v", i, current.X)
		}
	}
}

func TestSmoothDampZeroTimeSnaps(t *testing.T) {
	var vel cp.Vector
	got := SmoothDamp(cp.Vector{}, cp.Vector{X: 3}, &vel, 0, 0.02)
	if math.Abs(got.X-3) > 1e-3 {
		t.Fatalf("expected near-instant response, got %v", got.X)
	}
}

func TestSmoothDampNoStep(t *testing.T) {
	var vel cp.Vector
	start := cp.Vector{X: 1, Y: 2}
	if got := SmoothDamp(start, cp.Vector{X: 9}, &vel, 0.1, 0); got != start {
		t.Fatalf("zero dt must not move, got %v", got)
	}
	if got := SmoothDamp(start, cp.Vector{X: 9}, nil, 0.1, 0.02); got != start {
		t.Fatalf("nil velocity must not move, got %v", got)
	}
}

func TestClampAndSign(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{v: -2, lo: -1, hi: 1, want: -1},
		{v: 0.5, lo: -1, hi: 1, want: 0.5},
		{v: 7, lo: -1, hi: 1, want: 1},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
	if Sign(-0.1) != -1 || Sign(0) != 1 || Sign(3) != 1 {
		t.Fatalf("unexpected Sign results")
	}
	if Lerp(2, 4, 0.5) != 3 {
		t.Fatalf("unexpected Lerp result")
	}
}
