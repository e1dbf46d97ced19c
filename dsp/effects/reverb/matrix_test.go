package reverb

import (
	"math"
	"testing"
)

func energy4(v [4]float64) float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3]
}

func TestHadamard4Orthogonal(t *testing.T) {
	h := Hadamard4()
	if e := h.OrthogonalityError(); e > 1e-15 {
		t.Fatalf("orthogonality error %g", e)
	}
	if h.Transpose() != h {
		t.Fatal("Hadamard4 must be symmetric")
	}

	v := [4]float64{0.3, -1.2, 2.5, 0.01}
	if d := math.Abs(energy4(h.Apply(v)) - energy4(v)); d > 1e-12 {
		t.Fatalf("energy changed by %g", d)
	}
	if back := h.Apply(h.Apply(v)); math.Abs(back[2]-v[2]) > 1e-15 {
		t.Fatalf("H*H*v = %v, want %v", back, v)
	}
}

func TestMatrixDetectsNonOrthogonal(t *testing.T) {
	m := Hadamard4()
	m[0][0] = 0.6
	if e := m.OrthogonalityError(); e < 0.01 {
		t.Fatalf("orthogonality error %g too small", e)
	}
}

func TestCrossFeedPreservesEnergy(t *testing.T) {
	x := newCrossFeed(crossFeedAngle)
	l := [4]float64{1, -0.5, 0.25, 2}
	r := [4]float64{-0.75, 0.1, 3, 0}
	before := energy4(l) + energy4(r)

	h := Hadamard4()
	l, r = h.Apply(l), h.Apply(r)
	x.apply(&l, &r)

	if d := math.Abs(energy4(l) + energy4(r) - before); d > 1e-12 {
		t.Fatalf("tank feedback map changed energy by %g", d)
	}
}

func TestCrossFeedZeroAngleIsIdentity(t *testing.T) {
	x := newCrossFeed(0)
	l := [4]float64{1, 2, 3, 4}
	r := [4]float64{5, 6, 7, 8}
	x.apply(&l, &r)
	if l != [4]float64{1, 2, 3, 4} || r != [4]float64{5, 6, 7, 8} {
		t.Fatalf("got %v %v", l, r)
	}
}
