package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1, 48)
	if len(s) != 48 || math.Abs(s[0]) > 1e-15 {
		t.Fatalf("len=%d s[0]=%v", len(s), s[0])
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := DeterministicNoise(42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)

	differs := false
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed differs at %d", i)
		}
		if a[i] < -0.5 || a[i] >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
		if a[i] != c[i] {
			differs = true
		}
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulseAndDC(t *testing.T) {
	imp := Impulse(8, 3)
	if Energy(imp) != 1 || imp[3] != 1 {
		t.Fatalf("impulse = %v", imp)
	}
	if Energy(Impulse(4, 10)) != 0 {
		t.Fatal("out-of-range impulse must be silent")
	}
	if Energy(Ones(5)) != 5 || DC(0.5, 4)[3] != 0.5 {
		t.Fatal("DC helpers wrong")
	}
}

func TestWindowEnergy(t *testing.T) {
	x := []float64{1, 1, 2, 0, 3, 0, 9}
	got := WindowEnergy(x, 2)
	want := []float64{2, 4, 9}
	RequireSliceNearlyEqual(t, got, want, 0)

	if WindowEnergy(x, 0) != nil {
		t.Fatal("size 0 must return nil")
	}
}

func TestMaxAbsDiffAndPeak(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 3})
	if err != nil || d != 0.5 {
		t.Fatalf("MaxAbsDiff = %v, %v", d, err)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if p := PeakAbs([]float64{0.5, -2, 1}); p != 2 {
		t.Fatalf("PeakAbs = %v, want 2", p)
	}
	RequireBounded(t, []float64{0.5, -2, 1}, 2)
}
