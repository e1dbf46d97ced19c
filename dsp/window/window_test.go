package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetricEndpoints(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman} {
		w, err := Generate(typ, 65)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(w[0]) > 1e-12 || math.Abs(w[64]) > 1e-12 {
			t.Fatalf("%v: endpoints %v %v want 0", typ, w[0], w[64])
		}
		if math.Abs(w[32]-1) > 1e-12 {
			t.Fatalf("%v: center %v want 1", typ, w[32])
		}
		for i := range 32 {
			if math.Abs(w[i]-w[64-i]) > 1e-12 {
				t.Fatalf("%v: not symmetric at %d", typ, i)
			}
		}
	}
}

func TestGeneratePeriodicHann(t *testing.T) {
	w, err := Hann(8, WithPeriodic())
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.1464466, 0.5, 0.8535534, 1, 0.8535534, 0.5, 0.1464466}
	for i := range w {
		if math.Abs(w[i]-want[i]) > 1e-6 {
			t.Fatalf("index %d: got %v want %v", i, w[i], want[i])
		}
	}
	// Periodic Hann has power gain 3/8.
	if g := PowerGain(w); math.Abs(g-0.375) > 1e-12 {
		t.Fatalf("PowerGain: got %v want 0.375", g)
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("expected error for size 0")
	}
	if _, err := Generate(Type(99), 8); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if err := ApplyInPlace(make([]float64, 3), make([]float64, 4)); err == nil {
		t.Fatal("expected length mismatch")
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyInPlace(t *testing.T) {
	w, err := Generate(TypeHamming, 4)
	if err != nil {
		t.Fatal(err)
	}
	buf := []float64{2, 2, 2, 2}
	if err := ApplyInPlace(buf, w); err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		if math.Abs(buf[i]-2*w[i]) > 1e-15 {
			t.Fatalf("index %d: got %v want %v", i, buf[i], 2*w[i])
		}
	}
}
