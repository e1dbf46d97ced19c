package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/internal/testutil"
)

func TestCalculateSquareWave(t *testing.T) {
	s := Calculate([]float64{0.5, -0.5, 0.5, -0.5})
	if s.Frames != 4 || s.Peak != 0.5 || s.RMS != 0.5 || s.DC != 0 {
		t.Fatalf("got %+v", s)
	}
	if s.Crest != 1 || s.CrestDB != 0 {
		t.Fatalf("crest %v (%v dB)", s.Crest, s.CrestDB)
	}
	if math.Abs(s.PeakDB-(-6.0206)) > 1e-3 {
		t.Fatalf("peak dB %v", s.PeakDB)
	}
}

func TestCalculateSilence(t *testing.T) {
	for _, sig := range [][]float64{nil, make([]float64, 16)} {
		s := Calculate(sig)
		if !math.IsInf(s.PeakDB, -1) || !math.IsInf(s.RMSDB, -1) || s.Crest != 0 {
			t.Fatalf("silence: %+v", s)
		}
	}
}

func TestMeterMatchesCalculate(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 0.8, 1000)
	want := Calculate(sig)

	var m Meter
	for off := 0; off < len(sig); off += 64 {
		m.Update(sig[off:min(off+64, len(sig))])
	}
	got := m.Result()

	if got.Frames != want.Frames || got.Peak != want.Peak || got.PeakPos != want.PeakPos {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if math.Abs(got.RMS-want.RMS) > 1e-12 || math.Abs(got.DC-want.DC) > 1e-12 {
		t.Fatalf("rms/dc: got %v/%v, want %v/%v", got.RMS, got.DC, want.RMS, want.DC)
	}

	m.Reset()
	if m.Result().Frames != 0 {
		t.Fatal("Reset must clear the meter")
	}
}

func TestClippingAndNaN(t *testing.T) {
	s := Calculate([]float64{0.2, 1.5, math.NaN(), -1.01, math.Inf(1), 1})
	if s.Clipped != 2 {
		t.Fatalf("clipped = %d, want 2", s.Clipped)
	}
	if s.NaNs != 2 {
		t.Fatalf("non-finite = %d, want 2", s.NaNs)
	}
	if s.Peak != 1.5 || s.PeakPos != 1 {
		t.Fatalf("peak %v at %d", s.Peak, s.PeakPos)
	}
}
