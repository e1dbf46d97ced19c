package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/window"
	"github.com/cwbudde/algo-reverb/internal/testutil"
)

// decayingNoise returns noise whose energy falls 60 dB every rt seconds.
func decayingNoise(sampleRate, rt, seconds float64, seed int64) []float64 {
	n := int(sampleRate * seconds)
	out := testutil.DeterministicNoise(seed, 1, n)
	for i := range out {
		out[i] *= math.Pow(10, -3*float64(i)/(rt*sampleRate))
	}
	return out
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := NewAnalyzer(48000).Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("got %v want ErrEmptyIR", err)
	}
	if _, err := NewAnalyzer(0).Analyze([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("got %v want ErrInvalidSampleRate", err)
	}
	if _, err := NewAnalyzer(48000).RT60([]float64{1, 0, 0}); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("got %v want ErrNoDecay", err)
	}
	if _, err := NewAnalyzer(48000).SchroederIntegral(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("got %v want ErrEmptyIR", err)
	}
}

func TestSchroederIntegralMonotone(t *testing.T) {
	a := NewAnalyzer(16000)
	curve, err := a.SchroederIntegral(decayingNoise(16000, 0.5, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if curve[0] != 0 {
		t.Fatalf("curve[0] = %v want 0 dB", curve[0])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1] {
			t.Fatalf("curve rises at %d: %v > %v", i, curve[i], curve[i-1])
		}
	}
}

func TestAnalyzeRecoversDecayTime(t *testing.T) {
	tests := []struct {
		sr float64
		rt float64
	}{
		{16000, 0.4},
		{16000, 1.2},
		{48000, 2.0},
	}

	for _, tt := range tests {
		ir := append(make([]float64, 100), decayingNoise(tt.sr, tt.rt, 2*tt.rt, 7)...)
		m, err := NewAnalyzer(tt.sr).Analyze(ir)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(m.RT60-tt.rt)/tt.rt > 0.1 {
			t.Fatalf("rt %v: RT60 = %v", tt.rt, m.RT60)
		}
		if math.Abs(m.T20-tt.rt)/tt.rt > 0.1 {
			t.Fatalf("rt %v: T20 = %v", tt.rt, m.T20)
		}
		if m.PeakIndex < 100 {
			t.Fatalf("peak index %d inside leading silence", m.PeakIndex)
		}
		if m.D50 <= 0 || m.D50 >= 1 {
			t.Fatalf("D50 = %v out of (0, 1)", m.D50)
		}
		if math.IsInf(m.C80, 0) || math.IsNaN(m.C80) {
			t.Fatalf("C80 = %v", m.C80)
		}
		if m.CenterTime <= 0 || m.CenterTime > tt.rt {
			t.Fatalf("center time %v", m.CenterTime)
		}
	}
}

func TestRT60ShorterForFasterDecay(t *testing.T) {
	a := NewAnalyzer(16000)
	fast, err := a.RT60(decayingNoise(16000, 0.3, 1, 3))
	if err != nil {
		t.Fatal(err)
	}
	slow, err := a.RT60(decayingNoise(16000, 0.9, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if fast >= slow {
		t.Fatalf("fast %v should be below slow %v", fast, slow)
	}
}

func TestBandDecaySeparatesBands(t *testing.T) {
	const sr = 16000
	n := 3 * sr
	ir := make([]float64, n)
	for i := range ir {
		tm := float64(i) / sr
		low := math.Sin(2*math.Pi*500*tm) * math.Pow(10, -3*tm/2.0)
		high := math.Sin(2*math.Pi*3000*tm) * math.Pow(10, -3*tm/0.5)
		ir[i] = low + high
	}

	a := NewAnalyzer(sr)
	got, err := a.BandDecay(ir, []Band{{250, 1000}, {2000, 4000}}, 1024)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got[0]-2.0)/2.0 > 0.2 {
		t.Fatalf("low band RT = %v want ~2.0", got[0])
	}
	if math.Abs(got[1]-0.5)/0.5 > 0.2 {
		t.Fatalf("high band RT = %v want ~0.5", got[1])
	}
}

func TestBandDecayWindowChoice(t *testing.T) {
	const sr = 16000
	ir := decayingNoise(sr, 0.8, 2, 3)
	a := NewAnalyzer(sr)
	bands := []Band{{500, 1000}}

	hann, err := a.BandDecay(ir, bands, 512)
	if err != nil {
		t.Fatal(err)
	}
	blackman, err := a.BandDecayWindow(ir, bands, 512, window.TypeBlackman)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hann[0]-blackman[0]) > 0.15*hann[0] {
		t.Fatalf("Hann %v vs Blackman %v", hann[0], blackman[0])
	}

	if _, err := a.BandDecayWindow(ir, bands, 512, window.Type(-1)); err == nil {
		t.Fatal("expected error for unknown window type")
	}
}

func TestBandDecayErrors(t *testing.T) {
	a := NewAnalyzer(16000)
	ir := decayingNoise(16000, 0.5, 1, 1)

	if _, err := a.BandDecay(ir, OctaveBands()[:1], 100); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("got %v want ErrInvalidFrame", err)
	}
	if _, err := a.BandDecay(ir, []Band{{1000, 500}}, 512); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("got %v want ErrInvalidBand", err)
	}
	// 8 kHz octave tops out above Nyquist at 16 kHz.
	if _, err := a.BandDecay(ir, OctaveBands(), 512); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("got %v want ErrInvalidBand", err)
	}
	if _, err := a.BandDecay(nil, OctaveBands(), 512); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("got %v want ErrEmptyIR", err)
	}
}

func TestOctaveBands(t *testing.T) {
	bands := OctaveBands()
	if len(bands) != 7 {
		t.Fatalf("len = %d want 7", len(bands))
	}
	for i := 1; i < len(bands); i++ {
		if math.Abs(bands[i].Low-bands[i-1].High) > 1e-9 {
			t.Fatalf("bands %d and %d not contiguous", i-1, i)
		}
	}
}
