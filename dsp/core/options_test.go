package core

import (
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(64))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 64 {
		t.Fatalf("block size = %d, want 64", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestValidateSampleRate(t *testing.T) {
	for _, sr := range []float64{8000, 44100, 48000, 192000} {
		if err := ValidateSampleRate(sr); err != nil {
			t.Fatalf("ValidateSampleRate(%v) = %v", sr, err)
		}
	}

	for _, sr := range []float64{0, -1, 7999, 192001, math.NaN(), math.Inf(1)} {
		if err := ValidateSampleRate(sr); err == nil {
			t.Fatalf("ValidateSampleRate(%v): expected error", sr)
		}
	}
}
