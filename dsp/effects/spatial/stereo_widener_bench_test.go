package spatial

import "testing"

func BenchmarkStereoWidenerRamp(b *testing.B) {
	w, err := NewStereoWidener(48000)
	if err != nil {
		b.Fatal(err)
	}

	left := make([]float64, 128)
	right := make([]float64, 128)
	targets := [2]float64{0.5, 1.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.RampStereoInPlace(left, right, targets[i&1])
	}
}
