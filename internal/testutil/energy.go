package testutil

import "math"

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	var e float64
	for _, v := range x {
		e += v * v
	}
	return e
}

// WindowEnergy splits x into consecutive windows of size samples and
// returns the energy of each complete window.
func WindowEnergy(x []float64, size int) []float64 {
	if size <= 0 {
		return nil
	}
	out := make([]float64, 0, len(x)/size)
	for off := 0; off+size <= len(x); off += size {
		out = append(out, Energy(x[off:off+size]))
	}
	return out
}

// PeakAbs returns max |x[i]|.
func PeakAbs(x []float64) float64 {
	var p float64
	for _, v := range x {
		p = math.Max(p, math.Abs(v))
	}
	return p
}
