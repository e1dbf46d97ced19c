package core

import "math"

const (
	defaultEpsilon = 1e-12

	// DenormalThreshold is the magnitude below which FlushDenormals returns 0.
	DenormalThreshold = 1e-30
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	if x > -DenormalThreshold && x < DenormalThreshold {
		return 0
	}

	return x
}

// FlushDenormalsInPlace applies FlushDenormals to every element of buf.
func FlushDenormalsInPlace(buf []float64) {
	for i, v := range buf {
		if v > -DenormalThreshold && v < DenormalThreshold {
			buf[i] = 0
		}
	}
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// EqualPowerGains returns the dry and wet gains of an equal-power crossfade
// at position mix in [0, 1]. The endpoints are exact: mix 0 yields (1, 0) and
// mix 1 yields (0, 1).
func EqualPowerGains(mix float64) (dry, wet float64) {
	mix = Clamp(mix, 0, 1)
	switch mix {
	case 0:
		return 1, 0
	case 1:
		return 0, 1
	}

	angle := mix * math.Pi / 2
	return math.Cos(angle), math.Sin(angle)
}
