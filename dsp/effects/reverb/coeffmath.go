//go:build !fastmath

package reverb

import "math"

func mathExp(x float64) float64 {
	return math.Exp(x)
}

func mathPow2(x float64) float64 {
	return math.Exp2(x)
}
