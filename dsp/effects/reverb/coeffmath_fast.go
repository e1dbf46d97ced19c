//go:build fastmath

package reverb

import (
	"github.com/meko-christian/algo-approx"
)

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathPow2 computes 2^x using the identity 2^x = e^(x * ln(2)).
func mathPow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
