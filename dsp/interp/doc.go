// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:   2-point linear interpolation
//   - [Hermite4]:  4-point cubic Hermite (Catmull-Rom)
//   - [Lagrange4]: 4-point cubic Lagrange
//
// The [Mode] enum selects one of them at construction time of a
// [github.com/cwbudde/algo-reverb/dsp/delay.Line]. All kernels share the
// same 4-point signature so callers can switch modes without branching on
// the number of taps.
package interp
