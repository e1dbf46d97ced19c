package modulation

import "math"

// Rotor generates sin/cos of a linearly advancing phase with one complex
// multiply per sample. It is seeded by [Oscillator.Seed] at the start of
// each block, so recurrence error never accumulates beyond one block.
type Rotor struct {
	re, im         float64
	stepRe, stepIm float64
}

// Step advances the rotor by one sample.
func (r *Rotor) Step() {
	re := r.re*r.stepRe - r.im*r.stepIm
	im := r.re*r.stepIm + r.im*r.stepRe

	// First-order magnitude correction toward 1.
	g := 1.5 - 0.5*(re*re+im*im)
	r.re = re * g
	r.im = im * g
}

// Sin returns the sine of the current phase.
func (r *Rotor) Sin() float64 { return r.im }

// Cos returns the cosine of the current phase.
func (r *Rotor) Cos() float64 { return r.re }

// SinOffset returns sin(phase + offset) given cos(offset) and sin(offset).
func (r *Rotor) SinOffset(cosOffset, sinOffset float64) float64 {
	return r.im*cosOffset + r.re*sinOffset
}

// Offset returns cos and sin of a phase offset in cycles, for use with
// SinOffset.
func Offset(cycles float64) (cosOffset, sinOffset float64) {
	s, c := math.Sincos(2 * math.Pi * cycles)
	return c, s
}
