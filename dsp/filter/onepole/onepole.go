package onepole

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// MaxCutoffRatio bounds cutoff/sampleRate so the prewarped coefficient stays
// finite.
const MaxCutoffRatio = 0.49

// Coefficient returns the TPT integrator gain G = g/(1+g) with
// g = tan(pi*fc/fs). The cutoff is clamped to (0, MaxCutoffRatio*fs].
func Coefficient(cutoffHz, sampleRate float64) float64 {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0
	}
	if !core.IsFinite(cutoffHz) || cutoffHz <= 0 {
		return 0
	}
	cutoffHz = math.Min(cutoffHz, MaxCutoffRatio*sampleRate)

	g := math.Tan(math.Pi * cutoffHz / sampleRate)
	return g / (1 + g)
}

// State is the integrator memory of one TPT one-pole.
type State struct {
	s float64
}

// Tick runs one sample through the filter with coefficient c and returns
// the low-pass output.
func (st *State) Tick(x, c float64) float64 {
	v := c * (x - st.s)
	lp := v + st.s
	st.s = lp + v
	return lp
}

// Value returns the integrator state.
func (st *State) Value() float64 { return st.s }

// Reset clears the integrator.
func (st *State) Reset() { st.s = 0 }

// FlushDenormals zeroes a state that decayed below the denormal threshold.
func (st *State) FlushDenormals() {
	st.s = core.FlushDenormals(st.s)
}

// LowPass ticks the state and returns the low-pass output.
func (st *State) LowPass(x, c float64) float64 { return st.Tick(x, c) }

// HighPass ticks the state and returns the high-pass output.
func (st *State) HighPass(x, c float64) float64 { return x - st.Tick(x, c) }

// HighShelf mixes the low-pass node lp with amount times the high band.
func HighShelf(x, lp, amount float64) float64 {
	return lp + amount*(x-lp)
}

// LowShelf attenuates the low band of x by amount (linear gain).
func LowShelf(x, lp, amount float64) float64 {
	return x - (1-amount)*lp
}
