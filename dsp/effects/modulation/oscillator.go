package modulation

import (
	"fmt"
	"math"
)

const (
	minOscillatorRateHz = 0.0
	maxOscillatorRateHz = 100.0
)

// OscillatorOption mutates oscillator construction parameters.
type OscillatorOption func(*oscillatorConfig) error

type oscillatorConfig struct {
	rateHz float64
	phase  float64
}

// WithOscillatorRateHz sets the oscillation rate.
func WithOscillatorRateHz(rateHz float64) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if rateHz < minOscillatorRateHz || rateHz > maxOscillatorRateHz ||
			math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
			return fmt.Errorf("oscillator rate must be in [%g, %g]: %f",
				minOscillatorRateHz, maxOscillatorRateHz, rateHz)
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithOscillatorPhase sets the initial phase in cycles. Reset returns to it.
func WithOscillatorPhase(phase float64) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if math.IsNaN(phase) || math.IsInf(phase, 0) {
			return fmt.Errorf("oscillator phase must be finite: %f", phase)
		}

		cfg.phase = wrapPhase(phase)

		return nil
	}
}

// Oscillator is a low-frequency phase accumulator.
//
// The phase is kept in cycles and wrapped to [0, 1). It is never reset at
// block boundaries, so modulation stays continuous across calls to Advance.
type Oscillator struct {
	sampleRate float64
	phase      float64
	startPhase float64
	increment  float64
}

// NewOscillator creates an oscillator at 0 Hz and phase 0 unless overridden
// by options.
func NewOscillator(sampleRate float64, opts ...OscillatorOption) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	var cfg oscillatorConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Oscillator{
		sampleRate: sampleRate,
		phase:      cfg.phase,
		startPhase: cfg.phase,
		increment:  Increment(cfg.rateHz, sampleRate),
	}, nil
}

// Increment returns the per-sample phase increment in cycles for rateHz.
func Increment(rateHz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return rateHz / sampleRate
}

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// SetSampleRate updates the sample rate and rescales the increment so the
// rate in Hz is preserved.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	o.increment *= o.sampleRate / sampleRate
	o.sampleRate = sampleRate

	return nil
}

// RateHz returns the oscillation rate.
func (o *Oscillator) RateHz() float64 { return o.increment * o.sampleRate }

// SetIncrement sets the phase increment in cycles per sample directly.
// Non-finite values are ignored.
func (o *Oscillator) SetIncrement(inc float64) {
	if math.IsNaN(inc) || math.IsInf(inc, 0) {
		return
	}
	o.increment = inc
}

// Increment returns the phase increment in cycles per sample.
func (o *Oscillator) Increment() float64 { return o.increment }

// Phase returns the current phase in cycles, in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Advance moves the phase forward by n samples and returns the new phase.
func (o *Oscillator) Advance(n int) float64 {
	o.phase = wrapPhase(o.phase + o.increment*float64(n))
	return o.phase
}

// Waveform maps phase in cycles to a sinusoidal offset in [-1, 1].
func (o *Oscillator) Waveform(phase float64) float64 { return Sine(phase) }

// Seed starts r at the current phase and increment, so r.Sin follows
// Waveform sample by sample until the next Seed.
func (o *Oscillator) Seed(r *Rotor) {
	r.im = o.Waveform(o.phase)
	r.re = o.Waveform(o.phase + 0.25)
	r.stepIm = o.Waveform(o.increment)
	r.stepRe = o.Waveform(o.increment + 0.25)
}

// Reset returns the phase to its initial value.
func (o *Oscillator) Reset() { o.phase = o.startPhase }

// Sine returns sin(2*pi*phase).
func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func wrapPhase(p float64) float64 {
	p -= math.Floor(p)
	if p >= 1 {
		// Floor rounding for values just below an integer.
		p = 0
	}
	return p
}
