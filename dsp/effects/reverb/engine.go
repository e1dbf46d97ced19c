package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/effects/modulation"
	"github.com/cwbudde/algo-reverb/dsp/effects/spatial"
	"github.com/cwbudde/algo-reverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-reverb/dsp/interp"
	"github.com/cwbudde/algo-reverb/dsp/paramcache"
)

const (
	defaultBlockSize = 128
	minBlockSize     = 1
	maxBlockSize     = 8192
)

var (
	// ErrLengthMismatch is returned when channel buffers differ in length.
	ErrLengthMismatch = errors.New("reverb: channel buffers must have equal length")
	// ErrOddInterleaved is returned for an interleaved buffer of odd length.
	ErrOddInterleaved = errors.New("reverb: interleaved buffer length must be even")
)

// Option mutates engine construction parameters.
type Option func(*engineConfig) error

type engineConfig struct {
	proc   core.ProcessorConfig
	mode   interp.Mode
	params Params
}

// WithBlockSize sets the internal processing chunk. Host blocks of any
// length are accepted; they are split into chunks of at most this many
// frames so scratch memory stays bounded.
func WithBlockSize(n int) Option {
	return func(cfg *engineConfig) error {
		if n < minBlockSize || n > maxBlockSize {
			return fmt.Errorf("reverb block size must be in [%d, %d]: %d", minBlockSize, maxBlockSize, n)
		}

		core.WithBlockSize(n)(&cfg.proc)

		return nil
	}
}

// WithInterpolation selects the fractional delay kernel of every modulated
// line. The default is cubic Lagrange.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *engineConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("reverb interpolation mode invalid: %v", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithParams sets the snapshot the coefficient cache is primed with.
func WithParams(p Params) Option {
	return func(cfg *engineConfig) error {
		cfg.params = p.Clamp()
		return nil
	}
}

// Engine is a stereo algorithmic reverb.
//
// Signal flow per frame: pre-filter, pre-delay, four-stage modulated
// all-pass diffuser per channel, two coupled four-line decay tanks with
// in-loop shelf damping, mid/side width, equal-power dry/wet mix.
//
// Every derived constant lives in a coefficient group that is recomputed
// only when one of its parameter fields changed since the previous block.
// Changed constants glide linearly across the block.
//
// Engine is not safe for concurrent use. Process does not allocate.
type Engine struct {
	sampleRate float64
	blockSize  int
	mode       interp.Mode

	coeffs *coefficients
	values [numFields]float64
	params Params

	preLow, preHigh [numTanks]onepole.State
	preDelay        [numTanks]*delay.Line
	diffusers       [numTanks]diffuser
	tanks           *tanks
	widener         *spatial.StereoWidener

	tankOsc, diffOsc     *modulation.Oscillator
	tankRotor, diffRotor modulation.Rotor

	ramp   rampState
	primed bool

	wetL, wetR []float64
	dryGain    []float64
	wetGain    []float64
	planarL    []float64
	planarR    []float64
}

// NewEngine creates an engine for sampleRate in [8000, 192000] Hz.
func NewEngine(sampleRate float64, opts ...Option) (*Engine, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	cfg := engineConfig{
		proc:   core.ApplyProcessorOptions(core.WithSampleRate(sampleRate), core.WithBlockSize(defaultBlockSize)),
		mode:   interp.Lagrange3,
		params: DefaultParams(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	coeffs, err := newCoefficients(cfg.proc.SampleRate)
	if err != nil {
		return nil, err
	}

	tankOsc, err := modulation.NewOscillator(cfg.proc.SampleRate)
	if err != nil {
		return nil, err
	}

	diffOsc, err := modulation.NewOscillator(cfg.proc.SampleRate, modulation.WithOscillatorPhase(0.25))
	if err != nil {
		return nil, err
	}

	widener, err := spatial.NewStereoWidener(cfg.proc.SampleRate)
	if err != nil {
		return nil, err
	}

	n := cfg.proc.BlockSize
	e := &Engine{
		blockSize: n,
		mode:      cfg.mode,
		coeffs:    coeffs,
		params:    cfg.params,
		tanks:     newTanks(),
		widener:   widener,
		tankOsc:   tankOsc,
		diffOsc:   diffOsc,
		wetL:      make([]float64, n),
		wetR:      make([]float64, n),
		dryGain:   make([]float64, n),
		wetGain:   make([]float64, n),
		planarL:   make([]float64, n),
		planarR:   make([]float64, n),
	}

	if err := e.SetSampleRate(cfg.proc.SampleRate); err != nil {
		return nil, err
	}

	return e, nil
}

// SetSampleRate re-derives every buffer capacity and coefficient for the new
// rate and resets the engine.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("reverb: %w", err)
	}

	for ch := range numTanks {
		size := delay.SizeFor(fieldInfos[FieldPreDelay].Max*sampleRate + 1)
		if e.preDelay[ch] == nil {
			line, err := delay.New(size, delay.WithMode(interp.Linear))
			if err != nil {
				return err
			}
			e.preDelay[ch] = line
		} else if err := e.preDelay[ch].Resize(size); err != nil {
			return err
		}

		if err := e.diffusers[ch].configure(ch, sampleRate, e.mode); err != nil {
			return err
		}
	}

	if err := e.tanks.configure(sampleRate, e.mode); err != nil {
		return err
	}
	if err := e.tankOsc.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := e.diffOsc.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := e.widener.SetSampleRate(sampleRate); err != nil {
		return err
	}

	e.sampleRate = sampleRate
	e.coeffs.setSampleRate(sampleRate)
	e.refresh(e.params)
	e.Reset()

	return nil
}

// Reset clears every delay line, filter state and oscillator phase. The
// next block applies its coefficients without ramping.
func (e *Engine) Reset() {
	e.clearSignalPath()
	e.tankOsc.Reset()
	e.diffOsc.Reset()
	e.primed = false
}

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// BlockSize returns the internal chunk size in frames.
func (e *Engine) BlockSize() int { return e.blockSize }

// Interpolation returns the fractional delay kernel.
func (e *Engine) Interpolation() interp.Mode { return e.mode }

// Params returns the last applied (clamped) snapshot.
func (e *Engine) Params() Params { return e.params }

// CacheStats returns the recompute counters of every coefficient group.
func (e *Engine) CacheStats() paramcache.Stats { return e.coeffs.cache.Stats() }

// TailSamples estimates how many frames of output follow the end of the
// input before the tail is inaudible.
func (e *Engine) TailSamples(p Params) int {
	p = p.Clamp()
	return int(math.Round((2*p.Decay + p.PreDelay) * e.sampleRate))
}

// refresh validates every coefficient group against p and stores the new
// ramp targets.
func (e *Engine) refresh(p Params) {
	e.params = p
	p.vector(&e.values)
	v := e.values[:]

	c := e.coeffs
	tank := c.tank.Get(v)
	mod := c.modDepth.Get(v)
	diff := c.diffusion.Get(v)
	chorus := c.chorus.Get(v)
	pre := c.preFilter.Get(v)
	low := c.lowShelf.Get(v)
	high := c.highShelf.Get(v)
	mix := c.mix.Get(v)
	pd := c.preDelay.Get(v)

	t := &e.ramp.target
	for tk := range numTanks {
		for i := range tankLines {
			t[rampTankDelay+tankIndex(tk, i)] = tank.delay[tk][i]
			t[rampTankGain+tankIndex(tk, i)] = tank.gain[tk][i]
		}
	}
	t[rampTankExcursion] = mod.excursion
	t[rampHighCoeff] = high.coeff
	t[rampHighAmount] = high.amount
	t[rampLowCoeff] = low.coeff
	t[rampLowAmount] = low.amount
	t[rampDiffusionGain] = diff.gain
	t[rampDiffusionExcursion] = diff.excursion
	t[rampPreLow] = pre.low
	t[rampPreHigh] = pre.high
	t[rampPreDelay] = pd.samples
	t[rampDry] = mix.dry
	t[rampWet] = mix.wet

	e.tankOsc.SetIncrement(chorus.tankIncrement)
	e.diffOsc.SetIncrement(chorus.diffusionIncrement)
}

// Process applies the reverb in place to one host block of planar stereo
// audio using parameter snapshot p. Out-of-range fields are clamped.
func (e *Engine) Process(left, right []float64, p Params) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}

	n := len(left)
	if n == 0 {
		return nil
	}

	widthFrom, widthTo := e.beginBlock(n, p)
	for off := 0; off < n; off += e.blockSize {
		end := min(off+e.blockSize, n)
		e.processChunk(left[off:end], right[off:end], widthFrom, widthTo, end, n)
	}
	e.ramp.finish()

	return nil
}

// ProcessStereo reads inL/inR and writes outL/outR. Outputs may alias the
// inputs.
func (e *Engine) ProcessStereo(inL, inR, outL, outR []float64, p Params) error {
	if len(inL) != len(inR) || len(outL) != len(inL) || len(outR) != len(inL) {
		return ErrLengthMismatch
	}

	core.CopyInto(outL, inL)
	core.CopyInto(outR, inR)

	return e.Process(outL, outR, p)
}

// ProcessInterleaved applies the reverb in place to interleaved stereo
// frames (L, R, L, R, ...).
func (e *Engine) ProcessInterleaved(buf []float64, p Params) error {
	if len(buf)%2 != 0 {
		return ErrOddInterleaved
	}

	n := len(buf) / 2
	if n == 0 {
		return nil
	}

	widthFrom, widthTo := e.beginBlock(n, p)
	for off := 0; off < n; off += e.blockSize {
		end := min(off+e.blockSize, n)
		frames := buf[2*off : 2*end]

		l := e.planarL[:end-off]
		r := e.planarR[:end-off]
		core.Deinterleave(l, r, frames)
		e.processChunk(l, r, widthFrom, widthTo, end, n)
		core.Interleave(frames, l, r)
	}
	e.ramp.finish()

	return nil
}

// beginBlock refreshes the cache, advances the oscillators over the block
// and starts the ramps. It returns the width glide endpoints.
func (e *Engine) beginBlock(n int, p Params) (widthFrom, widthTo float64) {
	e.refresh(p.Clamp())

	snap := !e.primed
	e.primed = true
	e.ramp.begin(n, snap)

	e.tankOsc.Seed(&e.tankRotor)
	e.diffOsc.Seed(&e.diffRotor)
	e.tankOsc.Advance(n)
	e.diffOsc.Advance(n)

	widthTo = e.params.Width
	if snap {
		// Clamped params keep width inside the widener range.
		_ = e.widener.SetWidth(widthTo)
	}

	return e.widener.Width(), widthTo
}

// processChunk runs at most blockSize frames in place. end is the frame
// index within the host block just past this chunk, n the host block length.
func (e *Engine) processChunk(left, right []float64, widthFrom, widthTo float64, end, n int) {
	m := len(left)
	wetL := e.wetL[:m]
	wetR := e.wetR[:m]
	dryGain := e.dryGain[:m]
	wetGain := e.wetGain[:m]

	f := &e.ramp.cur
	var energy float64

	for i := range m {
		e.ramp.advance()

		var x [numTanks]float64
		x[0], x[1] = left[i], right[i]

		for ch := range numTanks {
			band := e.preHigh[ch].Tick(x[ch], f[rampPreHigh]) - e.preLow[ch].Tick(x[ch], f[rampPreLow])

			pd := e.preDelay[ch]
			pd.Write(band)
			x[ch] = pd.ReadFractional(max(f[rampPreDelay], 0) + 1)

			x[ch] = e.diffusers[ch].process(x[ch], f[rampDiffusionGain], f[rampDiffusionExcursion], &e.diffRotor)
		}

		wetL[i], wetR[i] = e.tanks.process(x[0], x[1], f, &e.tankRotor)
		energy += wetL[i]*wetL[i] + wetR[i]*wetR[i]

		dryGain[i] = f[rampDry]
		wetGain[i] = f[rampWet]

		e.tankRotor.Step()
		e.diffRotor.Step()
	}

	if !core.IsFinite(energy) {
		e.clearSignalPath()
		core.Zero(wetL)
		core.Zero(wetR)
	}

	e.tanks.flushDenormals()
	for ch := range numTanks {
		e.preLow[ch].FlushDenormals()
		e.preHigh[ch].FlushDenormals()
	}

	target := widthTo
	if end < n {
		target = widthFrom + (widthTo-widthFrom)*float64(end)/float64(n)
	}
	// Lengths match by construction.
	_ = e.widener.RampStereoInPlace(wetL, wetR, target)

	vecmath.MulBlockInPlace(left, dryGain)
	vecmath.MulBlockInPlace(right, dryGain)
	vecmath.MulBlockInPlace(wetL, wetGain)
	vecmath.MulBlockInPlace(wetR, wetGain)
	vecmath.AddBlockInPlace(left, wetL)
	vecmath.AddBlockInPlace(right, wetR)
}

// clearSignalPath zeroes every delay line and filter state. Processing
// calls it when a non-finite value reached the tanks, for example from a
// NaN input sample.
func (e *Engine) clearSignalPath() {
	for ch := range numTanks {
		e.preLow[ch].Reset()
		e.preHigh[ch].Reset()
		e.preDelay[ch].Reset()
		e.diffusers[ch].reset()
	}
	e.tanks.reset()
}
