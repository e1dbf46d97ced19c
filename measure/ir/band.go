package ir

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/window"
)

// Band is a frequency range in Hz, low edge inclusive, high edge exclusive.
type Band struct {
	Low, High float64
}

// OctaveBands returns the octave bands centered on 125 Hz to 8 kHz.
func OctaveBands() []Band {
	centers := []float64{125, 250, 500, 1000, 2000, 4000, 8000}
	out := make([]Band, len(centers))
	for i, c := range centers {
		out[i] = Band{Low: c / math.Sqrt2, High: c * math.Sqrt2}
	}
	return out
}

// BandDecay estimates the reverberation time of ir in each band.
//
// The response is cut into Hann-windowed frames of frameSize samples with
// 50% overlap. Per frame and band the spectral power is summed into an
// energy envelope, which is backward-integrated and fitted like T20 (or
// -5 to -15 dB when the band does not decay 25 dB). Bands without enough
// decay report 0.
func (a *Analyzer) BandDecay(ir []float64, bands []Band, frameSize int) ([]float64, error) {
	return a.BandDecayWindow(ir, bands, frameSize, window.TypeHann)
}

// BandDecayWindow is BandDecay with a caller-selected analysis window.
func (a *Analyzer) BandDecayWindow(ir []float64, bands []Band, frameSize int, wt window.Type) ([]float64, error) {
	if err := a.check(ir); err != nil {
		return nil, err
	}
	if frameSize < 64 || frameSize&(frameSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrame, frameSize)
	}

	nyquist := a.SampleRate / 2
	binHz := a.SampleRate / float64(frameSize)
	bins := make([][2]int, len(bands))
	for i, b := range bands {
		if b.Low < 0 || b.High <= b.Low || b.High > nyquist {
			return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidBand, b.Low, b.High)
		}
		lo := int(math.Ceil(b.Low / binHz))
		hi := min(int(math.Ceil(b.High/binHz)), frameSize/2+1)
		if hi <= lo {
			hi = lo + 1
		}
		bins[i] = [2]int{lo, hi}
	}

	win, err := window.Generate(wt, frameSize, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, err
	}

	hop := frameSize / 2
	tail := ir[peakIndex(ir):]
	frames := max(1, (len(tail)-frameSize)/hop+1)

	envelopes := make([][]float64, len(bands))
	for i := range envelopes {
		envelopes[i] = make([]float64, frames)
	}

	frame := make([]float64, frameSize)
	in := make([]complex128, frameSize)
	out := make([]complex128, frameSize)
	half := frameSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	power := make([]float64, half)

	for f := range frames {
		clear(frame)
		copy(frame, tail[min(f*hop, len(tail)):])
		if err := window.ApplyInPlace(frame, win); err != nil {
			return nil, err
		}

		for i, v := range frame {
			in[i] = complex(v, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return nil, err
		}

		for k := range half {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}
		vecmath.Power(power, re, im)

		for b, r := range bins {
			var e float64
			for k := r[0]; k < r[1]; k++ {
				e += power[k]
			}
			envelopes[b][f] = e
		}
	}

	frameRate := a.SampleRate / float64(hop)
	result := make([]float64, len(bands))
	for b, env := range envelopes {
		for i := len(env) - 2; i >= 0; i-- {
			env[i] += env[i+1]
		}
		toDB(env)

		rt := fitDecay(env, -5, -25, frameRate)
		if rt == 0 {
			rt = fitDecay(env, -5, -15, frameRate)
		}
		result[b] = rt
	}

	return result, nil
}
