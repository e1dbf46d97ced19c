package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/effects/modulation"
	"github.com/cwbudde/algo-reverb/dsp/interp"
)

const diffusionStages = 4

// allpass is one modulated Schroeder all-pass stage:
//
//	d    = line(delay)
//	temp = x - g*d     (written to the line)
//	y    = d + g*temp
type allpass struct {
	line *delay.Line
	base float64
	// phase offset of this stage on the diffusion rotor
	offCos, offSin float64
}

func (a *allpass) process(x, g, delaySamples float64) float64 {
	d := a.line.ReadAndFeedback(x, delaySamples, -g)
	return d + g*(x-g*d)
}

// diffuser is one channel's cascade of all-pass stages.
type diffuser struct {
	stages [diffusionStages]allpass
}

// configure sizes the stages for sampleRate. channel selects the delay
// table row and the phase offsets.
func (df *diffuser) configure(channel int, sampleRate float64, mode interp.Mode) error {
	scale := sampleRate / referenceSampleRate
	for i := range df.stages {
		st := &df.stages[i]
		st.base = diffusionDelays[channel][i] * scale

		size := delay.SizeFor(st.base + maxDiffusionDrift*scale)
		if st.line == nil || st.line.Mode() != mode {
			line, err := delay.New(size, delay.WithMode(mode))
			if err != nil {
				return err
			}
			st.line = line
		} else if err := st.line.Resize(size); err != nil {
			return err
		}

		st.offCos, st.offSin = modulation.Offset(float64(channel*diffusionStages+i) / (numTanks * diffusionStages))
	}
	return nil
}

// process runs x through the cascade. rotor supplies the modulation phase
// for the current sample.
func (df *diffuser) process(x, g, excursion float64, rotor *modulation.Rotor) float64 {
	for i := range df.stages {
		st := &df.stages[i]
		mod := rotor.SinOffset(st.offCos, st.offSin)
		x = st.process(x, g, st.base+excursion*mod)
	}
	return x
}

func (df *diffuser) reset() {
	for i := range df.stages {
		df.stages[i].line.Reset()
	}
}
