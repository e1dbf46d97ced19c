package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/effects/modulation"
	"github.com/cwbudde/algo-reverb/dsp/interp"
)

const (
	numTanks  = 2
	tankLines = 4

	// Rotation angle of the left/right cross-feed, in radians.
	crossFeedAngle = 0.12
)

// Input injection and output tap patterns, per line.
var (
	tankInjection = [tankLines]float64{0.5, -0.5, 0.5, -0.5}
	tankTap       = [numTanks][tankLines]float64{
		{0.5, 0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5, 0.5},
	}
)

// tanks is the pair of coupled four-line feedback networks.
//
// Per sample, each line is read at its modulated delay, passed through its
// damping shelves, mixed by the Hadamard matrix within its tank, rotated
// against the matching line of the other tank, scaled by its decay gain
// and written back together with the injected input.
type tanks struct {
	lines   [numTanks][tankLines]*delay.Line
	damping dampingBank
	matrix  Matrix4
	cross   crossFeed

	offCos, offSin [numTanks][tankLines]float64
}

func newTanks() *tanks {
	return &tanks{
		matrix: Hadamard4(),
		cross:  newCrossFeed(crossFeedAngle),
	}
}

// configure sizes every line for the largest delay reachable at sampleRate.
func (tk *tanks) configure(sampleRate float64, mode interp.Mode) error {
	scale := sampleRate / referenceSampleRate
	maxMult := sizeMultiplier(1)

	for t := range numTanks {
		for i := range tankLines {
			size := delay.SizeFor(tankDelays[t][i]*maxMult*scale + maxChorusDrift*scale)

			if tk.lines[t][i] == nil || tk.lines[t][i].Mode() != mode {
				line, err := delay.New(size, delay.WithMode(mode))
				if err != nil {
					return err
				}
				tk.lines[t][i] = line
			} else if err := tk.lines[t][i].Resize(size); err != nil {
				return err
			}

			tk.offCos[t][i], tk.offSin[t][i] = modulation.Offset(float64(t*tankLines+i) / (numTanks * tankLines))
		}
	}

	tk.damping.reset()
	return nil
}

// process runs one stereo frame. inL/inR are the diffused inputs.
func (tk *tanks) process(inL, inR float64, f *frame, rotor *modulation.Rotor) (float64, float64) {
	var reads [numTanks][tankLines]float64
	var mixed [numTanks][tankLines]float64

	for t := range numTanks {
		for i := range tankLines {
			mod := rotor.SinOffset(tk.offCos[t][i], tk.offSin[t][i])
			reads[t][i] = tk.lines[t][i].ReadFractional(f[rampTankDelay+tankIndex(t, i)] + f[rampTankExcursion]*mod)
		}
	}

	var out [numTanks]float64
	for t := range numTanks {
		var damped [tankLines]float64
		for i := range tankLines {
			out[t] += tankTap[t][i] * reads[t][i]
			damped[i] = tk.damping.apply(t, i, reads[t][i], f)
		}
		mixed[t] = tk.matrix.Apply(damped)
	}

	tk.cross.apply(&mixed[0], &mixed[1])

	in := [numTanks]float64{inL, inR}
	for t := range numTanks {
		for i := range tankLines {
			w := f[rampTankGain+tankIndex(t, i)]*mixed[t][i] + tankInjection[i]*in[t]
			tk.lines[t][i].Write(core.FlushDenormals(w))
		}
	}

	return out[0], out[1]
}

func (tk *tanks) flushDenormals() {
	tk.damping.flushDenormals()
}

func (tk *tanks) reset() {
	for t := range numTanks {
		for i := range tankLines {
			tk.lines[t][i].Reset()
		}
	}
	tk.damping.reset()
}
