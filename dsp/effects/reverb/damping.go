package reverb

import "github.com/cwbudde/algo-reverb/dsp/filter/onepole"

// dampingBank holds the in-loop shelf filters of every tank line.
// The high shelf runs first, then the low shelf.
type dampingBank struct {
	high [numTanks][tankLines]onepole.State
	low  [numTanks][tankLines]onepole.State
}

func (b *dampingBank) apply(tank, line int, x float64, f *frame) float64 {
	hs := &b.high[tank][line]
	x = onepole.HighShelf(x, hs.Tick(x, f[rampHighCoeff]), f[rampHighAmount])

	ls := &b.low[tank][line]
	return onepole.LowShelf(x, ls.Tick(x, f[rampLowCoeff]), f[rampLowAmount])
}

func (b *dampingBank) flushDenormals() {
	for t := range numTanks {
		for i := range tankLines {
			b.high[t][i].FlushDenormals()
			b.low[t][i].FlushDenormals()
		}
	}
}

func (b *dampingBank) reset() {
	*b = dampingBank{}
}
