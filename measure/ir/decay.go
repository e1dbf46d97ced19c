package ir

import (
	"errors"
	"math"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
	ErrInvalidBand       = errors.New("ir: band edges must satisfy 0 <= low < high <= nyquist")
	ErrInvalidFrame      = errors.New("ir: frame size must be a power of two >= 64")
)

// Floor of the Schroeder curve in dB.
const decayFloorDB = -200

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // seconds, from T30 or T20
	EDT        float64 // seconds, 0 to -10 dB slope
	T20        float64 // seconds, -5 to -25 dB slope
	T30        float64 // seconds, -5 to -35 dB slope
	C80        float64 // dB
	D50        float64 // ratio 0-1
	CenterTime float64 // seconds
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if a.SampleRate <= 0 || math.IsNaN(a.SampleRate) || math.IsInf(a.SampleRate, 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes all metrics. Analysis starts at the absolute peak, so
// pre-delay silence before it is ignored.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(ir)
	tail := ir[peak:]
	curve := schroeder(tail)

	m := Metrics{
		PeakIndex:  peak,
		EDT:        fitDecay(curve, 0, -10, a.SampleRate),
		T20:        fitDecay(curve, -5, -25, a.SampleRate),
		T30:        fitDecay(curve, -5, -35, a.SampleRate),
		CenterTime: a.centerTime(tail),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	early, late := a.split(tail, 0.080)
	switch {
	case late <= 0:
		m.C80 = math.Inf(1)
	case early <= 0:
		m.C80 = math.Inf(-1)
	default:
		m.C80 = 10 * math.Log10(early/late)
	}

	if early50, late50 := a.split(tail, 0.050); early50+late50 > 0 {
		m.D50 = early50 / (early50 + late50)
	}

	return m, nil
}

// SchroederIntegral returns the normalized backward-integrated energy
// decay curve in dB:
//
//	S(t) = 10*log10( sum_{k>=t} h[k]^2 / sum_k h[k]^2 )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroeder(ir), nil
}

// RT60 returns the reverberation time of ir, from T30 when possible and T20
// otherwise.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	curve := schroeder(ir[peakIndex(ir):])
	if rt := fitDecay(curve, -5, -35, a.SampleRate); rt > 0 {
		return rt, nil
	}
	if rt := fitDecay(curve, -5, -25, a.SampleRate); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

func schroeder(x []float64) []float64 {
	out := make([]float64, len(x))
	var acc float64
	for i := len(x) - 1; i >= 0; i-- {
		acc += x[i] * x[i]
		out[i] = acc
	}
	toDB(out)
	return out
}

// toDB normalizes a backward-integrated energy curve to its first value
// and converts it to dB in place.
func toDB(curve []float64) {
	if len(curve) == 0 {
		return
	}
	total := curve[0]
	for i, v := range curve {
		if total <= 0 || v <= 0 {
			curve[i] = decayFloorDB
			continue
		}
		curve[i] = 10 * math.Log10(v/total)
	}
}

// fitDecay fits a least-squares line to curve between the first points at
// or below startDB and endDB and returns the time to fall 60 dB at that
// slope. rate is the number of curve points per second. It returns 0 when
// the curve does not span the range.
func fitDecay(curve []float64, startDB, endDB, rate float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}

	n := float64(end - start + 1)
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	slope := (n*sxy - sx*sy) / den * rate
	if slope >= 0 {
		return 0
	}
	return -60 / slope
}

// split returns the energy before and after boundary seconds.
func (a *Analyzer) split(ir []float64, boundary float64) (early, late float64) {
	b := int(math.Round(boundary * a.SampleRate))
	for i, v := range ir {
		if i < b {
			early += v * v
		} else {
			late += v * v
		}
	}
	return early, late
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den / a.SampleRate
}

func peakIndex(ir []float64) int {
	idx := 0
	best := 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > best {
			best = av
			idx = i
		}
	}
	return idx
}
