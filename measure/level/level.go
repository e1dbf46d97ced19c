package level

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// ClipThreshold is the magnitude above which a sample counts as clipped
// once quantized to fixed point.
const ClipThreshold = 1.0

// Stats holds level statistics of a signal. dB values are relative to
// full scale and -Inf for silence.
type Stats struct {
	Frames  int
	Peak    float64
	PeakPos int
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	DC      float64 // mean
	Crest   float64 // peak / RMS, 0 for silence
	CrestDB float64
	Clipped int // samples with |x| > ClipThreshold
	NaNs    int // non-finite samples, excluded from all other fields
}

// Calculate returns the statistics of signal.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)
	return m.Result()
}

// Meter accumulates Stats over consecutive blocks. The zero value is ready
// to use.
type Meter struct {
	n       int
	finite  int
	sum     float64
	comp    float64
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for i, x := range samples {
		pos := m.n + i
		if !core.IsFinite(x) {
			continue
		}
		m.finite++

		// Kahan summation for the mean.
		y := x - m.comp
		t := m.sum + y
		m.comp = (t - m.sum) - y
		m.sum = t

		m.sumSq += x * x

		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = pos
		}
		if a > ClipThreshold {
			m.clipped++
		}
	}
	m.n += len(samples)
}

// Reset clears the accumulated data.
func (m *Meter) Reset() { *m = Meter{} }

// Result returns the statistics of every sample passed to Update so far.
func (m *Meter) Result() Stats {
	s := Stats{
		Frames:  m.n,
		Peak:    m.peak,
		PeakPos: m.peakPos,
		Clipped: m.clipped,
		NaNs:    m.n - m.finite,
	}
	if m.finite > 0 {
		nf := float64(m.finite)
		s.DC = m.sum / nf
		s.RMS = math.Sqrt(m.sumSq / nf)
	}
	if s.RMS > 0 {
		s.Crest = s.Peak / s.RMS
	}

	s.PeakDB = core.LinearToDB(s.Peak)
	s.RMSDB = core.LinearToDB(s.RMS)
	s.CrestDB = core.LinearToDB(s.Crest)
	return s
}
