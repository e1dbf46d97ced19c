package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/interp"
)

// Line is a circular delay line.
//
// Read(k) returns the sample written k writes ago, so Read(1) is the most
// recent sample. Reads made before the write of the current frame therefore
// see a delay of exactly k samples, which is how [Line.ReadAndFeedback] uses
// the buffer.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a [Line].
type Option func(*Line) error

// WithMode selects the fractional interpolation kernel.
// The default is [interp.Lagrange3].
func WithMode(mode interp.Mode) Option {
	return func(d *Line) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode invalid: %v", mode)
		}
		d.mode = mode
		return nil
	}
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size < 4 {
		return nil, fmt.Errorf("delay size must be >= 4: %d", size)
	}

	d := &Line{
		buffer: make([]float64, size),
		mode:   interp.Lagrange3,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation kernel.
func (d *Line) Mode() interp.Mode { return d.mode }

// MinDelay returns the smallest fractional delay ReadFractional accepts
// without clamping. Cubic kernels need one newer neighbour, so they start
// at two samples.
func (d *Line) MinDelay() float64 {
	if d.mode == interp.Linear {
		return 1
	}
	return 2
}

// MaxDelay returns the largest fractional delay ReadFractional accepts
// without clamping.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 2)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay in samples using the configured
// kernel. Delays outside [MinDelay, MaxDelay] are an overrun: a panic in
// builds tagged dspdebug, a clamp otherwise.
func (d *Line) ReadFractional(delay float64) float64 {
	delay = checkDelay(delay, d.MinDelay(), d.MaxDelay())

	p := int(delay)
	t := delay - float64(p)

	if d.mode == interp.Linear {
		return interp.Linear2(t, d.Read(p), d.Read(p+1))
	}
	return d.mode.At(t, d.Read(p-1), d.Read(p), d.Read(p+1), d.Read(p+2))
}

// ReadAndFeedback reads the line at delay, then writes input + gain*read and
// returns the value read.
func (d *Line) ReadAndFeedback(input, delay, gain float64) float64 {
	out := d.ReadFractional(delay)
	d.Write(input + gain*out)
	return out
}

// Resize reallocates the buffer to size samples and clears it.
func (d *Line) Resize(size int) error {
	if size < 4 {
		return fmt.Errorf("delay size must be >= 4: %d", size)
	}
	if size == len(d.buffer) {
		d.Reset()
		return nil
	}
	d.buffer = make([]float64, size)
	d.writePos = 0
	return nil
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}

// SizeFor returns the buffer size needed to read delays up to maxDelay
// samples with any kernel.
func SizeFor(maxDelay float64) int {
	if maxDelay < 0 || math.IsNaN(maxDelay) {
		maxDelay = 0
	}
	return int(math.Ceil(maxDelay)) + 4
}
