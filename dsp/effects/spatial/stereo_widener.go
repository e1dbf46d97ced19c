package spatial

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultWidenerWidth = 1.0

	minWidenerWidth = 0.0
	maxWidenerWidth = 4.0
)

// ErrLengthMismatch is returned when paired channel buffers differ in length.
var ErrLengthMismatch = errors.New("spatial: left and right buffers must have equal length")

// ErrOddInterleaved is returned when an interleaved stereo buffer has odd length.
var ErrOddInterleaved = errors.New("spatial: interleaved buffer length must be even")

// Width applies mid/side width scaling to one stereo pair.
//
//	mid  = (l + r) / 2
//	side = (l - r) / 2 * width
//
// Width 0 returns identical channels, width 1 returns the input unchanged.
func Width(left, right, width float64) (float64, float64) {
	mid := (left + right) * 0.5
	side := (left - right) * 0.5 * width
	return mid + side, mid - side
}

// StereoWidenerOption mutates stereo widener construction parameters.
type StereoWidenerOption func(*stereoWidenerConfig) error

type stereoWidenerConfig struct {
	width float64
}

func defaultStereoWidenerConfig() stereoWidenerConfig {
	return stereoWidenerConfig{width: defaultWidenerWidth}
}

// WithWidth sets the stereo width factor.
// 0 = mono, 1 = unchanged, >1 = widened (up to 4).
func WithWidth(width float64) StereoWidenerOption {
	return func(cfg *stereoWidenerConfig) error {
		if err := validateWidth(width); err != nil {
			return err
		}

		cfg.width = width

		return nil
	}
}

func validateWidth(width float64) error {
	if width < minWidenerWidth || width > maxWidenerWidth ||
		math.IsNaN(width) || math.IsInf(width, 0) {
		return fmt.Errorf("stereo widener width must be in [%g, %g]: %f",
			minWidenerWidth, maxWidenerWidth, width)
	}
	return nil
}

// StereoWidener adjusts the width of a stereo image using mid/side processing.
//
// Besides fixed-width processing it can glide from its current width to a
// new target across one buffer ([StereoWidener.RampStereoInPlace]), which
// is how the reverb engine applies per-block width changes without steps.
//
// This processor is stereo, real-time safe, and not thread-safe.
type StereoWidener struct {
	sampleRate float64
	width      float64
}

// NewStereoWidener creates a stereo widener with practical defaults and
// optional overrides.
func NewStereoWidener(sampleRate float64, opts ...StereoWidenerOption) (*StereoWidener, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("stereo widener sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultStereoWidenerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &StereoWidener{
		sampleRate: sampleRate,
		width:      cfg.width,
	}, nil
}

// ProcessStereo processes a single stereo sample pair and returns the
// widened left and right outputs.
func (w *StereoWidener) ProcessStereo(left, right float64) (float64, float64) {
	return Width(left, right, w.width)
}

// ProcessStereoInPlace applies stereo widening to paired left/right buffers
// in place. Both buffers must have the same length.
func (w *StereoWidener) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}

	for i := range left {
		left[i], right[i] = Width(left[i], right[i], w.width)
	}

	return nil
}

// RampStereoInPlace widens left/right in place while moving the width
// linearly from its current value to target. The last sample uses exactly
// target, which becomes the new width. Out-of-range targets are clamped.
func (w *StereoWidener) RampStereoInPlace(left, right []float64, target float64) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}

	if math.IsNaN(target) {
		target = w.width
	}
	target = math.Max(minWidenerWidth, math.Min(maxWidenerWidth, target))

	n := len(left)
	if n == 0 {
		return nil
	}

	if target == w.width {
		for i := range left {
			left[i], right[i] = Width(left[i], right[i], target)
		}
		return nil
	}

	start := w.width
	step := (target - start) / float64(n)
	for i := range n - 1 {
		left[i], right[i] = Width(left[i], right[i], start+step*float64(i+1))
	}
	left[n-1], right[n-1] = Width(left[n-1], right[n-1], target)
	w.width = target

	return nil
}

// ProcessInterleavedInPlace applies stereo widening to an interleaved stereo
// buffer (L, R, L, R, ...) in place. The buffer length must be even.
func (w *StereoWidener) ProcessInterleavedInPlace(buf []float64) error {
	if len(buf)%2 != 0 {
		return ErrOddInterleaved
	}

	for i := 0; i < len(buf); i += 2 {
		buf[i], buf[i+1] = Width(buf[i], buf[i+1], w.width)
	}

	return nil
}

// SampleRate returns the sample rate in Hz.
func (w *StereoWidener) SampleRate() float64 { return w.sampleRate }

// Width returns the current stereo width factor.
func (w *StereoWidener) Width() float64 { return w.width }

// SetSampleRate updates the sample rate.
func (w *StereoWidener) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("stereo widener sample rate must be > 0 and finite: %f", sampleRate)
	}

	w.sampleRate = sampleRate

	return nil
}

// SetWidth sets the stereo width factor.
// 0 = mono, 1 = unchanged, >1 = widened (up to 4).
func (w *StereoWidener) SetWidth(width float64) error {
	if err := validateWidth(width); err != nil {
		return err
	}

	w.width = width

	return nil
}
