package reverb

import (
	"fmt"
	"math"
	"strings"
)

// Field identifies one member of [Params].
type Field int

// Parameter fields in declaration order.
const (
	FieldMix Field = iota
	FieldSize
	FieldDecay
	FieldPreDelay
	FieldWidth
	FieldDiffusion
	FieldChorusRate
	FieldChorusDepth
	FieldPreLowCut
	FieldPreHighCut
	FieldLowShelfCut
	FieldLowShelfGain
	FieldHighShelfCut
	FieldHighShelfGain

	numFields
)

// NumFields is the number of parameter fields.
const NumFields = int(numFields)

// FieldInfo describes the name, unit, range and default of a field.
type FieldInfo struct {
	Field   Field
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

var fieldInfos = [numFields]FieldInfo{
	{FieldMix, "mix", "", 0, 1, 0.25},
	{FieldSize, "size", "", 0, 1, 0.5},
	{FieldDecay, "decay", "s", 0.1, 64, 1},
	{FieldPreDelay, "predelay", "s", 0, 0.3, 0.004},
	{FieldWidth, "width", "", 0, 2, 0.95},
	{FieldDiffusion, "diffusion", "", 0, 1, 0.8},
	{FieldChorusRate, "chorus-rate", "Hz", 0.003, 8, 0.25},
	{FieldChorusDepth, "chorus-depth", "", 0, 1, 0.046},
	{FieldPreLowCut, "pre-low-cut", "Hz", 20, 20000, 20},
	{FieldPreHighCut, "pre-high-cut", "Hz", 20, 20000, 4700},
	{FieldLowShelfCut, "low-shelf-cut", "Hz", 20, 20000, 20},
	{FieldLowShelfGain, "low-shelf-gain", "dB", -6, 0, 0},
	{FieldHighShelfCut, "high-shelf-cut", "Hz", 20, 20000, 1480},
	{FieldHighShelfGain, "high-shelf-gain", "dB", -6, 0, -1},
}

// Fields returns metadata for every field in declaration order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, numFields)
	copy(out, fieldInfos[:])
	return out
}

// Info returns the metadata of f.
func (f Field) Info() FieldInfo {
	if f < 0 || f >= numFields {
		return FieldInfo{Field: f}
	}
	return fieldInfos[f]
}

// String returns the field name.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldInfos[f].Name
}

// ParseField looks up a field by name, case-insensitively. Underscores are
// accepted in place of dashes.
func ParseField(name string) (Field, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, info := range fieldInfos {
		if info.Name == key {
			return info.Field, nil
		}
	}
	return 0, fmt.Errorf("reverb: unknown parameter %q", name)
}

// Params is one snapshot of the reverb controls. The engine never mutates
// the snapshot it is given.
type Params struct {
	// Mix is the equal-power dry/wet position; 0 is dry only, 1 wet only.
	Mix float64
	// Size scales every tank delay by 2^(4*Size-3).
	Size float64
	// Decay is the tank RT60 in seconds.
	Decay float64
	// PreDelay is the delay before diffusion in seconds.
	PreDelay float64
	// Width is the stereo width of the wet signal.
	Width float64
	// Diffusion sets the all-pass gain of the input diffuser.
	Diffusion float64
	// ChorusRate is the delay modulation rate in Hz.
	ChorusRate float64
	// ChorusDepth scales the delay modulation excursion.
	ChorusDepth float64

	PreLowCut     float64
	PreHighCut    float64
	LowShelfCut   float64
	LowShelfGain  float64
	HighShelfCut  float64
	HighShelfGain float64
}

// DefaultParams returns the default snapshot.
func DefaultParams() Params {
	var p Params
	for _, info := range fieldInfos {
		p.SetValue(info.Field, info.Default)
	}
	return p
}

// Value returns the value of field f, or NaN for unknown fields.
func (p Params) Value(f Field) float64 {
	switch f {
	case FieldMix:
		return p.Mix
	case FieldSize:
		return p.Size
	case FieldDecay:
		return p.Decay
	case FieldPreDelay:
		return p.PreDelay
	case FieldWidth:
		return p.Width
	case FieldDiffusion:
		return p.Diffusion
	case FieldChorusRate:
		return p.ChorusRate
	case FieldChorusDepth:
		return p.ChorusDepth
	case FieldPreLowCut:
		return p.PreLowCut
	case FieldPreHighCut:
		return p.PreHighCut
	case FieldLowShelfCut:
		return p.LowShelfCut
	case FieldLowShelfGain:
		return p.LowShelfGain
	case FieldHighShelfCut:
		return p.HighShelfCut
	case FieldHighShelfGain:
		return p.HighShelfGain
	default:
		return math.NaN()
	}
}

// SetValue sets field f. Unknown fields are ignored.
func (p *Params) SetValue(f Field, v float64) {
	switch f {
	case FieldMix:
		p.Mix = v
	case FieldSize:
		p.Size = v
	case FieldDecay:
		p.Decay = v
	case FieldPreDelay:
		p.PreDelay = v
	case FieldWidth:
		p.Width = v
	case FieldDiffusion:
		p.Diffusion = v
	case FieldChorusRate:
		p.ChorusRate = v
	case FieldChorusDepth:
		p.ChorusDepth = v
	case FieldPreLowCut:
		p.PreLowCut = v
	case FieldPreHighCut:
		p.PreHighCut = v
	case FieldLowShelfCut:
		p.LowShelfCut = v
	case FieldLowShelfGain:
		p.LowShelfGain = v
	case FieldHighShelfCut:
		p.HighShelfCut = v
	case FieldHighShelfGain:
		p.HighShelfGain = v
	}
}

// Clamp returns p with every field limited to its documented range.
// NaN becomes the field default; infinities go to the nearest bound.
func (p Params) Clamp() Params {
	out := p
	for _, info := range fieldInfos {
		v := p.Value(info.Field)
		switch {
		case math.IsNaN(v):
			v = info.Default
		case v < info.Min:
			v = info.Min
		case v > info.Max:
			v = info.Max
		}
		out.SetValue(info.Field, v)
	}
	return out
}

// Validate reports the first field that is NaN or out of range.
func (p Params) Validate() error {
	for _, info := range fieldInfos {
		v := p.Value(info.Field)
		if math.IsNaN(v) || v < info.Min || v > info.Max {
			return fmt.Errorf("reverb %s must be in [%g, %g]: %f", info.Name, info.Min, info.Max, v)
		}
	}
	return nil
}

// vector writes all fields into dst, indexed by Field.
func (p Params) vector(dst *[numFields]float64) {
	dst[FieldMix] = p.Mix
	dst[FieldSize] = p.Size
	dst[FieldDecay] = p.Decay
	dst[FieldPreDelay] = p.PreDelay
	dst[FieldWidth] = p.Width
	dst[FieldDiffusion] = p.Diffusion
	dst[FieldChorusRate] = p.ChorusRate
	dst[FieldChorusDepth] = p.ChorusDepth
	dst[FieldPreLowCut] = p.PreLowCut
	dst[FieldPreHighCut] = p.PreHighCut
	dst[FieldLowShelfCut] = p.LowShelfCut
	dst[FieldLowShelfGain] = p.LowShelfGain
	dst[FieldHighShelfCut] = p.HighShelfCut
	dst[FieldHighShelfGain] = p.HighShelfGain
}
