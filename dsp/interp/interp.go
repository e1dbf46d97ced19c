package interp

import (
	"fmt"
	"strings"
)

// Mode selects a fractional interpolation kernel.
type Mode int

const (
	// Linear interpolates between the two nearest samples.
	Linear Mode = iota
	// Hermite is 4-point cubic Hermite (Catmull-Rom) interpolation.
	Hermite
	// Lagrange3 is 4-point third-order Lagrange interpolation.
	Lagrange3
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	case Lagrange3:
		return "lagrange3"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode looks up a mode by its String name, case-insensitively.
func ParseMode(name string) (Mode, error) {
	for m := Linear; m <= Lagrange3; m++ {
		if strings.EqualFold(strings.TrimSpace(name), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("interp: unknown mode %q", name)
}

// Valid reports whether m names a known kernel.
func (m Mode) Valid() bool {
	return m >= Linear && m <= Lagrange3
}

// At evaluates the kernel selected by m at fraction t in [0, 1] between x0
// and x1, using neighbours xm1 (before x0) and x2 (after x1).
// Unknown modes fall back to linear interpolation.
func (m Mode) At(t, xm1, x0, x1, x2 float64) float64 {
	switch m {
	case Hermite:
		return Hermite4(t, xm1, x0, x1, x2)
	case Lagrange3:
		return Lagrange4(t, xm1, x0, x1, x2)
	default:
		return Linear2(t, x0, x1)
	}
}

// Linear2 computes 2-point linear interpolation from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 computes third-order Lagrange interpolation through the points
// (-1, xm1), (0, x0), (1, x1), (2, x2), evaluated at t.
// For t in [0, 1] its magnitude response never exceeds unity, which makes it
// safe inside feedback loops.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tp := t + 1
	tm := t - 1
	tm2 := t - 2

	cm1 := -t * tm * tm2 / 6
	c0 := tp * tm * tm2 / 2
	c1 := -tp * t * tm2 / 2
	c2 := tp * t * tm / 6

	return cm1*xm1 + c0*x0 + c1*x1 + c2*x2
}
