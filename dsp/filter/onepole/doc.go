// Package onepole provides a topology-preserving-transform (TPT) one-pole
// filter and the shelf responses derived from it.
//
// The filter state is kept separate from its coefficient so callers can
// ramp the coefficient per sample inside feedback loops:
//
//	c := onepole.Coefficient(1480, 48000)
//	var s onepole.State
//	lp := s.Tick(x, c)
//	y := onepole.HighShelf(x, lp, core.DBToLinear(-1))
//
// All outputs share the low-pass node:
//   - low-pass:   lp
//   - high-pass:  x - lp
//   - high shelf: lp + amount*(x - lp)
//   - low shelf:  x - (1 - amount)*lp
//
// With amount <= 1 every shelf has magnitude <= 1 at all frequencies.
package onepole
