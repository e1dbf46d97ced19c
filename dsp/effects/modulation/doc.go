// Package modulation provides low-frequency modulation sources for
// time-varying delay effects.
//
// Included types:
//   - Oscillator: sinusoidal phase accumulator in cycles, advanced once per
//     block and phase-continuous across blocks.
//   - Rotor: per-sample quadrature recurrence seeded from an Oscillator
//     (Oscillator.Seed), with cheap phase-offset taps for decorrelated
//     modulation.
package modulation
