// Package ir measures the decay of impulse responses.
//
// Broadband metrics come from the Schroeder backward integral of the
// squared response:
//
//   - RT60: reverberation time, from T30 when the curve reaches -35 dB,
//     otherwise from T20
//   - EDT: early decay time, 0 to -10 dB slope
//   - T20, T30: -5 to -25 dB and -5 to -35 dB slopes extrapolated to -60 dB
//   - C80: early-to-late energy ratio at 80 ms
//   - D50: early energy fraction at 50 ms
//   - CenterTime: energy centroid
//
// [Analyzer.BandDecay] repeats the T20 fit per frequency band on the energy
// envelopes of a short-time Fourier transform, which shows how damping
// shortens the decay of high frequencies.
//
// # Usage
//
//	a := ir.NewAnalyzer(48000)
//	m, err := a.Analyze(impulseResponse)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
