// Package reverb provides a real-time stereo algorithmic reverb.
//
// [Engine] runs a band-limited pre-delay into a modulated all-pass
// diffuser per channel, followed by two coupled four-line decay tanks
// with in-loop shelf damping. The wet signal passes a mid/side width
// stage and is blended with the dry input using an equal-power law.
//
// Controls arrive once per block as a [Params] snapshot. Derived constants
// are grouped by the fields they depend on and recomputed only when one of
// those fields changed; see [Engine.CacheStats].
//
// Build with the fastmath tag to use approximate exp/log in coefficient
// derivation, and with dspdebug to turn delay overruns into panics.
package reverb
