//go:build !dspdebug

package delay

// Debug reports whether delay overruns panic.
const Debug = false

func checkDelay(delay, lo, hi float64) float64 {
	if delay >= lo && delay <= hi {
		return delay
	}
	if delay > hi {
		return hi
	}
	// below range or NaN
	return lo
}
