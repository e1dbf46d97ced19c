//go:build dspdebug

package delay

import "fmt"

// Debug reports whether delay overruns panic.
const Debug = true

func checkDelay(delay, lo, hi float64) float64 {
	if delay >= lo && delay <= hi {
		return delay
	}
	panic(fmt.Sprintf("delay: read %v outside [%v, %v]", delay, lo, hi))
}
