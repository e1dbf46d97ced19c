package reverb

// Indices of the per-sample ramped values in a frame.
const (
	rampTankDelay = 0
	rampTankGain  = rampTankDelay + numTanks*tankLines
	rampScalars   = rampTankGain + numTanks*tankLines
)

const (
	rampTankExcursion = rampScalars + iota
	rampHighCoeff
	rampHighAmount
	rampLowCoeff
	rampLowAmount
	rampDiffusionGain
	rampDiffusionExcursion
	rampPreLow
	rampPreHigh
	rampPreDelay
	rampDry
	rampWet

	numRamps
)

// frame holds every cached constant the per-sample loop reads.
type frame [numRamps]float64

func tankIndex(tank, line int) int { return tank*tankLines + line }

// rampState moves a frame linearly from its value at the end of the
// previous block to a new target across one block.
//
// Each value is interpolated from the block endpoints rather than
// accumulated, and held between them, so a ramp never leaves the range of
// two valid constants.
type rampState struct {
	cur, target frame
	from, lo, hi frame

	k, n int
}

// begin prepares a ramp over n samples. With snap set the target is used
// from the first sample on.
func (r *rampState) begin(n int, snap bool) {
	r.k = 0
	if snap || n <= 0 {
		r.cur = r.target
		r.from = r.target
		r.lo = r.target
		r.hi = r.target
		r.n = 1
		return
	}

	r.from = r.cur
	r.n = n
	for i := range r.from {
		r.lo[i] = min(r.from[i], r.target[i])
		r.hi[i] = max(r.from[i], r.target[i])
	}
}

// advance moves cur one sample towards target.
func (r *rampState) advance() {
	r.k++
	t := min(float64(r.k)/float64(r.n), 1)
	for i := range r.cur {
		v := r.from[i] + (r.target[i]-r.from[i])*t
		r.cur[i] = min(max(v, r.lo[i]), r.hi[i])
	}
}

// finish lands exactly on the target.
func (r *rampState) finish() {
	r.cur = r.target
	r.from = r.target
	r.lo = r.target
	r.hi = r.target
	r.k, r.n = 0, 1
}
