package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/modulation"
	"github.com/cwbudde/algo-reverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-reverb/dsp/paramcache"
)

const (
	// Delay tables are tuned at this rate and scaled to the engine rate.
	referenceSampleRate = 44100.0

	// RT60 is the time to decay to this amplitude.
	t60Amplitude = 0.001

	// Per-line feedback gains never exceed this value.
	maxFeedbackGain = 0.9995

	// Tank modulation excursion at ChorusDepth 1, in reference samples.
	maxChorusDrift = 2500.0
	// Samples kept between the tank excursion and the shortest line.
	chorusMargin = 32.0

	// Diffuser modulation excursion at ChorusDepth 1, in reference samples.
	maxDiffusionDrift = 48.0

	// All-pass gain at Diffusion 1.
	diffusionGainScale = 0.75

	// Diffuser modulation runs slower than the tank modulation.
	diffusionRateRatio = 0.7
)

// Group names reported by Engine.CacheStats.
const (
	GroupTank      = "tank"
	GroupModDepth  = "mod-depth"
	GroupDiffusion = "diffusion"
	GroupChorus    = "chorus"
	GroupPreFilter = "pre-filter"
	GroupLowShelf  = "low-shelf"
	GroupHighShelf = "high-shelf"
	GroupMix       = "mix"
	GroupPreDelay  = "pre-delay"
)

var ln1000 = math.Log(1 / t60Amplitude)

// tankDelays are the tank line lengths in reference samples at Size 0.75
// (multiplier 1). Row 0 feeds the left output, row 1 the right.
var tankDelays = [numTanks][tankLines]float64{
	{6753.2, 9278.4, 7704.5, 11328.5},
	{9701.12, 5512.5, 8480.45, 5638.65},
}

// diffusionDelays are the all-pass lengths in reference samples.
var diffusionDelays = [numTanks][diffusionStages]float64{
	{210, 159, 562, 410},
	{227, 171, 541, 397},
}

type tankCoeffs struct {
	delay    [numTanks][tankLines]float64
	gain     [numTanks][tankLines]float64
	minDelay float64
}

type modDepthCoeffs struct {
	excursion float64
}

type diffusionCoeffs struct {
	gain      float64
	excursion float64
}

type chorusCoeffs struct {
	tankIncrement      float64
	diffusionIncrement float64
}

type preFilterCoeffs struct {
	low, high float64
}

type shelfCoeffs struct {
	coeff  float64
	amount float64
}

type mixCoeffs struct {
	dry, wet float64
}

type preDelayCoeffs struct {
	samples float64
}

// coefficients owns every cached group of one engine.
type coefficients struct {
	sampleRate float64
	cache      paramcache.Cache

	tank      *paramcache.Group[tankCoeffs]
	modDepth  *paramcache.Group[modDepthCoeffs]
	diffusion *paramcache.Group[diffusionCoeffs]
	chorus    *paramcache.Group[chorusCoeffs]
	preFilter *paramcache.Group[preFilterCoeffs]
	lowShelf  *paramcache.Group[shelfCoeffs]
	highShelf *paramcache.Group[shelfCoeffs]
	mix       *paramcache.Group[mixCoeffs]
	preDelay  *paramcache.Group[preDelayCoeffs]
}

func deps(fields ...Field) []int {
	out := make([]int, len(fields))
	for i, f := range fields {
		out[i] = int(f)
	}
	return out
}

func newCoefficients(sampleRate float64) (*coefficients, error) {
	c := &coefficients{sampleRate: sampleRate}

	var err error
	if c.tank, err = paramcache.Add(&c.cache, GroupTank, deps(FieldSize, FieldDecay), c.computeTank); err != nil {
		return nil, err
	}
	if c.modDepth, err = paramcache.Add(&c.cache, GroupModDepth, deps(FieldSize, FieldChorusDepth), c.computeModDepth); err != nil {
		return nil, err
	}
	if c.diffusion, err = paramcache.Add(&c.cache, GroupDiffusion, deps(FieldDiffusion, FieldChorusDepth), c.computeDiffusion); err != nil {
		return nil, err
	}
	if c.chorus, err = paramcache.Add(&c.cache, GroupChorus, deps(FieldChorusRate), c.computeChorus); err != nil {
		return nil, err
	}
	if c.preFilter, err = paramcache.Add(&c.cache, GroupPreFilter, deps(FieldPreLowCut, FieldPreHighCut), c.computePreFilter); err != nil {
		return nil, err
	}
	if c.lowShelf, err = paramcache.Add(&c.cache, GroupLowShelf, deps(FieldLowShelfCut, FieldLowShelfGain), c.computeLowShelf); err != nil {
		return nil, err
	}
	if c.highShelf, err = paramcache.Add(&c.cache, GroupHighShelf, deps(FieldHighShelfCut, FieldHighShelfGain), c.computeHighShelf); err != nil {
		return nil, err
	}
	if c.mix, err = paramcache.Add(&c.cache, GroupMix, deps(FieldMix), c.computeMix); err != nil {
		return nil, err
	}
	if c.preDelay, err = paramcache.Add(&c.cache, GroupPreDelay, deps(FieldPreDelay), c.computePreDelay); err != nil {
		return nil, err
	}

	return c, nil
}

// setSampleRate invalidates every group.
func (c *coefficients) setSampleRate(sampleRate float64) {
	c.sampleRate = sampleRate
	c.cache.InvalidateAll()
}

func (c *coefficients) rateScale() float64 {
	return c.sampleRate / referenceSampleRate
}

// sizeMultiplier maps Size in [0, 1] to a delay multiplier in [1/8, 2].
func sizeMultiplier(size float64) float64 {
	return mathPow2(4*size - 3)
}

// feedbackGain returns the per-pass gain of a line of delaySamples that
// reaches t60Amplitude after decaySeconds, limited to maxFeedbackGain.
func feedbackGain(delaySamples, decaySeconds, sampleRate float64) float64 {
	g := mathExp(-ln1000 * delaySamples / (decaySeconds * sampleRate))
	return core.Clamp(g, 0, maxFeedbackGain)
}

func dbToAmplitude(db float64) float64 {
	return mathExp(db * (math.Ln10 / 20))
}

func (c *coefficients) computeTank(dst *tankCoeffs, v []float64) {
	scale := sizeMultiplier(v[FieldSize]) * c.rateScale()
	decay := v[FieldDecay]

	dst.minDelay = math.Inf(1)
	for t := range numTanks {
		for i := range tankLines {
			d := tankDelays[t][i] * scale
			dst.delay[t][i] = d
			dst.gain[t][i] = feedbackGain(d, decay, c.sampleRate)
			dst.minDelay = math.Min(dst.minDelay, d)
		}
	}
}

func (c *coefficients) computeModDepth(dst *modDepthCoeffs, v []float64) {
	scale := sizeMultiplier(v[FieldSize]) * c.rateScale()

	shortest := math.Inf(1)
	for t := range numTanks {
		for i := range tankLines {
			shortest = math.Min(shortest, tankDelays[t][i]*scale)
		}
	}

	exc := maxChorusDrift * c.rateScale() * v[FieldChorusDepth]
	dst.excursion = core.Clamp(exc, 0, math.Max(0, shortest-chorusMargin))
}

func (c *coefficients) computeDiffusion(dst *diffusionCoeffs, v []float64) {
	dst.gain = diffusionGainScale * v[FieldDiffusion]
	dst.excursion = maxDiffusionDrift * c.rateScale() * v[FieldChorusDepth]
}

func (c *coefficients) computeChorus(dst *chorusCoeffs, v []float64) {
	dst.tankIncrement = modulation.Increment(v[FieldChorusRate], c.sampleRate)
	dst.diffusionIncrement = diffusionRateRatio * dst.tankIncrement
}

func (c *coefficients) computePreFilter(dst *preFilterCoeffs, v []float64) {
	dst.low = onepole.Coefficient(v[FieldPreLowCut], c.sampleRate)
	dst.high = onepole.Coefficient(v[FieldPreHighCut], c.sampleRate)
}

func (c *coefficients) computeLowShelf(dst *shelfCoeffs, v []float64) {
	dst.coeff = onepole.Coefficient(v[FieldLowShelfCut], c.sampleRate)
	dst.amount = math.Min(1, dbToAmplitude(v[FieldLowShelfGain]))
}

func (c *coefficients) computeHighShelf(dst *shelfCoeffs, v []float64) {
	dst.coeff = onepole.Coefficient(v[FieldHighShelfCut], c.sampleRate)
	dst.amount = math.Min(1, dbToAmplitude(v[FieldHighShelfGain]))
}

func (c *coefficients) computeMix(dst *mixCoeffs, v []float64) {
	dst.dry, dst.wet = core.EqualPowerGains(v[FieldMix])
}

func (c *coefficients) computePreDelay(dst *preDelayCoeffs, v []float64) {
	dst.samples = v[FieldPreDelay] * c.sampleRate
}
