package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/dsp/interp"
	"github.com/cwbudde/algo-reverb/dsp/window"
	"github.com/cwbudde/algo-reverb/measure/level"
)

const defaultRate = 48000

func run(ctx context.Context, o *options, stdout io.Writer) error {
	mode, err := interp.ParseMode(o.interp)
	if err != nil {
		return err
	}
	wt, err := window.ParseType(o.window)
	if err != nil {
		return err
	}

	left, right, rate, err := loadInput(o)
	if err != nil {
		return err
	}

	e, err := reverb.NewEngine(rate, reverb.WithInterpolation(mode), reverb.WithParams(o.params))
	if err != nil {
		return err
	}

	tail := e.TailSamples(o.params)
	if o.tail >= 0 {
		tail = int(math.Round(o.tail * rate))
	}

	if o.out != "" || o.play {
		outL, outR, err := renderBlocks(e, left, right, tail, o.block, o.params)
		if err != nil {
			return err
		}

		if o.gainDB != 0 {
			g := core.DBToLinear(o.gainDB)
			vecmath.ScaleBlock(outL, outL, g)
			vecmath.ScaleBlock(outR, outR, g)
		}

		ls, rs := level.Calculate(outL), level.Calculate(outR)
		if clipped := ls.Clipped + rs.Clipped; clipped > 0 {
			logger.Warn("output clips", "samples", clipped, "peak_db", math.Max(ls.PeakDB, rs.PeakDB))
		}

		logger.Info("rendered", "frames", len(outL), "rate", rate, "tail", tail,
			"peak_db", math.Max(ls.PeakDB, rs.PeakDB), "rms_db", math.Max(ls.RMSDB, rs.RMSDB))

		if o.out != "" {
			if err := writeWAV(o.out, outL, outR, int(rate), o.bits); err != nil {
				return err
			}
			logger.Info("wrote", "out", o.out, "bits", o.bits)
		}
		if o.play {
			if err := play(ctx, outL, outR, int(rate)); err != nil {
				return fmt.Errorf("playback: %w", err)
			}
		}
	}

	if o.analyze {
		decays := o.decays
		if len(decays) == 0 {
			decays = []float64{o.params.Decay}
		}

		reports, err := analyzeDecays(ctx, rate, o.params, mode, decays, o.frame, wt)
		if err != nil {
			return err
		}
		return printReport(stdout, bandsBelow(rate/2), reports)
	}

	return nil
}

// loadInput returns the input signal at the render rate.
func loadInput(o *options) (left, right []float64, rate float64, err error) {
	rate = o.rate
	if o.in == "" {
		if rate == 0 {
			rate = defaultRate
		}
		return []float64{1}, []float64{1}, rate, nil
	}

	left, right, srcRate, err := readAudio(o.in)
	if err != nil {
		return nil, nil, 0, err
	}
	if rate == 0 || rate == srcRate {
		return left, right, srcRate, nil
	}

	logger.Debug("resampling input", "from", srcRate, "to", rate)
	left, right, err = resample(left, right, srcRate, rate)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("resample %s: %w", o.in, err)
	}
	return left, right, rate, nil
}

// renderBlocks processes the input followed by tail frames of silence in
// host blocks of the given size.
func renderBlocks(e *reverb.Engine, inL, inR []float64, tail, block int, p reverb.Params) ([]float64, []float64, error) {
	if len(inL) != len(inR) {
		return nil, nil, reverb.ErrLengthMismatch
	}

	n := len(inL) + max(tail, 0)
	outL := make([]float64, n)
	outR := make([]float64, n)
	copy(outL, inL)
	copy(outR, inR)

	for off := 0; off < n; off += block {
		end := min(off+block, n)
		if err := e.Process(outL[off:end], outR[off:end], p); err != nil {
			return nil, nil, err
		}
	}
	return outL, outR, nil
}
