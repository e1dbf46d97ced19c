package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/dsp/interp"
	"github.com/cwbudde/algo-reverb/dsp/window"
	"github.com/cwbudde/algo-reverb/measure/ir"
)

const analysisBlock = 512

type decayReport struct {
	Decay   float64
	Metrics ir.Metrics
	Bands   []float64
}

// bandsBelow returns the octave bands that fit below nyquist.
func bandsBelow(nyquist float64) []ir.Band {
	var out []ir.Band
	for _, b := range ir.OctaveBands() {
		if b.High <= nyquist {
			out = append(out, b)
		}
	}
	return out
}

// analyzeDecays renders and analyzes one fully wet impulse response per
// decay time. Each run owns its engine, so runs proceed in parallel.
func analyzeDecays(ctx context.Context, sampleRate float64, base reverb.Params, mode interp.Mode, decays []float64, frame int, wt window.Type) ([]decayReport, error) {
	bands := bandsBelow(sampleRate / 2)
	reports := make([]decayReport, len(decays))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, d := range decays {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := base
			p.Decay = d
			p.Mix = 1
			p = p.Clamp()

			e, err := reverb.NewEngine(sampleRate, reverb.WithInterpolation(mode), reverb.WithParams(p))
			if err != nil {
				return err
			}

			imp := []float64{1}
			left, _, err := renderBlocks(e, imp, imp, e.TailSamples(p), analysisBlock, p)
			if err != nil {
				return err
			}

			a := ir.NewAnalyzer(sampleRate)
			m, err := a.Analyze(left)
			if err != nil {
				return fmt.Errorf("decay %g: %w", d, err)
			}
			rts, err := a.BandDecayWindow(left, bands, frame, wt)
			if err != nil {
				return fmt.Errorf("decay %g: %w", d, err)
			}

			reports[i] = decayReport{Decay: p.Decay, Metrics: m, Bands: rts}
			logger.Debug("analyzed", "decay", p.Decay, "rt60", m.RT60, "frames", len(left))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func printReport(w io.Writer, bands []ir.Band, reports []decayReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "decay\tRT60\tEDT\tT20\tT30\tC80\tD50")
	for _, b := range bands {
		fmt.Fprintf(tw, "\t%.0fHz", math.Sqrt(b.Low*b.High))
	}
	fmt.Fprintln(tw)

	for _, r := range reports {
		m := r.Metrics
		fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.1f\t%.2f", r.Decay, m.RT60, m.EDT, m.T20, m.T30, m.C80, m.D50)
		for _, rt := range r.Bands {
			fmt.Fprintf(tw, "\t%.3f", rt)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
