// Command verbrender renders audio through the stereo reverb engine and
// reports decay metrics of its impulse response.
//
// Usage:
//
//	verbrender [flags]
//
// Without -in the input is a unit impulse on both channels, so -out writes
// the engine's impulse response.
//
// Examples:
//
//	verbrender -out ir.wav -decay 2.5 -size 0.8
//	verbrender -in dry.wav -out wet.wav -mix 0.3 -rate 48000
//	verbrender -in loop.mp3 -play -size 0.9 -decay 6
//	verbrender -analyze -decays 0.5,1,2,4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

type options struct {
	in       string
	out      string
	rate     float64
	tail     float64
	bits     int
	gainDB   float64
	block    int
	interp   string
	play     bool
	analyze  bool
	decays   []float64
	frame    int
	window   string
	logLevel string
	params   reverb.Params
}

// paramValue binds one reverb parameter field to a flag.
type paramValue struct {
	p *reverb.Params
	f reverb.Field
}

func (v paramValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.FormatFloat(v.p.Value(v.f), 'g', -1, 64)
}

func (v paramValue) Set(s string) error {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	v.p.SetValue(v.f, x)
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{params: reverb.DefaultParams()}

	fs.StringVar(&o.in, "in", "", "input WAV or MP3 file (default: unit impulse)")
	fs.StringVar(&o.out, "out", "", "output WAV file")
	fs.Float64Var(&o.rate, "rate", 0, "render sample rate in Hz (default: input rate, or 48000)")
	fs.Float64Var(&o.tail, "tail", -1, "seconds rendered after the input (default: engine tail estimate)")
	fs.IntVar(&o.bits, "bits", 24, "output bit depth (16 or 24)")
	fs.Float64Var(&o.gainDB, "gain", 0, "output gain in dB")
	fs.IntVar(&o.block, "block", 512, "host block size in frames")
	fs.StringVar(&o.interp, "interp", "lagrange3", "delay interpolation (linear, hermite, lagrange3)")
	fs.BoolVar(&o.play, "play", false, "play the render on the default audio device")
	fs.BoolVar(&o.analyze, "analyze", false, "print impulse response decay metrics")
	decays := fs.String("decays", "", "with -analyze: comma separated decay times analyzed concurrently")
	fs.IntVar(&o.frame, "frame", 2048, "band analysis frame size (power of two)")
	fs.StringVar(&o.window, "window", "hann", "band analysis window")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	for _, info := range reverb.Fields() {
		usage := fmt.Sprintf("%s in [%g, %g]", info.Name, info.Min, info.Max)
		if info.Unit != "" {
			usage += " " + info.Unit
		}
		fs.Var(paramValue{p: &o.params, f: info.Field}, info.Name, usage)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var err error
	if o.decays, err = parseDecays(*decays); err != nil {
		return nil, err
	}
	if err := o.params.Validate(); err != nil {
		return nil, err
	}
	if o.bits != 16 && o.bits != 24 {
		return nil, fmt.Errorf("bit depth must be 16 or 24: %d", o.bits)
	}
	if o.block < 1 {
		return nil, fmt.Errorf("block size must be positive: %d", o.block)
	}

	return o, nil
}

// parseDecays parses a comma separated list of positive decay times.
func parseDecays(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		d, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("decay %q: %w", part, err)
		}
		if !(d > 0) {
			return nil, fmt.Errorf("decay must be positive: %g", d)
		}
		out = append(out, d)
	}
	return out, nil
}

// interruptContext is canceled on Ctrl-C, stopping playback and analysis.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

func main() {
	fs := flag.NewFlagSet("verbrender", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: verbrender [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Renders audio through the reverb and reports impulse response decay.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	o, err := parseFlags(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := InitLogger(o.logLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := interruptContext(context.Background())
	err = run(ctx, o, os.Stdout)
	stop()
	if err != nil {
		logger.Error("verbrender failed", "err", err)
		os.Exit(1)
	}
}
