package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

func ExampleEngine() {
	e, err := reverb.NewEngine(48000)
	if err != nil {
		panic(err)
	}

	p := reverb.DefaultParams()
	p.Mix = 0

	left := []float64{1, 0, 0, 0}
	right := []float64{0, 1, 0, 0}
	if err := e.Process(left, right, p); err != nil {
		panic(err)
	}

	fmt.Printf("%.1f %.1f\n", left[0], right[1])
	fmt.Println(e.TailSamples(p))
	// Output:
	// 1.0 1.0
	// 96192
}

func ExampleParseField() {
	f, err := reverb.ParseField("chorus_rate")
	if err != nil {
		panic(err)
	}

	info := f.Info()
	fmt.Printf("%s [%g, %g] %s\n", f, info.Min, info.Max, info.Unit)
	// Output: chorus-rate [0.003, 8] Hz
}

func ExampleParams_Clamp() {
	p := reverb.DefaultParams()
	p.Decay = 120
	p.Width = -1

	c := p.Clamp()
	fmt.Println(c.Decay, c.Width)
	// Output: 64 0
}
