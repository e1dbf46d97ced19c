package spatial_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/effects/spatial"
)

func ExampleWidth() {
	l, r := spatial.Width(0.8, 0.2, 0)
	fmt.Printf("mono L=%.4f R=%.4f\n", l, r)

	l, r = spatial.Width(0.8, 0.2, 2)
	fmt.Printf("wide L=%.4f R=%.4f\n", l, r)
	// Output:
	// mono L=0.5000 R=0.5000
	// wide L=1.1000 R=-0.1000
}

func ExampleStereoWidener_RampStereoInPlace() {
	w, err := spatial.NewStereoWidener(48000, spatial.WithWidth(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	left := []float64{1, 1, 1, 1}
	right := []float64{0, 0, 0, 0}
	if err := w.RampStereoInPlace(left, right, 0); err != nil {
		fmt.Println("error:", err)
		return
	}

	for i := range left {
		fmt.Printf("[%d] L=%.4f R=%.4f\n", i, left[i], right[i])
	}
	// Output:
	// [0] L=0.8750 R=0.1250
	// [1] L=0.7500 R=0.2500
	// [2] L=0.6250 R=0.3750
	// [3] L=0.5000 R=0.5000
}
