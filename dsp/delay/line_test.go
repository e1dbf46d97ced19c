package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/interp"
	"github.com/cwbudde/algo-reverb/internal/testutil"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	for _, size := range []int{-1, 0, 3} {
		if _, err := New(size); err == nil {
			t.Fatalf("expected error for size=%d", size)
		}
	}

	if _, err := New(16, WithMode(interp.Mode(9))); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Mode() != interp.Lagrange3 {
		t.Fatalf("default mode: got %v want lagrange3", d.Mode())
	}

	if d.MinDelay() != 2 || d.MaxDelay() != 14 {
		t.Fatalf("range: got [%v, %v] want [2, 14]", d.MinDelay(), d.MaxDelay())
	}
}

func TestNewWithOptions(t *testing.T) {
	d, err := New(16, WithMode(interp.Linear))
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != interp.Linear {
		t.Fatalf("mode: got %v want linear", d.Mode())
	}

	if d.MinDelay() != 1 {
		t.Fatalf("MinDelay: got %v want 1", d.MinDelay())
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}

	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
	// delay=size => oldest sample still held
	if got := d.Read(8); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// buffer holds [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 1; i <= 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

func TestResize(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	d.Write(1)

	if err := d.Resize(2); err == nil {
		t.Fatal("expected error for size=2")
	}
	if err := d.Resize(32); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 32 {
		t.Fatalf("Len: got %d want 32", d.Len())
	}
	if got := d.Read(1); got != 0 {
		t.Fatalf("resize must clear: got %v", got)
	}

	d.Write(3)
	if err := d.Resize(32); err != nil {
		t.Fatal(err)
	}
	if got := d.Read(1); got != 0 {
		t.Fatalf("same-size resize must clear: got %v", got)
	}
}

func TestSizeFor(t *testing.T) {
	d, err := New(SizeFor(100.3))
	if err != nil {
		t.Fatal(err)
	}
	if d.MaxDelay() < 100.3 {
		t.Fatalf("MaxDelay %v below requested 100.3", d.MaxDelay())
	}
	if SizeFor(math.NaN()) != 4 {
		t.Fatalf("SizeFor(NaN) = %d, want 4", SizeFor(math.NaN()))
	}
}

// --- fractional reads ---

// fillRamp fills a delay line with a linear ramp [0, 1, 2, ..., size-1].
func fillRamp(d *Line) {
	for i := 0; i < d.Len(); i++ {
		d.Write(float64(i))
	}
}

func TestReadFractionalRampAllModes(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite, interp.Lagrange3} {
		t.Run(mode.String(), func(t *testing.T) {
			d, err := New(32, WithMode(mode))
			if err != nil {
				t.Fatal(err)
			}

			fillRamp(d)

			for _, delay := range []float64{2, 2.25, 5.5, 17.9, 30} {
				got := d.ReadFractional(delay)
				want := float64(d.Len()) - delay
				if !approxEqual(got, want, 1e-10) {
					t.Fatalf("delay %v: got %v want %v", delay, got, want)
				}
			}
		})
	}
}

func TestReadFractionalIntegerMatchesRead(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	noise := testutil.DeterministicNoise(3, 1, 64)
	for _, v := range noise {
		d.Write(v)
	}

	for k := 2; k <= 62; k++ {
		if got, want := d.ReadFractional(float64(k)), d.Read(k); !approxEqual(got, want, 1e-12) {
			t.Fatalf("delay %d: got %v want %v", k, got, want)
		}
	}
}

// An impulse written into the line comes back after exactly the requested
// number of frames when reads precede writes.
func TestReadAndFeedbackRoundTrip(t *testing.T) {
	for _, delaySamples := range []int{2, 7, 100, 1021} {
		d, err := New(SizeFor(float64(delaySamples)))
		if err != nil {
			t.Fatal(err)
		}

		in := testutil.Impulse(delaySamples+10, 0)
		out := make([]float64, len(in))
		for i, x := range in {
			out[i] = d.ReadAndFeedback(x, float64(delaySamples), 0)
		}

		want := testutil.Impulse(len(in), delaySamples)
		testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
	}
}

func TestReadAndFeedbackRecirculates(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	const (
		delaySamples = 4
		gain         = 0.5
	)

	var echoes []float64
	for i := 0; i < 4*delaySamples+1; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		y := d.ReadAndFeedback(x, delaySamples, gain)
		if i%delaySamples == 0 && i > 0 {
			echoes = append(echoes, y)
		}
	}

	want := []float64{1, 0.5, 0.25, 0.125}
	testutil.RequireSliceNearlyEqual(t, echoes, want, 1e-12)
}

func BenchmarkReadAndFeedback(b *testing.B) {
	d, err := New(4096)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.ReadAndFeedback(0.5, 1234.56, 0.7)
	}
}
