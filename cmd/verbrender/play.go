//go:build !headless

package main

import (
	"bytes"
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
)

// play sends the rendered stereo signal to the default audio device and
// blocks until it finished or ctx is canceled.
func play(ctx context.Context, left, right []float64, sampleRate int) error {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready

	p := otoCtx.NewPlayer(bytes.NewReader(float32LE(left, right)))
	defer p.Close()
	p.Play()

	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}
	return nil
}
