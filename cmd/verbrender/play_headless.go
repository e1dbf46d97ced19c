//go:build headless

package main

import (
	"context"
	"errors"
)

func play(context.Context, []float64, []float64, int) error {
	return errors.New("playback not available in headless builds")
}
