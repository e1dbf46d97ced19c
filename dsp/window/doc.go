// Package window generates analysis windows for short-time spectral
// measurements.
package window
