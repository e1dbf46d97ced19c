// Package level measures peak, RMS, DC and clipping of rendered audio.
//
// Calculate handles one buffer; Meter accumulates block by block so a
// renderer can meter its output without keeping it in memory.
package level
