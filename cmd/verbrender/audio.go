package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dh1tw/gosamplerate"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

const (
	resampleMaxRatio = 16.0
	resampleMinRatio = 1.0 / 16
)

// WAV format tags. Extensible files are read as integer PCM.
const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

// readAudio decodes a WAV or MP3 file chosen by extension.
func readAudio(path string) (left, right []float64, sampleRate float64, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return readWAV(path)
	case ".mp3":
		return readMP3(path)
	default:
		return nil, nil, 0, fmt.Errorf("%s: unsupported input format", path)
	}
}

// readMP3 decodes an MP3 file. The decoder always yields 16 bit stereo.
func readMP3(path string) (left, right []float64, sampleRate float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	left, right = pcm16Stereo(pcm)
	return left, right, float64(dec.SampleRate()), nil
}

// pcm16Stereo splits interleaved signed 16 bit little-endian frames.
func pcm16Stereo(pcm []byte) (left, right []float64) {
	frames := len(pcm) / 4
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		left[i] = float64(int16(binary.LittleEndian.Uint16(pcm[4*i:]))) / 32768
		right[i] = float64(int16(binary.LittleEndian.Uint16(pcm[4*i+2:]))) / 32768
	}
	return left, right
}

// float32LE interleaves a stereo signal into little-endian float32 frames.
func float32LE(left, right []float64) []byte {
	out := make([]byte, 8*len(left))
	for i := range left {
		binary.LittleEndian.PutUint32(out[8*i:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(out[8*i+4:], math.Float32bits(float32(right[i])))
	}
	return out
}

// readWAV decodes a 16, 24 or 32 bit integer PCM file or a 32 bit IEEE
// float file. Mono input is copied to both channels; channels beyond the
// second are ignored.
func readWAV(path string) (left, right []float64, sampleRate float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	bits := int(dec.BitDepth)
	isFloat := dec.WavAudioFormat == wavFormatFloat
	switch {
	case isFloat && bits != 32:
		return nil, nil, 0, fmt.Errorf("%s: unsupported float bit depth %d", path, bits)
	case !isFloat && dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible:
		return nil, nil, 0, fmt.Errorf("%s: unsupported WAV format %d", path, dec.WavAudioFormat)
	case bits != 16 && bits != 24 && bits != 32:
		return nil, nil, 0, fmt.Errorf("%s: unsupported bit depth %d", path, bits)
	}

	ch := buf.Format.NumChannels
	if ch < 1 {
		return nil, nil, 0, fmt.Errorf("%s: no channels", path)
	}

	sample := func(v int) float64 { return float64(v) / math.Ldexp(1, bits-1) }
	if isFloat {
		sample = float32Sample
	}

	frames := len(buf.Data) / ch
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		l := sample(buf.Data[i*ch])
		r := l
		if ch > 1 {
			r = sample(buf.Data[i*ch+1])
		}
		left[i], right[i] = l, r
	}

	return left, right, float64(buf.Format.SampleRate), nil
}

// float32Sample converts a 32 bit word, as the decoder returns it for
// float files, to its IEEE value.
func float32Sample(v int) float64 {
	return float64(math.Float32frombits(uint32(int32(v))))
}

// writeWAV encodes a stereo PCM file. Samples are clipped to [-1, 1].
func writeWAV(path string, left, right []float64, sampleRate, bits int) error {
	if len(left) != len(right) {
		return fmt.Errorf("channel lengths differ: %d vs %d", len(left), len(right))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	full := math.Ldexp(1, bits-1) - 1
	data := make([]int, 2*len(left))
	for i := range left {
		data[2*i] = quantize(left[i], full)
		data[2*i+1] = quantize(right[i], full)
	}

	enc := wav.NewEncoder(f, sampleRate, bits, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bits,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func quantize(x, full float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Round(math.Max(-1, math.Min(1, x)) * full))
}

// resample converts a stereo signal between sample rates with libsamplerate.
func resample(left, right []float64, from, to float64) ([]float64, []float64, error) {
	ratio := to / from
	if !gosamplerate.IsValidRatio(ratio) || ratio < resampleMinRatio || ratio > resampleMaxRatio {
		return nil, nil, fmt.Errorf("invalid resampling ratio %g", ratio)
	}

	in := make([]float32, 2*len(left))
	for i := range left {
		in[2*i] = float32(left[i])
		in[2*i+1] = float32(right[i])
	}

	out, err := gosamplerate.Simple(in, ratio, 2, gosamplerate.SRC_SINC_MEDIUM_QUALITY)
	if err != nil {
		return nil, nil, err
	}

	frames := len(out) / 2
	outL := make([]float64, frames)
	outR := make([]float64, frames)
	for i := range frames {
		outL[i] = float64(out[2*i])
		outR[i] = float64(out[2*i+1])
	}
	return outL, outR, nil
}
