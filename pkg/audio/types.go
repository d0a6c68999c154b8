// ABOUTME: Audio type definitions
// ABOUTME: Defines Format, mono sample Buffer and clamp/conversion helpers
package audio

import "time"

// Format describes a PCM stream format.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Buffer is a fixed-length block of mono samples in [-1, 1] at a given
// sample rate. Buffers are allocated once by their producer and must
// not be mutated afterwards; playback and export code only reads them.
type Buffer struct {
	SampleRate int
	Samples    []float64
}

// Len returns the number of samples in the buffer.
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// SampleCount returns floor(sampleRate * durationSeconds), never less
// than 1. Non-positive inputs are coerced rather than rejected.
func SampleCount(sampleRate int, durationSeconds float64) int {
	n := int(float64(sampleRate) * durationSeconds)
	if n < 1 {
		n = 1
	}
	return n
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the [0, 1] gain domain.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SampleToInt16 converts a float64 sample to 16-bit PCM, clipping to
// full scale.
func SampleToInt16(v float64) int16 {
	v = Clamp(v, -1, 1)
	return int16(v * 32767.0)
}

// SampleFromInt16 converts a 16-bit PCM sample to float64.
func SampleFromInt16(v int16) float64 {
	return float64(v) / 32768.0
}
