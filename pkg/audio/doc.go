// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample-domain helpers
// Package audio provides fundamental audio types and numeric utilities
// for the ambience engine.
//
// This package defines the core types used throughout the library:
//   - Format: Describes a PCM stream (sample rate, channels, bit depth)
//   - Buffer: A fixed-length block of mono float64 samples
//
// It also provides sample-domain helpers shared by the synthesis,
// mixing and export layers:
//   - Clamping and float64 ↔ int16 PCM conversion
//   - Fade windows, RMS normalization and naive mixdown
//   - Peak/RMS level measurement in dBFS
//
// Example:
//
//	buf := &audio.Buffer{SampleRate: 44100, Samples: samples}
//	audio.Fade(buf.Samples, 0.05, buf.SampleRate)
//	stats := audio.Measure(buf.Samples)
//	log.Printf("peak %.1f dBFS, rms %.1f dBFS", stats.PeakDBFS, stats.RMSDBFS)
package audio
