// ABOUTME: High-level ambience playback package
// ABOUTME: Ties texture synthesis, asset decoding, mixing and output together
// Package ambience provides the high-level playback facade for the
// engine: select an ambiance kind, and the player loops it through a
// live output while volume changes ramp smoothly.
//
// Recorded assets take priority when an asset directory is configured;
// anything missing is procedurally synthesized. Volume is exposed as
// the caller-facing 0-100 percentage and mapped into the [0, 1] gain
// domain internally.
//
//	p, err := ambience.NewPlayer(ambience.Config{})
//	if err != nil { ... }
//	defer p.Close()
//
//	p.SetAmbience("rain")
//	p.SetAmbienceVolume(30)
package ambience
