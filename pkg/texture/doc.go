// ABOUTME: Procedural noise texture synthesis package
// ABOUTME: Generates looping pink-noise, wind and rain ambience buffers
// Package texture procedurally generates looping ambient noise from a
// pseudo-random source and a handful of recursive filters.
//
// Three algorithm variants exist: a six-pole pink-noise filter bank, a
// low-passed gusting wind and a hiss-plus-droplets rain. Every ambiance
// kind maps onto exactly one of these through a total lookup table;
// kinds without a bespoke algorithm (forest, ocean, fire) are
// deliberately aliased to pink noise.
//
// One-shot generation:
//
//	gen := texture.NewGenerator(nil) // time-seeded randomness
//	buf := gen.Generate(texture.KindRain, 44100, 2)
//
// Streaming generation without per-buffer filter restarts:
//
//	src := texture.NewSource(texture.KindWind, 44100, nil)
//	block := make([]float64, 4410)
//	src.Fill(block)
//
// Buffers are meant to be looped; an audible seam at the loop point is
// an accepted limitation of one-shot buffers, not a defect. Output is
// not deterministic unless a seeded Rand is injected.
package texture
