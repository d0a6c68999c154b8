// ABOUTME: Noise texture synthesis engine
// ABOUTME: Implements pink-noise, wind and rain generation over injected randomness
package texture

import (
	"math"

	"github.com/quietpath/ambience-go/pkg/audio"
)

// DefaultLoopSeconds is the buffer length callers use for loopable
// textures.
const DefaultLoopSeconds = 2.0

// Generator produces one-shot ambiance buffers from an injected random
// source. Each Generate call synthesizes fresh randomness through a
// cold-started filter chain; no state is shared between calls.
type Generator struct {
	rng Rand
}

// NewGenerator creates a generator over rng. A nil rng selects a
// time-seeded default.
func NewGenerator(rng Rand) *Generator {
	if rng == nil {
		rng = NewDefaultRand()
	}
	return &Generator{rng: rng}
}

// Generate synthesizes a mono buffer of floor(sampleRate *
// durationSeconds) samples, never fewer than 1. KindNone returns nil:
// nothing to play, not an error. Non-positive numeric inputs are
// coerced, never rejected.
func (g *Generator) Generate(kind Kind, sampleRate int, durationSeconds float64) *audio.Buffer {
	if kind == KindNone {
		return nil
	}

	n := audio.SampleCount(sampleRate, durationSeconds)
	samples := make([]float64, n)

	src := NewSource(kind, sampleRate, g.rng)
	src.Fill(samples)

	return &audio.Buffer{SampleRate: sampleRate, Samples: samples}
}

// Source is a streaming texture generator. Filter memory persists
// across Fill calls, so successive blocks join without the cold-start
// transient a fresh one-shot buffer carries.
type Source struct {
	kind       Kind
	algo       algorithm
	rng        Rand
	sampleRate float64

	idx uint64 // absolute sample index, drives the modulation sinusoids

	// six-pole pink filter bank plus white memory term
	b0, b1, b2, b3, b4, b5, b6 float64

	// single-pole accumulators for wind and rain
	lp float64
}

// NewSource creates a streaming source for kind at sampleRate. A nil
// rng selects a time-seeded default. Non-positive sample rates are
// coerced to 1 so the modulation clock stays finite.
func NewSource(kind Kind, sampleRate int, rng Rand) *Source {
	if rng == nil {
		rng = NewDefaultRand()
	}
	if sampleRate < 1 {
		sampleRate = 1
	}
	return &Source{
		kind:       kind,
		algo:       algorithmFor(kind),
		rng:        rng,
		sampleRate: float64(sampleRate),
	}
}

// Kind returns the ambiance kind this source synthesizes.
func (s *Source) Kind() Kind { return s.kind }

// Fill writes the next len(dst) samples into dst. A KindNone source
// writes silence.
func (s *Source) Fill(dst []float64) {
	if s.kind == KindNone {
		for i := range dst {
			dst[i] = 0
		}
		s.idx += uint64(len(dst))
		return
	}

	switch s.algo {
	case algoWind:
		s.fillWind(dst)
	case algoRain:
		s.fillRain(dst)
	default:
		s.fillPink(dst)
	}
}

// fillPink runs white noise through a six-pole recursive filter bank
// approximating a 1/f spectral falloff. The pole/gain pairs are
// load-bearing for the timbre; do not retune them casually.
func (s *Source) fillPink(dst []float64) {
	for i := range dst {
		white := bipolar(s.rng)

		s.b0 = 0.99886*s.b0 + white*0.0555179
		s.b1 = 0.99332*s.b1 + white*0.0750759
		s.b2 = 0.96900*s.b2 + white*0.1538520
		s.b3 = 0.86650*s.b3 + white*0.3104856
		s.b4 = 0.55000*s.b4 + white*0.5329522
		s.b5 = -0.7616*s.b5 - white*0.0168980

		dst[i] = (s.b0 + s.b1 + s.b2 + s.b3 + s.b4 + s.b5 + s.b6 + white*0.5362) * 0.11
		s.b6 = white * 0.115926
	}
	s.idx += uint64(len(dst))
}

// fillWind low-passes white noise and amplitude-modulates it with a
// slow sinusoid to produce gusts.
func (s *Source) fillWind(dst []float64) {
	for i := range dst {
		white := bipolar(s.rng)
		s.lp = s.lp*0.985 + white*0.015

		t := float64(s.idx+uint64(i)) / s.sampleRate
		gust := 0.55 + 0.45*math.Sin(2*math.Pi*0.15*t+1.2)

		dst[i] = s.lp * gust * 0.35
	}
	s.idx += uint64(len(dst))
}

// fillRain mixes a high-passed hiss with sparse random droplet
// impulses, both swelling under a slow shower-intensity sinusoid.
func (s *Source) fillRain(dst []float64) {
	for i := range dst {
		white := bipolar(s.rng)
		s.lp = s.lp*0.995 + white*0.005
		hiss := white - s.lp

		drop := 0.0
		if s.rng.Float64() < 0.004 {
			drop = bipolar(s.rng)
		}

		t := float64(s.idx+uint64(i)) / s.sampleRate
		shower := 0.65 + 0.35*math.Sin(2*math.Pi*0.07*t+0.4)

		dst[i] = (hiss*0.12 + drop*0.08) * shower
	}
	s.idx += uint64(len(dst))
}
