// ABOUTME: Sample-domain analysis and shaping utilities
// ABOUTME: Fades, RMS normalization, mixdown and dBFS level measurement
package audio

import "math"

// Stats holds peak and RMS levels for a block of samples.
type Stats struct {
	PeakDBFS float64
	RMSDBFS  float64
}

// Measure computes peak and RMS levels in dBFS. Silence reports
// -math.MaxFloat64 rather than -Inf so the values stay comparable.
func Measure(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{PeakDBFS: -math.MaxFloat64, RMSDBFS: -math.MaxFloat64}
	}

	peak := 0.0
	sumsq := 0.0
	for _, s := range samples {
		a := math.Abs(s)
		if a > peak {
			peak = a
		}
		sumsq += s * s
	}
	rms := math.Sqrt(sumsq / float64(len(samples)))

	return Stats{
		PeakDBFS: toDBFS(peak),
		RMSDBFS:  toDBFS(rms),
	}
}

func toDBFS(v float64) float64 {
	if v <= 0 {
		return -math.MaxFloat64
	}
	return 20 * math.Log10(v)
}

// Fade applies a linear fade-in and fade-out of fadeSeconds in place.
// Blocks too short to hold both fades are left untouched.
func Fade(samples []float64, fadeSeconds float64, sampleRate int) {
	n := int(fadeSeconds * float64(sampleRate))
	if n <= 0 || n*2 > len(samples) {
		return
	}

	for i := 0; i < n; i++ {
		w := 1.0
		if n > 1 {
			w = float64(i) / float64(n-1)
		}
		samples[i] *= w
		samples[len(samples)-1-i] *= w
	}
}

// Normalize scales samples in place so their RMS matches targetDB
// (dBFS). Silent input is returned unchanged.
func Normalize(samples []float64, targetDB float64) {
	if len(samples) == 0 {
		return
	}

	sumsq := 0.0
	for _, s := range samples {
		sumsq += s * s
	}
	rms := math.Sqrt(sumsq/float64(len(samples)) + 1e-9)
	if rms == 0 {
		return
	}

	gain := math.Pow(10, targetDB/20) / rms
	for i := range samples {
		samples[i] *= gain
	}
}

// Mixdown sums mono tracks into a new buffer sized to the longest
// track, clipping the result to [-1, 1].
func Mixdown(tracks ...[]float64) []float64 {
	length := 0
	for _, t := range tracks {
		if len(t) > length {
			length = len(t)
		}
	}

	mix := make([]float64, length)
	for _, t := range tracks {
		for i, s := range t {
			mix[i] += s
		}
	}
	for i := range mix {
		mix[i] = Clamp(mix[i], -1, 1)
	}
	return mix
}
