// ABOUTME: Tests for the CLI render helpers
// ABOUTME: Tests multi-kind mixdown rendering and its edge cases
package main

import (
	"math/rand"
	"testing"

	"github.com/quietpath/ambience-go/pkg/texture"
)

func TestRenderMix(t *testing.T) {
	tests := []struct {
		name            string
		kinds           string
		expectedErr     bool
		expectedSamples int
	}{
		{name: "single kind", kinds: "pink-noise", expectedSamples: 8000},
		{name: "two kinds mixed", kinds: "rain, wind", expectedSamples: 8000},
		{name: "none filtered from mix", kinds: "none,pink-noise", expectedSamples: 8000},
		{name: "only none", kinds: "none", expectedErr: true},
		{name: "empty list", kinds: " , ", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := texture.NewGenerator(rand.New(rand.NewSource(7)))

			buf, err := renderMix(gen, tt.kinds, 8000, 1.0)
			if tt.expectedErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(buf.Samples) != tt.expectedSamples {
				t.Errorf("expected %d samples, got %d", tt.expectedSamples, len(buf.Samples))
			}
			if buf.SampleRate != 8000 {
				t.Errorf("expected sample rate 8000, got %d", buf.SampleRate)
			}
		})
	}
}

func TestRenderMixClipsSum(t *testing.T) {
	gen := texture.NewGenerator(rand.New(rand.NewSource(7)))

	// Stack the same kind many times; the mixdown must stay in range.
	buf, err := renderMix(gen, "wind,wind,wind,wind,wind,wind,wind,wind", 8000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, s := range buf.Samples {
		if s < -1 || s > 1 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
	}
}
