// ABOUTME: Tests for the preset catalog
// ABOUTME: Tests tag lookup, kind mapping and asset path resolution
package ambience

import (
	"testing"

	"github.com/quietpath/ambience-go/pkg/texture"
)

func TestPresetByTag(t *testing.T) {
	p, ok := PresetByTag("rain")
	if !ok {
		t.Fatal("expected rain preset")
	}
	if p.Kind != texture.KindRain {
		t.Errorf("expected rain kind, got %s", p.Kind)
	}
	if p.Title != "Pluie" {
		t.Errorf("expected shipped FR title, got %s", p.Title)
	}

	if _, ok := PresetByTag("jungle"); ok {
		t.Error("expected miss for unknown tag")
	}
}

func TestPresetKindsResolveToAlgorithms(t *testing.T) {
	// Every catalog entry must synthesize: its kind parses and is not none.
	for _, p := range Presets {
		kind, _ := texture.ParseKind(string(p.Kind))
		if kind == texture.KindNone {
			t.Errorf("preset %s maps to none", p.Tag)
		}
	}
}

func TestAmbienceAssetPath(t *testing.T) {
	tests := []struct {
		kind     texture.Kind
		expected string
	}{
		{texture.KindRain, "ambiences/rain.mp3"},
		{texture.KindPinkNoise, "ambiences/pink-noise.mp3"},
		{texture.KindNone, ""},
		{texture.Kind("waterfall"), ""},
	}

	for _, tt := range tests {
		if got := AmbienceAssetPath(tt.kind); got != tt.expected {
			t.Errorf("AmbienceAssetPath(%v): expected %q, got %q", tt.kind, tt.expected, got)
		}
	}
}

func TestMusicAssetPath(t *testing.T) {
	if got := MusicAssetPath("user-slowlife"); got != "music/user-slowlife.mp3" {
		t.Errorf("unexpected path %q", got)
	}
	if got := MusicAssetPath(""); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
}
