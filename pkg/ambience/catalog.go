// ABOUTME: Preset catalog and asset path mapping
// ABOUTME: Lists themed ambience presets and their optional recorded assets
package ambience

import (
	"path"

	"github.com/quietpath/ambience-go/pkg/texture"
)

// Preset is one themed ambience card offered to callers. Tags are
// canonical EN; titles carry the shipped FR labels.
type Preset struct {
	Tag      string
	Title    string
	Subtitle string
	Kind     texture.Kind
}

// Presets is the built-in themed catalog. Tags without a matching
// texture algorithm resolve through the pink-noise alias.
var Presets = []Preset{
	{Tag: "sleep", Title: "Sommeil", Subtitle: "Sons doux pour s'endormir", Kind: texture.KindPinkNoise},
	{Tag: "relax", Title: "Détente", Subtitle: "Ambiances calmes et apaisantes", Kind: texture.KindPinkNoise},
	{Tag: "rain", Title: "Pluie", Subtitle: "Pluie, orage, gouttes", Kind: texture.KindRain},
	{Tag: "ocean", Title: "Océan", Subtitle: "Vagues, mer, rivage", Kind: texture.KindOcean},
	{Tag: "fire", Title: "Feu", Subtitle: "Cheminée, crépitements", Kind: texture.KindFire},
	{Tag: "forest", Title: "Forêt", Subtitle: "Nature, oiseaux, bois", Kind: texture.KindForest},
	{Tag: "wind", Title: "Vent", Subtitle: "Vent, souffle, air", Kind: texture.KindWind},
	{Tag: "pink-noise", Title: "Bruit rose", Subtitle: "Texture neutre et continue", Kind: texture.KindPinkNoise},
}

// PresetByTag looks up a preset by its canonical tag.
func PresetByTag(tag string) (Preset, bool) {
	for _, p := range Presets {
		if p.Tag == tag {
			return p, true
		}
	}
	return Preset{}, false
}

// ambienceAssets maps kinds to their optional recorded asset,
// relative to the asset directory.
var ambienceAssets = map[texture.Kind]string{
	texture.KindRain:      "ambiences/rain.mp3",
	texture.KindForest:    "ambiences/forest.mp3",
	texture.KindOcean:     "ambiences/ocean.mp3",
	texture.KindWind:      "ambiences/wind.mp3",
	texture.KindFire:      "ambiences/fire.mp3",
	texture.KindPinkNoise: "ambiences/pink-noise.mp3",
}

// AmbienceAssetPath returns the recorded asset path for a kind, or
// "" when the kind has none (none itself, unknown kinds).
func AmbienceAssetPath(kind texture.Kind) string {
	return ambienceAssets[kind]
}

// MusicAssetPath returns the asset path for a music track tag.
func MusicAssetPath(tag string) string {
	if tag == "" {
		return ""
	}
	return path.Join("music", tag+".mp3")
}
