// ABOUTME: Ambiance kind enumeration and algorithm lookup table
// ABOUTME: Maps every kind onto one of three synthesis algorithms
package texture

// Kind identifies a background ambiance category.
type Kind string

const (
	KindNone      Kind = "none"
	KindPinkNoise Kind = "pink-noise"
	KindWind      Kind = "wind"
	KindRain      Kind = "rain"
	KindForest    Kind = "forest"
	KindOcean     Kind = "ocean"
	KindFire      Kind = "fire"
)

// Kinds lists every selectable ambiance kind.
var Kinds = []Kind{
	KindNone,
	KindPinkNoise,
	KindWind,
	KindRain,
	KindForest,
	KindOcean,
	KindFire,
}

// algorithm selects one of the three synthesis variants.
type algorithm int

const (
	algoPink algorithm = iota
	algoWind
	algoRain
)

// algorithmTable is the total kind→algorithm mapping. Forest, ocean
// and fire have no bespoke texture yet and are aliased to pink noise;
// giving one a real algorithm later is a single entry edit here.
var algorithmTable = map[Kind]algorithm{
	KindPinkNoise: algoPink,
	KindWind:      algoWind,
	KindRain:      algoRain,
	KindForest:    algoPink,
	KindOcean:     algoPink,
	KindFire:      algoPink,
}

// algorithmFor resolves a kind to its synthesis algorithm. Unrecognized
// kinds fall back to pink noise, matching the aliased entries.
func algorithmFor(kind Kind) algorithm {
	if a, ok := algorithmTable[kind]; ok {
		return a
	}
	return algoPink
}

// kindAliases maps alternate catalog spellings (the original UI shipped
// French labels) onto canonical kinds.
var kindAliases = map[string]Kind{
	"pluie": KindRain,
	"vent":  KindWind,
	"foret": KindForest,
	"forêt": KindForest,
	"feu":   KindFire,
}

// ParseKind resolves a kind string, accepting canonical names and
// known aliases. Anything unrecognized comes back as-is with ok=false;
// such kinds still synthesize via the pink-noise fallback.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	if alias, ok := kindAliases[s]; ok {
		return alias, true
	}
	return k, false
}
