// ABOUTME: Injectable randomness source for texture synthesis
// ABOUTME: Defines the Rand interface and the default time-seeded source
package texture

import (
	"math/rand"
	"time"
)

// Rand supplies uniformly distributed values in [0, 1). *math/rand.Rand
// satisfies it; tests inject deterministic stubs.
type Rand interface {
	Float64() float64
}

// NewDefaultRand returns a time-seeded random source.
func NewDefaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// bipolar draws a uniform value in [-1, 1).
func bipolar(r Rand) float64 {
	return r.Float64()*2 - 1
}
