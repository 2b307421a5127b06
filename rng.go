package tilegen

import (
	"math/rand"
	"time"
)

// stream names one of the independent random sequences derived from a tile seed.
// Renders never share a *rand.Rand, so tiles can be drawn in parallel.
type stream uint64

const (
	noiseStream   stream = iota + 1 // base colour selection
	detailStream                    // detail pixels & features
	patternStream                   // pattern parameters (stripe width, wave amplitude ..)
	pickStream                      // palette picks & transition dithering
)

// secondaryOffset shifts the seed used for the second terrain of a boundary tile
// so it does not line up with the next plain variation of the first terrain.
const secondaryOffset = 0x5DEECE66D

// newRand returns the generator for stream `s` of `seed`.
// The stream id is mixed in with a splitmix64 step.
func newRand(seed int64, s stream) *rand.Rand {
	z := uint64(seed) + uint64(s)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return rand.New(rand.NewSource(int64(z)))
}

// RandomSeed draws a fresh seed from the clock.
func RandomSeed() int64 {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return rng.Int63()
}

// randRange returns an int in [lo, hi], collapsing to lo when the range is empty
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
