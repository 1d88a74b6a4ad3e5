package core

import "math/rand/v2"

// Rand is the random source games draw colors and effect shapes from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source for the given seed. The same seed
// always yields the same sequence.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed) //#nosec G115 -- seed bits are reinterpreted, not range-checked
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// RandRange returns a uniform float in [lo, hi).
func RandRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// RandSign returns -1 or +1 with equal probability.
func RandSign(r Rand) float64 {
	if r.IntN(2) == 0 {
		return -1
	}
	return 1
}
