// Package sampling draws single actions from probability distributions.
package sampling

import (
	"math/rand"
)

const eps = 1e-3

// SampleOne draws one index from the probability vector pv using the
// provided random source.
func SampleOne(rng *rand.Rand, pv []float32) int {
	x := rng.Float32()
	var cumProb float32
	for i, p := range pv {
		cumProb += p
		if cumProb > x {
			return i
		}
	}

	if cumProb < 1.0-eps { // Leave room for floating point error.
		panic("probability distribution does not sum to 1!")
	}

	return len(pv) - 1
}
