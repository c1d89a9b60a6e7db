package cfr

import (
	"math/rand"

	"github.com/equilibre-games/go-cfr/internal/f32"
	"github.com/equilibre-games/go-cfr/internal/sampling"
)

// StrategyLookup maps a game node to a probability distribution over its
// legal actions.
type StrategyLookup interface {
	// GetStrategy returns the distribution over the node's children.
	// The returned slice must not be modified by the caller.
	GetStrategy(node GameTreeNode) []float32
}

// AveragePolicy is a pure lookup from information-state key to the
// normalized long-run average strategy, as produced by Solver.Finalize.
// States that were never updated fall back to the uniform distribution.
type AveragePolicy struct {
	dist map[string][]float32
}

var _ StrategyLookup = &AveragePolicy{}

// GetStrategy implements StrategyLookup.
func (ap *AveragePolicy) GetStrategy(node GameTreeNode) []float32 {
	key := node.InfoSet(node.Player()).Key()
	if d, ok := ap.dist[key]; ok {
		return d
	}

	return uniformDist(node.NumChildren())
}

// Len returns the number of information states with a finalized
// (non-default) distribution.
func (ap *AveragePolicy) Len() int {
	return len(ap.dist)
}

// Sampler draws actions from a strategy lookup using an explicitly owned
// random source, so that all randomness is reproducible and scoped to
// one solver instance.
type Sampler struct {
	lookup StrategyLookup
	rng    *rand.Rand
}

// NewSampler creates a Sampler drawing from the given lookup with the
// given random source.
func NewSampler(lookup StrategyLookup, rng *rand.Rand) *Sampler {
	return &Sampler{lookup: lookup, rng: rng}
}

// SelectAction samples a child index for the given node according to the
// lookup's distribution.
func (s *Sampler) SelectAction(node GameTreeNode) int {
	return sampling.SampleOne(s.rng, s.lookup.GetStrategy(node))
}

func uniformDist(n int) []float32 {
	result := make([]float32, n)
	p := 1.0 / float32(n)
	f32.AddConst(p, result)
	return result
}
