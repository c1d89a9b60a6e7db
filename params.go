package cfr

import (
	"github.com/golang/glog"
)

// Params are the configuration options for the solver. A zero Params
// struct is valid and corresponds to simultaneous-update vanilla CFR
// with constant averaging.
type Params struct {
	// AlternatingUpdates runs one traversal per player each iteration,
	// updating only that player's regrets and strategies, instead of a
	// single simultaneous pass updating all players.
	AlternatingUpdates bool
	// RegretMatchingPlus clamps negative cumulative regrets to zero
	// before each regret-matching step (CFR+).
	RegretMatchingPlus bool
	// LinearAveraging weights iteration t's contribution to the
	// cumulative strategy by max(t - AveragingDelay, 0) instead of 1.
	LinearAveraging bool
	// AveragingDelay is the number of initial iterations excluded from
	// the average when LinearAveraging is set. It has no effect otherwise.
	AveragingDelay int
	// Seed initializes the solver's random source. The random source is
	// consumed only by action sampling, never by the traversal itself.
	Seed int64
}

// iterationWeight returns the weight applied to cumulative strategy
// updates during the given (1-based) iteration.
func (p Params) iterationWeight(iter int) float32 {
	if !p.LinearAveraging {
		return 1.0
	}

	w := iter - p.AveragingDelay
	if w < 0 {
		return 0.0
	}

	return float32(w)
}

// validate flags configuration combinations that have no effect.
func (p Params) validate() {
	if p.AveragingDelay != 0 && !p.LinearAveraging {
		glog.Warningf("AveragingDelay=%d has no effect because LinearAveraging is not enabled",
			p.AveragingDelay)
	}
}
