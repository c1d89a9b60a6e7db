package cfr

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/equilibre-games/go-cfr/internal/f32"
	"github.com/equilibre-games/go-cfr/internal/policy"
)

// Solver implements tabular Counterfactual Regret Minimization for
// two-or-more-player extensive-form games. It owns a table of
// per-information-state accumulators, built once at construction by an
// exhaustive walk of the game tree, and refines the strategy profile
// with each call to RunIteration. The average strategy accumulated over
// iterations converges to an approximate Nash equilibrium.
type Solver struct {
	params   Params
	game     Game
	nPlayers int

	// Map of InfoSet key -> accumulators for that information state.
	nodes map[string]*policy.Node
	iter  int

	rng       *rand.Rand
	avg       *AveragePolicy
	slicePool *floatSlicePool
}

// New creates a Solver for the given game. It walks the full game tree
// once to discover every reachable information state; the resulting node
// table is never grown or resized afterwards.
func New(game Game, params Params) *Solver {
	params.validate()
	s := &Solver{
		params:    params,
		game:      game,
		nPlayers:  game.NumPlayers(),
		nodes:     make(map[string]*policy.Node),
		iter:      1,
		rng:       rand.New(rand.NewSource(params.Seed)),
		slicePool: &floatSlicePool{},
	}

	s.initNodes(game.RootNode())
	glog.V(1).Infof("Initialized node table with %d information states", len(s.nodes))
	return s
}

// initNodes walks the tree depth-first and get-or-inserts a node for
// every information state encountered at a player decision point.
func (s *Solver) initNodes(node GameTreeNode) {
	if node.Type() == PlayerNode {
		player := node.Player()
		key := node.InfoSet(player).Key()
		if n, ok := s.nodes[key]; ok {
			if n.NumActions() != node.NumChildren() {
				panic(errors.Errorf(
					"information state %q has n_actions=%v but node has n_children=%v: %v",
					key, n.NumActions(), node.NumChildren(), node))
			}
		} else {
			s.nodes[key] = policy.New(node.NumChildren())
		}
	}

	for i := 0; i < node.NumChildren(); i++ {
		s.initNodes(node.GetChild(i))
	}
}

// RestoreSolver reconstructs a solver from previously persisted state.
// It is intended for storage backends; the nodes map is adopted, not
// copied, and must have been built for the given game.
func RestoreSolver(game Game, params Params, iter int, nodes map[string]*policy.Node) *Solver {
	return &Solver{
		params:    params,
		game:      game,
		nPlayers:  game.NumPlayers(),
		nodes:     nodes,
		iter:      iter,
		rng:       rand.New(rand.NewSource(params.Seed)),
		slicePool: &floatSlicePool{},
	}
}

// VisitNodes calls f for every tracked information state and its
// accumulators, in unspecified order.
func (s *Solver) VisitNodes(f func(key string, node *policy.Node)) {
	for key, n := range s.nodes {
		f(key, n)
	}
}

// Params returns the solver's immutable configuration.
func (s *Solver) Params() Params {
	return s.params
}

// Iter returns the number of the next iteration to run, starting at 1.
func (s *Solver) Iter() int {
	return s.iter
}

// NumInfoStates returns the number of information states tracked.
func (s *Solver) NumInfoStates() int {
	return len(s.nodes)
}

// RunIteration performs one full CFR iteration. With AlternatingUpdates
// it runs one traversal per player, each targeting only that player's
// regrets and strategy sums and each followed by a regret-matching pass
// over all tracked nodes. Otherwise it runs a single traversal updating
// all players, followed by one regret-matching pass.
func (s *Solver) RunIteration() {
	w := s.params.iterationWeight(s.iter)
	if s.params.AlternatingUpdates {
		for player := 0; player < s.nPlayers; player++ {
			s.traverse(UpdateOnly(player), w)
			s.nextStrategies()
		}
	} else {
		s.traverse(UpdateAll(), w)
		s.nextStrategies()
	}

	s.iter++
}

// nextStrategies recomputes every node's current strategy from its
// cumulative regret by regret matching.
func (s *Solver) nextStrategies() {
	for _, n := range s.nodes {
		n.NextStrategy(s.params.RegretMatchingPlus)
	}

	glog.V(2).Infof("Updated strategies for %d information states", len(s.nodes))
}

// Finalize folds the cumulative strategy sums into a queryable average
// policy and returns it. It is idempotent: re-finalizing without an
// intervening RunIteration yields an identical policy. Calling it before
// any iterations produces an all-uniform policy.
func (s *Solver) Finalize() *AveragePolicy {
	dist := make(map[string][]float32, len(s.nodes))
	for key, n := range s.nodes {
		if f32.Sum(n.StrategySum()) > 0 {
			dist[key] = n.AverageStrategy()
		}
	}

	s.avg = &AveragePolicy{dist: dist}
	return s.avg
}

// ActionDistribution returns the finalized average-strategy distribution
// for the information state of the given node, or the uniform
// distribution if that state was never updated. If Finalize has not been
// called since construction, it is invoked implicitly; after further
// iterations callers must re-Finalize to observe the new average.
func (s *Solver) ActionDistribution(node GameTreeNode) []float32 {
	if s.avg == nil {
		s.Finalize()
	}

	return s.avg.GetStrategy(node)
}

// SampleAction draws an action for the given node from the finalized
// average policy, using the solver's seeded random source.
func (s *Solver) SampleAction(node GameTreeNode) int {
	if s.avg == nil {
		s.Finalize()
	}

	return NewSampler(s.avg, s.rng).SelectAction(node)
}

// lookupNode returns the accumulator for the given decision node. The
// node table is complete after construction, so a miss means the game
// tree walked at initialization does not match the tree being traversed.
func (s *Solver) lookupNode(node GameTreeNode, player int) *policy.Node {
	key := node.InfoSet(player).Key()
	n, ok := s.nodes[key]
	if !ok {
		panic(errors.Errorf("missing information state node for key %q: %v", key, node))
	}

	if n.NumActions() != node.NumChildren() {
		panic(errors.Errorf(
			"information state %q has n_actions=%v but node has n_children=%v: %v",
			key, n.NumActions(), node.NumChildren(), node))
	}

	return n
}
