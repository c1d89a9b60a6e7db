package cfr

import (
	"github.com/equilibre-games/go-cfr/internal/f32"
)

// UpdateTarget selects which players' accumulators a traversal updates:
// either every player in one simultaneous pass, or exactly one player.
type UpdateTarget struct {
	player int
	all    bool
}

// UpdateAll targets every player in a single traversal.
func UpdateAll() UpdateTarget {
	return UpdateTarget{all: true}
}

// UpdateOnly targets a single player's accumulators.
func UpdateOnly(player int) UpdateTarget {
	return UpdateTarget{player: player}
}

func (t UpdateTarget) updates(player int) bool {
	return t.all || t.player == player
}

// traverse performs one depth-first traversal of the game tree, updating
// the targeted players' regrets and strategy sums. w is the iteration
// weight applied to cumulative strategy updates.
func (s *Solver) traverse(target UpdateTarget, w float32) {
	// reach[p] is the product of player p's own action probabilities
	// along the path from the root; the final entry is chance's.
	reach := s.slicePool.alloc(s.nPlayers + 1)
	for i := range reach {
		reach[i] = 1.0
	}

	values := s.runHelper(s.game.RootNode(), target, w, reach)
	s.slicePool.free(values)
	s.slicePool.free(reach)
}

// runHelper returns the per-player expected values of this subtree under
// the current strategy profile. The returned slice is owned by the
// caller and must be released to the slice pool.
func (s *Solver) runHelper(node GameTreeNode, target UpdateTarget, w float32, reach []float32) []float32 {
	switch node.Type() {
	case TerminalNode:
		return s.handleTerminalNode(node)
	case ChanceNode:
		return s.handleChanceNode(node, target, w, reach)
	default:
		return s.handlePlayerNode(node, target, w, reach)
	}
}

func (s *Solver) handleTerminalNode(node GameTreeNode) []float32 {
	values := s.slicePool.alloc(s.nPlayers)
	for player := 0; player < s.nPlayers; player++ {
		values[player] = node.Utility(player)
	}

	return values
}

func (s *Solver) handleChanceNode(node GameTreeNode, target UpdateTarget, w float32, reach []float32) []float32 {
	values := s.slicePool.alloc(s.nPlayers)
	for i := 0; i < node.NumChildren(); i++ {
		p := node.GetChildProbability(i)
		childReach := s.copyReach(reach)
		childReach[s.nPlayers] *= p
		childValues := s.runHelper(node.GetChild(i), target, w, childReach)
		f32.AxpyUnitary(p, childValues, values)
		s.slicePool.free(childValues)
		s.slicePool.free(childReach)
	}

	return values
}

func (s *Solver) handlePlayerNode(node GameTreeNode, target UpdateTarget, w float32, reach []float32) []float32 {
	player := node.Player()
	n := s.lookupNode(node, player)
	strategy := n.Strategy()
	nChildren := node.NumChildren()

	values := s.slicePool.alloc(s.nPlayers)
	actionValues := s.slicePool.alloc(nChildren)
	for i := 0; i < nChildren; i++ {
		sigma := strategy[i]
		childReach := s.copyReach(reach)
		childReach[player] *= sigma
		childValues := s.runHelper(node.GetChild(i), target, w, childReach)
		actionValues[i] = childValues[player]
		f32.AxpyUnitary(sigma, childValues, values)
		s.slicePool.free(childValues)
		s.slicePool.free(childReach)
	}

	if target.updates(player) {
		// Turn the per-action values into advantages over the node's
		// expected value, then weight by the probability that everyone
		// else (opponents and chance) reached this node.
		f32.AddConst(-values[player], actionValues)
		n.AddRegret(counterFactualProb(player, reach), actionValues)
		n.AccumulateStrategy(w * reach[player])
	}

	s.slicePool.free(actionValues)
	return values
}

// counterFactualProb is the probability of reaching this node assuming
// the given player tried to: the product of everyone else's reach,
// chance included.
func counterFactualProb(player int, reach []float32) float32 {
	prob := float32(1.0)
	for i, p := range reach {
		if i != player {
			prob *= p
		}
	}

	return prob
}

func (s *Solver) copyReach(reach []float32) []float32 {
	c := s.slicePool.alloc(len(reach))
	copy(c, reach)
	return c
}
