package cfr

import (
	"math"
)

// ExpectedValue returns the given player's expected payoff at the root
// when every player follows the given strategy lookup.
func ExpectedValue(game Game, lookup StrategyLookup, player int) float32 {
	return expectedValue(game.RootNode(), lookup, player)
}

func expectedValue(node GameTreeNode, lookup StrategyLookup, player int) float32 {
	switch node.Type() {
	case TerminalNode:
		return node.Utility(player)
	case ChanceNode:
		var ev float32
		for i := 0; i < node.NumChildren(); i++ {
			ev += node.GetChildProbability(i) * expectedValue(node.GetChild(i), lookup, player)
		}
		return ev
	default:
		strategy := lookup.GetStrategy(node)
		var ev float32
		for i := 0; i < node.NumChildren(); i++ {
			ev += strategy[i] * expectedValue(node.GetChild(i), lookup, player)
		}
		return ev
	}
}

// BestResponseValue returns the expected payoff to the given player of
// playing an exact best response while every other player follows the
// given strategy lookup. It walks the exhaustive game tree, so it is
// only suitable for games small enough to enumerate.
func BestResponseValue(game Game, lookup StrategyLookup, player int) float32 {
	br := newBestResponse(game, lookup, player)
	return br.value(game.RootNode())
}

// NashConv returns the total incentive to deviate: the sum over players
// of how much each could gain by best-responding to the profile.
func NashConv(game Game, lookup StrategyLookup) float32 {
	var total float32
	for player := 0; player < game.NumPlayers(); player++ {
		total += BestResponseValue(game, lookup, player) - ExpectedValue(game, lookup, player)
	}

	return total
}

// Exploitability returns NashConv averaged over players. For two-player
// zero-sum games this is the standard exploitability convergence metric:
// it is zero exactly at a Nash equilibrium.
func Exploitability(game Game, lookup StrategyLookup) float32 {
	return NashConv(game, lookup) / float32(game.NumPlayers())
}

// weightedHistory is one concrete history within an information set,
// together with the probability that everyone except the responding
// player (chance included) plays to reach it.
type weightedHistory struct {
	node  GameTreeNode
	reach float32
}

type bestResponse struct {
	lookup StrategyLookup
	player int

	// Map of InfoSet key -> histories belonging to that information set.
	infoSets map[string][]weightedHistory
	// Map of InfoSet key -> chosen best-response action.
	actions map[string]int
}

func newBestResponse(game Game, lookup StrategyLookup, player int) *bestResponse {
	br := &bestResponse{
		lookup:   lookup,
		player:   player,
		infoSets: make(map[string][]weightedHistory),
		actions:  make(map[string]int),
	}

	br.collect(game.RootNode(), 1.0)
	return br
}

// collect groups the responding player's decision histories by
// information set, weighted by the others' reach probability.
func (br *bestResponse) collect(node GameTreeNode, reach float32) {
	switch node.Type() {
	case TerminalNode:
		return
	case ChanceNode:
		for i := 0; i < node.NumChildren(); i++ {
			br.collect(node.GetChild(i), reach*node.GetChildProbability(i))
		}
	default:
		if node.Player() == br.player {
			key := node.InfoSet(br.player).Key()
			br.infoSets[key] = append(br.infoSets[key], weightedHistory{node, reach})
			for i := 0; i < node.NumChildren(); i++ {
				br.collect(node.GetChild(i), reach)
			}
		} else {
			strategy := br.lookup.GetStrategy(node)
			for i := 0; i < node.NumChildren(); i++ {
				br.collect(node.GetChild(i), reach*strategy[i])
			}
		}
	}
}

// value is the responding player's expected payoff at this history when
// they best-respond and everyone else follows the fixed lookup.
func (br *bestResponse) value(node GameTreeNode) float32 {
	switch node.Type() {
	case TerminalNode:
		return node.Utility(br.player)
	case ChanceNode:
		var ev float32
		for i := 0; i < node.NumChildren(); i++ {
			ev += node.GetChildProbability(i) * br.value(node.GetChild(i))
		}
		return ev
	default:
		if node.Player() == br.player {
			a := br.bestAction(node.InfoSet(br.player).Key())
			return br.value(node.GetChild(a))
		}

		strategy := br.lookup.GetStrategy(node)
		var ev float32
		for i := 0; i < node.NumChildren(); i++ {
			ev += strategy[i] * br.value(node.GetChild(i))
		}
		return ev
	}
}

// bestAction picks, once per information set, the action maximizing the
// counterfactually weighted value over all histories in that set.
func (br *bestResponse) bestAction(key string) int {
	if a, ok := br.actions[key]; ok {
		return a
	}

	histories := br.infoSets[key]
	nActions := histories[0].node.NumChildren()
	best := 0
	bestValue := float32(math.Inf(-1))
	for a := 0; a < nActions; a++ {
		var v float32
		for _, h := range histories {
			v += h.reach * br.value(h.node.GetChild(a))
		}

		if v > bestValue {
			best, bestValue = a, v
		}
	}

	br.actions[key] = best
	return best
}
