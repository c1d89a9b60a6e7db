package cfr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/kuhn"
)

// pickNode is a minimal decision node for exercising the best-response
// calculator on a tree with known values.
type pickNode struct {
	children []cfr.GameTreeNode
	key      string
}

type pickInfoSet string

func (s pickInfoSet) Key() string { return string(s) }

func (n *pickNode) Type() cfr.NodeType                { return cfr.PlayerNode }
func (n *pickNode) NumChildren() int                  { return len(n.children) }
func (n *pickNode) GetChild(i int) cfr.GameTreeNode   { return n.children[i] }
func (n *pickNode) GetChildProbability(i int) float32 { return 0 }
func (n *pickNode) Player() int                       { return 0 }
func (n *pickNode) InfoSet(player int) cfr.InfoSet    { return pickInfoSet(n.key) }
func (n *pickNode) Utility(player int) float32        { return 0 }

type leafNode struct {
	utils []float32
}

func (n *leafNode) Type() cfr.NodeType                { return cfr.TerminalNode }
func (n *leafNode) NumChildren() int                  { return 0 }
func (n *leafNode) GetChild(i int) cfr.GameTreeNode   { return nil }
func (n *leafNode) GetChildProbability(i int) float32 { return 0 }
func (n *leafNode) Player() int                       { return 0 }
func (n *leafNode) InfoSet(player int) cfr.InfoSet    { return pickInfoSet("") }
func (n *leafNode) Utility(player int) float32        { return n.utils[player] }

type pickGame struct {
	root cfr.GameTreeNode
}

func (g pickGame) NumPlayers() int            { return 2 }
func (g pickGame) RootNode() cfr.GameTreeNode { return g.root }

type uniformLookup struct{}

func (uniformLookup) GetStrategy(node cfr.GameTreeNode) []float32 {
	n := node.NumChildren()
	dist := make([]float32, n)
	for i := range dist {
		dist[i] = 1.0 / float32(n)
	}

	return dist
}

func TestBestResponse_SingleDecision(t *testing.T) {
	game := pickGame{root: &pickNode{
		key: "pick",
		children: []cfr.GameTreeNode{
			&leafNode{utils: []float32{1, -1}},
			&leafNode{utils: []float32{3, -3}},
		},
	}}

	// Under uniform play the expected value is 2; the best response
	// always picks the higher leaf.
	assert.InDelta(t, 2.0, cfr.ExpectedValue(game, uniformLookup{}, 0), 1e-6)
	assert.InDelta(t, 3.0, cfr.BestResponseValue(game, uniformLookup{}, 0), 1e-6)

	// Player 1 never acts, so their best response gains nothing.
	assert.InDelta(t, 1.0, cfr.NashConv(game, uniformLookup{}), 1e-6)
	assert.InDelta(t, 0.5, cfr.Exploitability(game, uniformLookup{}), 1e-6)
}

func TestBestResponse_NeverBelowExpectedValue(t *testing.T) {
	game := kuhn.NewGame()

	lookups := map[string]cfr.StrategyLookup{
		"uniform": uniformLookup{},
	}

	solver := cfr.New(game, cfr.Params{AlternatingUpdates: true, RegretMatchingPlus: true})
	for i := 0; i < 100; i++ {
		solver.RunIteration()
	}
	lookups["trained"] = solver.Finalize()

	for name, lookup := range lookups {
		for player := 0; player < game.NumPlayers(); player++ {
			br := cfr.BestResponseValue(game, lookup, player)
			ev := cfr.ExpectedValue(game, lookup, player)
			assert.GreaterOrEqual(t, br, ev-1e-5,
				"%s: best response for player %d below expected value", name, player)
		}
	}
}

func TestExploitability_UniformKuhnIsPositive(t *testing.T) {
	game := kuhn.NewGame()
	assert.Greater(t, cfr.Exploitability(game, uniformLookup{}), float32(0.05),
		"uniform play should be clearly exploitable")
}
