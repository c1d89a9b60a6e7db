package tree_test

import (
	"testing"

	"github.com/equilibre-games/go-cfr/kuhn"
	"github.com/equilibre-games/go-cfr/tree"
)

func TestKuhnPoker_GameTree(t *testing.T) {
	root := kuhn.NewGame().RootNode()

	if nNodes := tree.CountNodes(root); nNodes != 58 {
		t.Errorf("expected %d nodes, got %d", 58, nNodes)
	}

	if nTerminal := tree.CountTerminalNodes(root); nTerminal != 30 {
		t.Errorf("expected %d terminal nodes, got %d", 30, nTerminal)
	}
}

func TestKuhnPoker_InfoSets(t *testing.T) {
	root := kuhn.NewGame().RootNode()
	if nInfoSets := tree.CountInfoSets(root); nInfoSets != 12 {
		t.Errorf("expected %d info sets, got %d", 12, nInfoSets)
	}
}

func TestVisitInfoSets_ReportsActingPlayer(t *testing.T) {
	root := kuhn.NewGame().RootNode()
	perPlayer := make(map[int]int)
	tree.VisitInfoSets(root, func(player int, infoSet string) {
		perPlayer[player]++
	})

	if perPlayer[0] != 6 || perPlayer[1] != 6 {
		t.Errorf("expected 6 info sets per player, got %v", perPlayer)
	}
}
