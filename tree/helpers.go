// Package tree provides helpers for walking extensive-form game trees.
package tree

import (
	"github.com/equilibre-games/go-cfr"
)

// Visit calls the visitor for every node in the tree rooted at root,
// depth-first, parents before children.
func Visit(root cfr.GameTreeNode, visitor func(node cfr.GameTreeNode)) {
	visitor(root)
	for i := 0; i < root.NumChildren(); i++ {
		Visit(root.GetChild(i), visitor)
	}
}

// VisitInfoSets calls the visitor once for every distinct information
// set of the acting player at a decision node.
func VisitInfoSets(root cfr.GameTreeNode, visitor func(player int, infoSet string)) {
	seen := make(map[string]struct{})
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() != cfr.PlayerNode {
			return
		}

		player := node.Player()
		infoSet := node.InfoSet(player).Key()
		if _, ok := seen[infoSet]; ok {
			return
		}

		visitor(player, infoSet)
		seen[infoSet] = struct{}{}
	})
}

// CountNodes returns the total number of nodes in the tree.
func CountNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) { total++ })
	return total
}

// CountTerminalNodes returns the number of terminal nodes in the tree.
func CountTerminalNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() == cfr.TerminalNode {
			total++
		}
	})

	return total
}

// CountInfoSets returns the number of distinct information sets of the
// acting players over all decision nodes.
func CountInfoSets(root cfr.GameTreeNode) int {
	total := 0
	VisitInfoSets(root, func(player int, infoSet string) { total++ })
	return total
}
