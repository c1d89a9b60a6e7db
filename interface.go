package cfr

// NodeType is the type of node in an extensive-form game tree.
type NodeType int

const (
	ChanceNode NodeType = iota
	TerminalNode
	PlayerNode
)

// ChancePlayer is the reserved player value returned by Player() at
// chance nodes.
const ChancePlayer = -1

// InfoSet is the observable game history from the point of view of one player.
type InfoSet interface {
	// Key is an identifier used to uniquely look up this InfoSet
	// when accumulating regrets and strategies in tabular CFR.
	//
	// It may be an arbitrary string of bytes and does not need to be
	// human-readable. For example, it could be a simplified abstraction
	// or hash of the full game history.
	Key() string
}

// GameTreeNode is the interface for a node in an extensive-form game tree.
//
// Transitions must be pure from the solver's point of view: GetChild
// returns a new node and never mutates the receiver, so a node may be
// revisited any number of times during traversal.
type GameTreeNode interface {
	// Type returns the type of game node.
	Type() NodeType

	// The number of direct children of this node.
	NumChildren() int
	// Get the ith child of this node.
	GetChild(i int) GameTreeNode
	// Get the probability of the ith child of this node.
	// May only be called for nodes with Type() == ChanceNode.
	// The probabilities over all children must sum to 1.
	GetChildProbability(i int) float32

	// Player returns this node's acting player, or ChancePlayer at
	// chance nodes. It may not be called on terminal nodes.
	Player() int
	// InfoSet returns the information set for this node for the given player.
	// It may only be called for nodes with Type() == PlayerNode.
	InfoSet(player int) InfoSet
	// Utility returns this node's payoff for the given player.
	// It may only be called for nodes with Type() == TerminalNode.
	Utility(player int) float32
}

// Game is a finite extensive-form game to be solved.
type Game interface {
	// NumPlayers returns the number of non-chance players in the game.
	NumPlayers() int
	// RootNode returns the initial state of the game.
	RootNode() GameTreeNode
}
