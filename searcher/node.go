package searcher

import (
	"muzero/game"
	"muzero/network"
)

// Node is one decision point in the search tree. Children are owned
// exclusively by their parent's map; the simulation path is kept as an
// explicit slice during each simulation, so nodes carry no parent pointer.
type Node struct {
	VisitCount  int
	ToPlay      game.Player
	Prior       float64
	ValueSum    float64
	Children    map[game.Action]*Node
	HiddenState network.HiddenState
	Reward      float64
}

func NewNode(prior float64) *Node {
	return &Node{
		Prior:    prior,
		Children: make(map[game.Action]*Node),
	}
}

// Expanded reports whether the node has been expanded with children.
func (n *Node) Expanded() bool {
	return len(n.Children) > 0
}

// Value returns the mean backed-up value, or 0 before the first visit.
func (n *Node) Value() float64 {
	if n.VisitCount == 0 {
		return 0
	}
	return n.ValueSum / float64(n.VisitCount)
}
