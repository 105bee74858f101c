package searcher

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"muzero/game"
)

// selectChild returns the child with the highest UCB score. Children are
// scanned in ascending action order, so ties go to the lowest action.
func (m *MCTS) selectChild(node *Node, stats *minMaxStats) (game.Action, *Node) {
	if !node.Expanded() {
		panic("searcher: cannot select a child of an unexpanded node")
	}

	actions := sortedActions(node.Children)
	best := actions[0]
	bestScore := math.Inf(-1)
	for _, a := range actions {
		if score := m.ucbScore(node, node.Children[a], stats); score > bestScore {
			bestScore = score
			best = a
		}
	}
	return best, node.Children[best]
}

// ucbScore balances the prior-weighted exploration bonus against the child's
// normalized backed-up value. Unvisited children score on the prior alone.
func (m *MCTS) ucbScore(parent, child *Node, stats *minMaxStats) float64 {
	pbC := math.Log((float64(parent.VisitCount)+m.pbCBase+1)/m.pbCBase) + m.pbCInit
	pbC *= math.Sqrt(float64(parent.VisitCount)) / float64(child.VisitCount+1)

	priorScore := pbC * child.Prior
	if child.VisitCount == 0 {
		return priorScore
	}
	valueScore := child.Reward + m.discount*stats.normalize(child.Value())
	return priorScore + valueScore
}

// VisitCounts returns the per-action visit counts of a searched root, the
// empirical policy the episode driver samples from and the optimizer trains
// toward.
func VisitCounts(root *Node) map[game.Action]int {
	counts := make(map[game.Action]int, len(root.Children))
	for a, child := range root.Children {
		counts[a] = child.VisitCount
	}
	return counts
}

func sortedActions(children map[game.Action]*Node) []game.Action {
	actions := maps.Keys(children)
	slices.Sort(actions)
	return actions
}
