package searcher

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distmv"

	"muzero/game"
	"muzero/network"
)

// Defaults from the MuZero paper's board-game setting.
const (
	DefaultPbCBase             = 19652.0
	DefaultPbCInit             = 1.25
	DefaultDiscount            = 1.0
	DefaultDirichletAlpha      = 0.3
	DefaultExplorationFraction = 0.25
)

type Option func(m *MCTS)

// MCTS runs simulations over a tree of Nodes, guided by an evaluator. One
// MCTS instance drives one episode at a time; the tree it builds is discarded
// after every decision. Not safe for concurrent use.
type MCTS struct {
	simulations         int
	discount            float64
	pbCBase             float64
	pbCInit             float64
	dirichletAlpha      float64
	explorationFraction float64
	bounds              *Bounds
	rng                 *rand.Rand
}

func WithDiscount(discount float64) Option {
	return func(m *MCTS) {
		m.discount = discount
	}
}

func WithUCBConstants(base, init float64) Option {
	return func(m *MCTS) {
		m.pbCBase = base
		m.pbCInit = init
	}
}

// WithExplorationNoise sets the Dirichlet concentration and the blend
// fraction for root priors. A fraction of 0 disables the noise.
func WithExplorationNoise(alpha, fraction float64) Option {
	return func(m *MCTS) {
		m.dirichletAlpha = alpha
		m.explorationFraction = fraction
	}
}

// WithKnownBounds fixes the value normalizer's range instead of adapting it
// to observed values.
func WithKnownBounds(bounds Bounds) Option {
	return func(m *MCTS) {
		m.bounds = &bounds
	}
}

// WithSeed makes the search deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

func NewMCTS(simulations int, options ...Option) *MCTS {
	if simulations <= 0 {
		panic("searcher: must run at least one simulation")
	}
	m := &MCTS{ // Default values
		simulations:         simulations,
		discount:            DefaultDiscount,
		pbCBase:             DefaultPbCBase,
		pbCInit:             DefaultPbCInit,
		dirichletAlpha:      DefaultDirichletAlpha,
		explorationFraction: DefaultExplorationFraction,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// NewRoot expands a root node from the current real observation via the
// evaluator's initial inference and perturbs its priors with exploration
// noise, once. The legal action set must not be empty: searching a terminal
// state is a caller error.
func (m *MCTS) NewRoot(net network.Network, observation []float64, legal []game.Action, toPlay game.Player) *Node {
	root := NewNode(0)
	expandNode(root, toPlay, legal, net.InitialInference(observation))
	m.addExplorationNoise(root)
	return root
}

// RunSearch runs the configured number of simulations, mutating the tree
// rooted at root in place. Each simulation selects a path to a leaf by UCB,
// expands the leaf with one recurrent inference, and backs the value up the
// path.
func (m *MCTS) RunSearch(root *Node, history *game.ActionHistory, net network.Network) {
	if !root.Expanded() {
		panic("searcher: cannot search an unexpanded root")
	}

	stats := newMinMaxStats(m.bounds)

	for i := 0; i < m.simulations; i++ {
		node := root
		h := history.Clone()
		path := []*Node{root}

		for node.Expanded() {
			var action game.Action
			action, node = m.selectChild(node, stats)
			h.Add(action)
			path = append(path, node)
		}

		// The leaf is reached from its parent's hidden state by the last
		// selected action.
		parent := path[len(path)-2]
		out := net.RecurrentInference(parent.HiddenState, h.Last())
		expandNode(node, h.ToPlay(), h.ActionSpace(), out)

		m.backpropagate(path, out.Value, h.ToPlay(), stats)
	}
}

// expandNode populates a leaf from one inference output, creating one child
// per legal action with priors softmax-normalized over that legal set.
func expandNode(node *Node, toPlay game.Player, actions []game.Action, out network.Output) {
	if len(actions) == 0 {
		panic("searcher: cannot expand a node with no legal actions")
	}

	node.ToPlay = toPlay
	node.HiddenState = out.HiddenState
	node.Reward = out.Reward

	sum := 0.0
	exps := make(map[game.Action]float64, len(actions))
	for _, a := range actions {
		e := math.Exp(out.PolicyLogits[a])
		exps[a] = e
		sum += e
	}
	for _, a := range actions {
		node.Children[a] = NewNode(exps[a] / sum)
	}
}

// addExplorationNoise blends a Dirichlet noise vector into the root's priors
// to diversify early exploration. Applied exactly once per tree, on the root
// only.
func (m *MCTS) addExplorationNoise(root *Node) {
	if m.explorationFraction == 0 {
		return
	}

	actions := sortedActions(root.Children)
	alpha := make([]float64, len(actions))
	for i := range alpha {
		alpha[i] = m.dirichletAlpha
	}
	noise := distmv.NewDirichlet(alpha, m.rng).Rand(nil)

	frac := m.explorationFraction
	for i, a := range actions {
		child := root.Children[a]
		child.Prior = child.Prior*(1-frac) + noise[i]*frac
	}
}

// backpropagate walks the simulation path leaf to root, accumulating the
// value with the sign adjusted to each node's player to move, and carrying
// reward + discount * value upward.
func (m *MCTS) backpropagate(path []*Node, value float64, toPlay game.Player, stats *minMaxStats) {
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		if node.ToPlay == toPlay {
			node.ValueSum += value
		} else {
			node.ValueSum -= value
		}
		node.VisitCount++
		stats.update(node.Value())

		value = node.Reward + m.discount*value
	}
}
