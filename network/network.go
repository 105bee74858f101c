package network

import "muzero/game"

// HiddenState is the evaluator's opaque representation of a position. The
// search engine caches it on tree nodes and feeds it back into recurrent
// inference, never interpreting it.
type HiddenState []float64

// Output bundles the results of one inference call.
type Output struct {
	Value        float64
	Reward       float64
	PolicyLogits map[game.Action]float64
	HiddenState  HiddenState
}

// Network is the learned evaluator. Both inference calls are total: they
// always return an output. TrainingSteps is the monotonically non-decreasing
// checkpoint counter of the snapshot.
type Network interface {
	// InitialInference evaluates a real observation at an episode root.
	// Its reward is always 0.
	InitialInference(observation []float64) Output
	// RecurrentInference advances a hidden state by one action inside the
	// search tree.
	RecurrentInference(hidden HiddenState, action game.Action) Output
	TrainingSteps() int
}

// Trainable is a Network whose step counter advances as it is optimized.
type Trainable interface {
	Network
	// Advance increments the training step counter by one.
	Advance()
}
