package network

import (
	"sync/atomic"

	"golang.org/x/exp/slices"

	"muzero/game"
)

// Uniform is the untrained evaluator: value 0, reward 0, a uniform policy
// over the action space, and a hidden state that echoes its input. Storage
// falls back to it before the first checkpoint.
type Uniform struct {
	actionSpace int
	steps       atomic.Int64
}

func NewUniform(actionSpace int) *Uniform {
	if actionSpace <= 0 {
		panic("network: action space must be positive")
	}
	return &Uniform{actionSpace: actionSpace}
}

func (u *Uniform) InitialInference(observation []float64) Output {
	return Output{
		PolicyLogits: u.logits(),
		HiddenState:  slices.Clone(observation),
	}
}

func (u *Uniform) RecurrentInference(hidden HiddenState, action game.Action) Output {
	return Output{
		PolicyLogits: u.logits(),
		HiddenState:  slices.Clone(hidden),
	}
}

func (u *Uniform) TrainingSteps() int {
	return int(u.steps.Load())
}

func (u *Uniform) Advance() {
	u.steps.Add(1)
}

func (u *Uniform) logits() map[game.Action]float64 {
	logits := make(map[game.Action]float64, u.actionSpace)
	for a := 0; a < u.actionSpace; a++ {
		logits[game.Action(a)] = 0
	}
	return logits
}
