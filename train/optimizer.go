package train

import (
	"muzero/network"
	"muzero/replay"
)

// StepOptimizer advances the network's training-step counter without
// computing gradients. It stands in for a real optimizer in demos and tests,
// which exercises the checkpoint and temperature-schedule plumbing.
type StepOptimizer struct{}

func (StepOptimizer) Update(net network.Network, batch []replay.Sample) error {
	if trainable, ok := net.(network.Trainable); ok {
		trainable.Advance()
	}
	return nil
}
