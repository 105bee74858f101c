package player

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat/sampleuv"

	"muzero/game"
	"muzero/network"
	"muzero/searcher"
)

// selectAction picks the move to play from the root's visit-count
// distribution, using the configured temperature schedule.
func (a *Actor) selectAction(numMoves int, root *searcher.Node, net network.Network) game.Action {
	counts := searcher.VisitCounts(root)
	t := a.conf.VisitSoftmaxTemperature(numMoves, net.TrainingSteps())
	return a.sample(counts, t)
}

// sample draws an action proportional to visits^(1/t). Temperature 0 plays
// the arg-max; ties go to the lowest action index.
func (a *Actor) sample(counts map[game.Action]int, temperature float64) game.Action {
	if len(counts) == 0 {
		panic("player: cannot sample from an empty visit distribution")
	}

	actions := maps.Keys(counts)
	slices.Sort(actions)

	if temperature == 0 {
		best := actions[0]
		for _, action := range actions[1:] {
			if counts[action] > counts[best] {
				best = action
			}
		}
		return best
	}

	exponent := 1.0 / temperature
	weights := make([]float64, len(actions))
	for i, action := range actions {
		weights[i] = math.Pow(float64(counts[action]), exponent)
	}
	i, ok := sampleuv.NewWeighted(weights, a.rng).Take()
	if !ok { // All weights zero: no visits anywhere, fall back to the first action
		return actions[0]
	}
	return actions[i]
}
