package game

import "golang.org/x/exp/slices"

// Game is one episode in progress plus everything the optimizer later needs:
// the action history, per-step rewards, and the per-step search statistics
// recorded by the episode driver.
type Game struct {
	env         Environment
	actionSpace int
	players     int
	discount    float64

	History      []Action
	Rewards      []float64
	ChildVisits  [][]float64
	RootValues   []float64
	observations [][]float64
}

// Target is one training target for the evaluator: the TD value estimate, the
// last observed reward, and the search policy at one step of the episode. An
// empty Policy marks an absorbing state past the end of the episode.
type Target struct {
	Value  float64
	Reward float64
	Policy []float64
}

func NewGame(env Environment, actionSpace, players int, discount float64) *Game {
	if env == nil {
		panic("game: nil environment")
	}
	return &Game{
		env:         env,
		actionSpace: actionSpace,
		players:     players,
		discount:    discount,
	}
}

func (g *Game) Terminal() bool {
	return g.env.Terminal()
}

func (g *Game) LegalActions() []Action {
	return g.env.LegalActions()
}

func (g *Game) ToPlay() Player {
	return g.env.ToPlay()
}

// Observation returns the encoded current state, the input for building the
// next search root.
func (g *Game) Observation() []float64 {
	return g.env.Observation()
}

// Apply plays one action on the environment and records the pre-move
// observation, the action, and the reward.
func (g *Game) Apply(action Action) {
	g.observations = append(g.observations, g.env.Observation())
	reward := g.env.Apply(action)
	g.History = append(g.History, action)
	g.Rewards = append(g.Rewards, reward)
}

// StoreSearchStatistics records the root's visit-count distribution and value
// as the training targets for the step just played.
func (g *Game) StoreSearchStatistics(visits map[Action]int, rootValue float64) {
	total := 0
	for _, v := range visits {
		total += v
	}
	row := make([]float64, g.actionSpace)
	if total > 0 {
		for a, v := range visits {
			row[a] = float64(v) / float64(total)
		}
	}
	g.ChildVisits = append(g.ChildVisits, row)
	g.RootValues = append(g.RootValues, rootValue)
}

// MakeImage returns the observation the evaluator saw before move stateIndex.
func (g *Game) MakeImage(stateIndex int) []float64 {
	return g.observations[stateIndex]
}

func (g *Game) ActionHistory() *ActionHistory {
	return NewActionHistory(slices.Clone(g.History), g.actionSpace, g.players)
}

// MakeTarget builds evaluator training targets for unrollSteps+1 consecutive
// steps starting at stateIndex. Values bootstrap from the search root value
// tdSteps ahead when the episode is long enough, discounted accordingly, plus
// the intermediate rewards.
func (g *Game) MakeTarget(stateIndex, unrollSteps, tdSteps int) []Target {
	targets := make([]Target, 0, unrollSteps+1)
	for current := stateIndex; current <= stateIndex+unrollSteps; current++ {
		value := 0.0
		if bootstrap := current + tdSteps; bootstrap < len(g.RootValues) {
			value = g.RootValues[bootstrap] * pow(g.discount, tdSteps)
		}
		for i := current; i < min(current+tdSteps, len(g.Rewards)); i++ {
			value += g.Rewards[i] * pow(g.discount, i-current)
		}

		lastReward := 0.0
		if current > 0 && current <= len(g.Rewards) {
			lastReward = g.Rewards[current-1]
		}

		if current < len(g.RootValues) {
			targets = append(targets, Target{
				Value:  value,
				Reward: lastReward,
				Policy: slices.Clone(g.ChildVisits[current]),
			})
		} else {
			// Past the end of the episode: absorbing state.
			targets = append(targets, Target{Reward: lastReward})
		}
	}
	return targets
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
