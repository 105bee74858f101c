package game

// Action identifies one move in an environment's action space.
type Action int

// Player identifies the player to move.
type Player int

// Environment is the simulated game the pipeline learns from. Implementations
// own the rules; the search engine never looks past this contract.
type Environment interface {
	// LegalActions returns the actions playable in the current state. Empty
	// iff the state is terminal.
	LegalActions() []Action
	// ToPlay returns the player to move.
	ToPlay() Player
	// Terminal reports whether the episode has ended.
	Terminal() bool
	// Apply plays an action and returns the immediate reward from the acting
	// player's perspective.
	Apply(action Action) float64
	// Observation encodes the current state for the evaluator.
	Observation() []float64
}
