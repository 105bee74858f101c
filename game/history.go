package game

import "golang.org/x/exp/slices"

// ActionHistory is the sequence of actions taken so far in one episode. The
// search engine clones it per simulation and extends the clone as it descends.
type ActionHistory struct {
	history     []Action
	actionSpace int
	players     int
}

func NewActionHistory(history []Action, actionSpace, players int) *ActionHistory {
	if actionSpace <= 0 {
		panic("game: action space must be positive")
	}
	if players <= 0 {
		panic("game: player count must be positive")
	}
	return &ActionHistory{
		history:     history,
		actionSpace: actionSpace,
		players:     players,
	}
}

func (h *ActionHistory) Clone() *ActionHistory {
	return &ActionHistory{
		history:     slices.Clone(h.history),
		actionSpace: h.actionSpace,
		players:     h.players,
	}
}

func (h *ActionHistory) Add(action Action) {
	h.history = append(h.history, action)
}

func (h *ActionHistory) Last() Action {
	if len(h.history) == 0 {
		panic("game: empty action history has no last action")
	}
	return h.history[len(h.history)-1]
}

func (h *ActionHistory) Len() int {
	return len(h.history)
}

// ActionSpace returns every action in the environment's action space. Inside
// the search tree the legal set is unknown, so expansion considers all of them.
func (h *ActionHistory) ActionSpace() []Action {
	actions := make([]Action, h.actionSpace)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}

// ToPlay returns the player to move after the recorded actions, assuming
// players alternate from the start of the episode.
func (h *ActionHistory) ToPlay() Player {
	return Player(len(h.history) % h.players)
}
