package game

// TicTacToe is a small two-player Environment used by the demo pipeline and
// the tests. Actions are cell indices 0..8, row-major.
type TicTacToe struct {
	cells  [9]int8 // 0 empty, 1 player 0, 2 player 1
	toPlay Player
	winner int8 // 0 none, 1 player 0, 2 player 1
	moves  int
}

var ticTacToeLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func NewTicTacToe() *TicTacToe {
	return &TicTacToe{}
}

func (t *TicTacToe) LegalActions() []Action {
	if t.Terminal() {
		return nil
	}
	actions := make([]Action, 0, 9-t.moves)
	for i, c := range t.cells {
		if c == 0 {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (t *TicTacToe) ToPlay() Player {
	return t.toPlay
}

func (t *TicTacToe) Terminal() bool {
	return t.winner != 0 || t.moves == 9
}

// Apply plays a move and returns 1 if it wins the game for the mover, else 0.
func (t *TicTacToe) Apply(action Action) float64 {
	if action < 0 || action > 8 || t.cells[action] != 0 {
		panic("game: illegal tic-tac-toe move")
	}
	if t.Terminal() {
		panic("game: move on a finished tic-tac-toe game")
	}

	mark := int8(t.toPlay) + 1
	t.cells[action] = mark
	t.moves++
	t.toPlay = 1 - t.toPlay

	for _, line := range ticTacToeLines {
		if t.cells[line[0]] == mark && t.cells[line[1]] == mark && t.cells[line[2]] == mark {
			t.winner = mark
			return 1
		}
	}
	return 0
}

// Observation encodes the board from the mover's perspective: +1 own marks,
// -1 opponent marks, 0 empty.
func (t *TicTacToe) Observation() []float64 {
	mine := int8(t.toPlay) + 1
	obs := make([]float64, 9)
	for i, c := range t.cells {
		switch c {
		case 0:
		case mine:
			obs[i] = 1
		default:
			obs[i] = -1
		}
	}
	return obs
}
