package config

import "muzero/game"

// Presets carry the reference constants for the classic MuZero settings.

// BoardGame is the shared two-player board-game setting: undiscounted
// Monte Carlo returns with known value bounds (-1, 1).
func BoardGame(actionSpaceSize, maxMoves int, dirichletAlpha float64) *Config {
	return &Config{
		ActionSpaceSize:         actionSpaceSize,
		NumPlayers:              2,
		MaxMoves:                maxMoves,
		Discount:                1.0,
		NumSimulations:          800,
		RootDirichletAlpha:      dirichletAlpha,
		RootExplorationFraction: 0.25,
		PbCBase:                 19652,
		PbCInit:                 1.25,

		NumActors:          3000,
		TrainingSteps:      1000000,
		CheckpointInterval: 1000,
		WindowSize:         1000000,
		BatchSize:          2048,
		NumUnrollSteps:     5,
		TDSteps:            maxMoves, // Always use Monte Carlo return.

		KnownBounds: &KnownBounds{Min: -1, Max: 1},
		VisitSoftmaxTemperature: func(numMoves, trainingSteps int) float64 {
			if numMoves < 30 {
				return 1.0
			}
			return 0.0 // Play according to the max.
		},
	}
}

func Go() *Config {
	return BoardGame(362, 722, 0.03)
}

func Chess() *Config {
	return BoardGame(4672, 512, 0.3)
}

func Shogi() *Config {
	return BoardGame(11259, 512, 0.15)
}

// Atari is the single-player discounted setting.
func Atari() *Config {
	return &Config{
		ActionSpaceSize:         18,
		NumPlayers:              1,
		MaxMoves:                27000, // Half an hour at action repeat 4.
		Discount:                0.997,
		NumSimulations:          50,
		RootDirichletAlpha:      0.25,
		RootExplorationFraction: 0.25,
		PbCBase:                 19652,
		PbCInit:                 1.25,

		NumActors:          350,
		TrainingSteps:      1000000,
		CheckpointInterval: 1000,
		WindowSize:         1000000,
		BatchSize:          1024,
		NumUnrollSteps:     5,
		TDSteps:            10,

		VisitSoftmaxTemperature: func(numMoves, trainingSteps int) float64 {
			switch {
			case trainingSteps < 500e3:
				return 1.0
			case trainingSteps < 750e3:
				return 0.5
			default:
				return 0.25
			}
		},
	}
}

// TicTacToe is a small preset sized for local runs and tests.
func TicTacToe() *Config {
	c := BoardGame(9, 9, 0.25)
	c.NumSimulations = 50
	c.NumActors = 4
	c.TrainingSteps = 100
	c.CheckpointInterval = 10
	c.WindowSize = 256
	c.BatchSize = 32
	c.NumUnrollSteps = 3
	c.TDSteps = 9
	c.NewEnvironment = func() game.Environment { return game.NewTicTacToe() }
	return c
}
