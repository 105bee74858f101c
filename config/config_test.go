package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	t.Run("board game presets share the reference constants", func(t *testing.T) {
		for name, conf := range map[string]*Config{
			"go": Go(), "chess": Chess(), "shogi": Shogi(),
		} {
			require.Equal(t, 1.0, conf.Discount, name)
			require.Equal(t, 800, conf.NumSimulations, name)
			require.Equal(t, 19652.0, conf.PbCBase, name)
			require.Equal(t, 1.25, conf.PbCInit, name)
			require.Equal(t, 2, conf.NumPlayers, name)
			require.NotNil(t, conf.KnownBounds, name)
			require.Equal(t, -1.0, conf.KnownBounds.Min, name)
			require.Equal(t, 1.0, conf.KnownBounds.Max, name)
		}
	})

	t.Run("board game temperature drops to zero after 30 moves", func(t *testing.T) {
		conf := Go()
		require.Equal(t, 1.0, conf.VisitSoftmaxTemperature(0, 0))
		require.Equal(t, 1.0, conf.VisitSoftmaxTemperature(29, 1000))
		require.Equal(t, 0.0, conf.VisitSoftmaxTemperature(30, 0),
			"Late moves should be played deterministically")
	})

	t.Run("atari decays temperature with training progress", func(t *testing.T) {
		conf := Atari()
		require.Equal(t, 1, conf.NumPlayers)
		require.Equal(t, 0.997, conf.Discount)
		require.Nil(t, conf.KnownBounds, "Atari returns are unbounded")
		require.Equal(t, 1.0, conf.VisitSoftmaxTemperature(100, 0))
		require.Equal(t, 0.5, conf.VisitSoftmaxTemperature(100, 600_000))
		require.Equal(t, 0.25, conf.VisitSoftmaxTemperature(100, 800_000))
	})

	t.Run("tic-tac-toe preset passes validation", func(t *testing.T) {
		require.NoError(t, TicTacToe().Validate())
	})
}

func TestLoad(t *testing.T) {
	t.Run("yaml overlays preset values and keeps the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("num_simulations: 25\nnum_actors: 2\nknown_bounds:\n  min: 0\n  max: 5\n")
		require.NoError(t, os.WriteFile(path, data, 0644))

		conf := TicTacToe()
		require.NoError(t, conf.Load(path))

		require.Equal(t, 25, conf.NumSimulations)
		require.Equal(t, 2, conf.NumActors)
		require.Equal(t, &KnownBounds{Min: 0, Max: 5}, conf.KnownBounds)
		require.Equal(t, 9, conf.ActionSpaceSize, "Unset fields keep preset values")
		require.NotNil(t, conf.NewEnvironment)
		require.NoError(t, conf.Validate())
	})

	t.Run("missing files are reported", func(t *testing.T) {
		conf := TicTacToe()
		require.Error(t, conf.Load(filepath.Join(t.TempDir(), "nope.yaml")))
	})

	t.Run("malformed yaml is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{num_simulations"), 0644))
		require.Error(t, TicTacToe().Load(path))
	})
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(*Config){
		"zero simulations":    func(c *Config) { c.NumSimulations = 0 },
		"zero actors":         func(c *Config) { c.NumActors = 0 },
		"zero training steps": func(c *Config) { c.TrainingSteps = 0 },
		"zero max moves":      func(c *Config) { c.MaxMoves = 0 },
		"inverted bounds":     func(c *Config) { c.KnownBounds = &KnownBounds{Min: 1, Max: -1} },
		"negative td steps":   func(c *Config) { c.TDSteps = -1 },
		"no temperature":      func(c *Config) { c.VisitSoftmaxTemperature = nil },
		"no environment":      func(c *Config) { c.NewEnvironment = nil },
		"zero checkpoint gap": func(c *Config) { c.CheckpointInterval = 0 },
		"zero batch size":     func(c *Config) { c.BatchSize = 0 },
		"zero players":        func(c *Config) { c.NumPlayers = 0 },
		"zero action space":   func(c *Config) { c.ActionSpaceSize = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			conf := TicTacToe()
			mutate(conf)
			require.Error(t, conf.Validate())
		})
	}
}
