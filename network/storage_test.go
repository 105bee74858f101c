package network

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("empty storage falls back to a uniform network", func(t *testing.T) {
		storage := NewStorage(9)

		net := storage.LatestNetwork()

		require.IsType(t, &Uniform{}, net)
		require.Equal(t, 0, net.TrainingSteps())
	})

	t.Run("latest network is the highest checkpoint step", func(t *testing.T) {
		storage := NewStorage(9)
		first := NewUniform(9)
		second := NewUniform(9)

		storage.SaveNetwork(5, second)
		storage.SaveNetwork(3, first) // out of order, must not win

		require.Same(t, second, storage.LatestNetwork())
		require.Equal(t, 2, storage.Checkpoints())
	})

	t.Run("panics on a nil network", func(t *testing.T) {
		require.Panics(t, func() { NewStorage(9).SaveNetwork(0, nil) })
	})

	t.Run("concurrent readers see consistent snapshots", func(t *testing.T) {
		storage := NewStorage(9)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					require.NotNil(t, storage.LatestNetwork())
				}
			}()
		}
		for i := 0; i < 100; i++ {
			storage.SaveNetwork(i, NewUniform(9))
		}
		wg.Wait()
	})
}

func TestUniform(t *testing.T) {
	t.Run("initial inference is uniform with zero value and reward", func(t *testing.T) {
		net := NewUniform(3)
		obs := []float64{1, 2, 3}

		out := net.InitialInference(obs)

		require.Zero(t, out.Value)
		require.Zero(t, out.Reward)
		require.Len(t, out.PolicyLogits, 3)
		for _, logit := range out.PolicyLogits {
			require.Zero(t, logit, "Uniform logits should all be equal")
		}
		require.Equal(t, HiddenState(obs), out.HiddenState)
	})

	t.Run("recurrent inference echoes the hidden state", func(t *testing.T) {
		net := NewUniform(3)
		hidden := HiddenState{4, 5}

		out := net.RecurrentInference(hidden, 1)

		require.Equal(t, hidden, out.HiddenState)
		require.Zero(t, out.Reward)
	})

	t.Run("advance moves the step counter", func(t *testing.T) {
		net := NewUniform(3)
		require.Equal(t, 0, net.TrainingSteps())
		net.Advance()
		net.Advance()
		require.Equal(t, 2, net.TrainingSteps())
	})
}
