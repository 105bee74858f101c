package replay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"muzero/game"
)

// finishedGame plays a short scripted tic-tac-toe episode with recorded
// search statistics, the shape SaveGame expects from an actor.
func finishedGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.NewGame(game.NewTicTacToe(), 9, 2, 1.0)
	for _, a := range []game.Action{0, 3, 1, 4, 2} { // player 0 wins the top row
		g.Apply(a)
		g.StoreSearchStatistics(map[game.Action]int{a: 1}, 0.5)
	}
	require.True(t, g.Terminal())
	return g
}

func TestSaveGame(t *testing.T) {
	t.Run("saved games get distinct IDs", func(t *testing.T) {
		buffer := NewBuffer(4, 2, 1)

		id1 := buffer.SaveGame(finishedGame(t))
		id2 := buffer.SaveGame(finishedGame(t))

		require.NotEqual(t, id1, id2)
		require.Equal(t, 2, buffer.Len())
	})

	t.Run("the window evicts the oldest game", func(t *testing.T) {
		buffer := NewBuffer(2, 1, 1)

		for i := 0; i < 3; i++ {
			buffer.SaveGame(finishedGame(t))
		}

		require.Equal(t, 2, buffer.Len(), "Window size caps the buffer")
		require.Equal(t, 3, buffer.GamesSaved(), "Total saved count keeps growing")
	})

	t.Run("empty games are rejected", func(t *testing.T) {
		buffer := NewBuffer(2, 1, 1)
		require.Panics(t, func() {
			buffer.SaveGame(game.NewGame(game.NewTicTacToe(), 9, 2, 1.0))
		}, "A game with no moves carries no training signal")
	})
}

func TestSampleBatch(t *testing.T) {
	t.Run("samples have the configured shape", func(t *testing.T) {
		const unroll, td = 3, 5
		buffer := NewBuffer(4, 8, 1)
		buffer.SaveGame(finishedGame(t))

		batch, err := buffer.SampleBatch(context.Background(), unroll, td)

		require.NoError(t, err)
		require.Len(t, batch, 8)
		for _, sample := range batch {
			require.Len(t, sample.Image, 9, "Images are tic-tac-toe observations")
			require.Len(t, sample.Targets, unroll+1,
				"One target per unroll step plus the sampled position")
			require.LessOrEqual(t, len(sample.Actions), unroll,
				"Actions stop at the end of the episode")
			require.NotEmpty(t, sample.Actions)
		}
	})

	t.Run("sampling is reproducible for a seed", func(t *testing.T) {
		first := NewBuffer(4, 4, 42)
		second := NewBuffer(4, 4, 42)
		g := finishedGame(t)
		first.SaveGame(g)
		second.SaveGame(g)

		a, err := first.SampleBatch(context.Background(), 2, 3)
		require.NoError(t, err)
		b, err := second.SampleBatch(context.Background(), 2, 3)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("blocks until a game arrives", func(t *testing.T) {
		buffer := NewBuffer(4, 1, 1)
		done := make(chan []Sample, 1)

		go func() {
			batch, err := buffer.SampleBatch(context.Background(), 1, 1)
			require.NoError(t, err)
			done <- batch
		}()

		select {
		case <-done:
			t.Fatal("SampleBatch should block on an empty buffer")
		case <-time.After(50 * time.Millisecond):
		}

		buffer.SaveGame(finishedGame(t))

		select {
		case batch := <-done:
			require.Len(t, batch, 1)
		case <-time.After(time.Second):
			t.Fatal("SampleBatch should wake up after SaveGame")
		}
	})

	t.Run("cancellation wakes a wait on an empty buffer", func(t *testing.T) {
		buffer := NewBuffer(4, 1, 1)
		ctx, cancel := context.WithCancel(context.Background())
		errs := make(chan error, 1)

		go func() {
			_, err := buffer.SampleBatch(ctx, 1, 1)
			errs <- err
		}()

		select {
		case <-errs:
			t.Fatal("SampleBatch should block on an empty buffer")
		case <-time.After(50 * time.Millisecond):
		}

		cancel()

		select {
		case err := <-errs:
			require.ErrorIs(t, err, context.Canceled,
				"A cancelled wait reports the context error")
		case <-time.After(time.Second):
			t.Fatal("SampleBatch should wake up on cancellation")
		}
	})

	t.Run("a cancelled context fails even with games buffered", func(t *testing.T) {
		buffer := NewBuffer(4, 1, 1)
		buffer.SaveGame(finishedGame(t))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := buffer.SampleBatch(ctx, 1, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}
