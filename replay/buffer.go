package replay

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"muzero/game"
)

// Sample is one training example: the observation at a sampled position, the
// actions actually played over the unroll window, and the matching targets.
type Sample struct {
	Image   []float64
	Actions []game.Action
	Targets []game.Target
}

// Record is a finished episode tagged with a stable identifier.
type Record struct {
	ID   uuid.UUID
	Game *game.Game
}

// Buffer is the shared episode store: every actor writes finished games, the
// training loop reads batches. Oldest games are evicted once the window is
// full.
type Buffer struct {
	mu       sync.Mutex
	hasGames *sync.Cond

	windowSize int
	batchSize  int
	games      []Record
	saved      int
	rng        *rand.Rand
}

func NewBuffer(windowSize, batchSize int, seed uint64) *Buffer {
	if windowSize <= 0 || batchSize <= 0 {
		panic("replay: window and batch sizes must be positive")
	}
	b := &Buffer{
		windowSize: windowSize,
		batchSize:  batchSize,
		rng:        rand.New(rand.NewPCG(seed, seed)),
	}
	b.hasGames = sync.NewCond(&b.mu)
	return b
}

// SaveGame stores a finished episode and returns its record ID. Games with no
// moves are rejected: they carry no training signal and would break sampling.
func (b *Buffer) SaveGame(g *game.Game) uuid.UUID {
	if g == nil || len(g.History) == 0 {
		panic("replay: cannot save an empty game")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.games) >= b.windowSize {
		b.games = b.games[1:]
	}
	record := Record{ID: uuid.New(), Game: g}
	b.games = append(b.games, record)
	b.saved++
	b.hasGames.Broadcast()
	return record.ID
}

// SampleBatch draws batchSize positions uniformly over buffered games and
// positions. It blocks until at least one game is available or the context is
// cancelled; this is the pipeline's only intended blocking point.
func (b *Buffer) SampleBatch(ctx context.Context, unrollSteps, tdSteps int) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Wake the cond wait when the context ends; cond vars have no
	// cancellation of their own.
	stop := context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.hasGames.Broadcast()
	})
	defer stop()

	for len(b.games) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.hasGames.Wait()
	}

	batch := make([]Sample, 0, b.batchSize)
	for i := 0; i < b.batchSize; i++ {
		g := b.games[b.rng.IntN(len(b.games))].Game
		pos := b.rng.IntN(len(g.History))
		end := min(pos+unrollSteps, len(g.History))
		batch = append(batch, Sample{
			Image:   g.MakeImage(pos),
			Actions: slices.Clone(g.History[pos:end]),
			Targets: g.MakeTarget(pos, unrollSteps, tdSteps),
		})
	}
	return batch, nil
}

// Len returns the number of currently buffered games.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.games)
}

// GamesSaved returns the total number of games ever saved, evicted included.
func (b *Buffer) GamesSaved() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saved
}
