package player

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"muzero/config"
	"muzero/game"
	"muzero/metrics"
	"muzero/network"
	"muzero/replay"
	"muzero/searcher"
)

// retryDelay spaces out episode retries after a failed one so a broken actor
// cannot spin.
const retryDelay = 100 * time.Millisecond

type Option func(a *Actor)

// Actor is one episode driver: it repeatedly fetches the latest evaluator
// snapshot, plays one full episode with search, and submits it to the shared
// buffer.
type Actor struct {
	id      int
	conf    *config.Config
	storage *network.Storage
	buffer  *replay.Buffer
	mcts    *searcher.MCTS
	rng     *rand.Rand
	metrics metrics.Collector
}

func WithID(id int) Option {
	return func(a *Actor) {
		a.id = id
	}
}

// WithSeed makes the actor's search and action sampling deterministic.
func WithSeed(seed uint64) Option {
	return func(a *Actor) {
		a.rng = rand.New(rand.NewPCG(seed, seed))
		a.mcts = newSearch(a.conf, searcher.WithSeed(seed+1))
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *Actor) {
		if collector != nil {
			a.metrics = collector
		}
	}
}

func NewActor(conf *config.Config, storage *network.Storage, buffer *replay.Buffer, options ...Option) *Actor {
	if err := conf.Validate(); err != nil {
		panic(fmt.Sprintf("player: invalid config: %v", err))
	}
	a := &Actor{
		conf:    conf,
		storage: storage,
		buffer:  buffer,
		mcts:    newSearch(conf),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func newSearch(conf *config.Config, extra ...searcher.Option) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithDiscount(conf.Discount),
		searcher.WithUCBConstants(conf.PbCBase, conf.PbCInit),
		searcher.WithExplorationNoise(conf.RootDirichletAlpha, conf.RootExplorationFraction),
	}
	if conf.KnownBounds != nil {
		options = append(options, searcher.WithKnownBounds(searcher.Bounds{
			Min: conf.KnownBounds.Min,
			Max: conf.KnownBounds.Max,
		}))
	}
	options = append(options, extra...)
	return searcher.NewMCTS(conf.NumSimulations, options...)
}

// Run generates episodes until ctx is cancelled, checking the signal at
// episode boundaries only. A failed episode is logged and retried after a
// short delay; it never takes the actor down.
func (a *Actor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		net := a.storage.LatestNetwork()
		start := time.Now()
		g, err := a.playGame(net)
		if err != nil {
			log.Warn().Err(err).Int("actor", a.id).Msg("episode aborted")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}

		id := a.buffer.SaveGame(g)
		a.metrics.AddEpisode(metrics.EpisodeRecord{
			ID:       id.String(),
			Actor:    a.id,
			Moves:    len(g.History),
			Duration: time.Since(start),
		})
		log.Debug().
			Int("actor", a.id).
			Str("game", id.String()).
			Int("moves", len(g.History)).
			Int("network_steps", net.TrainingSteps()).
			Msg("episode complete")
	}
}

// playGame drives one episode. Invariant violations inside the search abort
// only this episode.
func (a *Actor) playGame(net network.Network) (g *game.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("search failed: %v", r)
		}
	}()

	g = a.PlayGame(net)
	if len(g.History) == 0 {
		return nil, fmt.Errorf("episode ended with no moves")
	}
	return g, nil
}

// PlayGame produces one completed episode against the given evaluator
// snapshot: at every step it builds a fresh root from the current
// observation, searches, samples an action by visit counts, and records the
// search statistics. The tree is discarded after each decision.
func (a *Actor) PlayGame(net network.Network) *game.Game {
	g := a.conf.NewGame()

	for !g.Terminal() && len(g.History) < a.conf.MaxMoves {
		root := a.mcts.NewRoot(net, g.Observation(), g.LegalActions(), g.ToPlay())
		a.mcts.RunSearch(root, g.ActionHistory(), net)

		action := a.selectAction(len(g.History), root, net)
		g.Apply(action)
		g.StoreSearchStatistics(searcher.VisitCounts(root), root.Value())
	}
	return g
}
