package train

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"muzero/config"
	"muzero/metrics"
	"muzero/network"
	"muzero/player"
	"muzero/replay"
)

// Optimizer applies one gradient step to a network. Implementations own all
// training internals; the pipeline only hands them batches.
type Optimizer interface {
	Update(net network.Network, batch []replay.Sample) error
}

type Option func(p *Pipeline)

// Pipeline wires the selfplay actors and the training loop together through
// shared evaluator storage and a shared episode buffer. Nothing here is
// ambient: every piece of shared state is passed in explicitly.
type Pipeline struct {
	conf    *config.Config
	storage *network.Storage
	buffer  *replay.Buffer
	metrics metrics.Collector
}

func WithMetrics(collector metrics.Collector) Option {
	return func(p *Pipeline) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

func NewPipeline(conf *config.Config, storage *network.Storage, buffer *replay.Buffer, options ...Option) *Pipeline {
	if err := conf.Validate(); err != nil {
		panic(fmt.Sprintf("train: invalid config: %v", err))
	}
	p := &Pipeline{
		conf:    conf,
		storage: storage,
		buffer:  buffer,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run launches the configured number of actors plus one training loop and
// blocks until training completes. Actors are stopped at their next episode
// boundary once the training loop finishes; the final checkpoint is the
// pipeline's result.
func (p *Pipeline) Run(ctx context.Context, net network.Network, opt Optimizer) (network.Network, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	for i := 0; i < p.conf.NumActors; i++ {
		actor := player.NewActor(p.conf, p.storage, p.buffer,
			player.WithID(i),
			player.WithSeed(p.conf.Seed+uint64(i)*2+1),
			player.WithMetrics(p.metrics),
		)
		group.Go(func() error {
			if err := actor.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		defer cancel() // Stop the actors once training is done
		return p.trainLoop(ctx, net, opt)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return p.storage.LatestNetwork(), nil
}

func (p *Pipeline) trainLoop(ctx context.Context, net network.Network, opt Optimizer) error {
	log.Info().
		Int("actors", p.conf.NumActors).
		Int("steps", p.conf.TrainingSteps).
		Int("simulations", p.conf.NumSimulations).
		Msg("training started")

	for step := 0; step < p.conf.TrainingSteps; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if step%p.conf.CheckpointInterval == 0 {
			p.storage.SaveNetwork(step, net)
			p.metrics.AddCheckpoint()
			log.Info().
				Int("step", step).
				Int("buffered_games", p.buffer.Len()).
				Msg("checkpoint saved")
		}

		batch, err := p.buffer.SampleBatch(ctx, p.conf.NumUnrollSteps, p.conf.TDSteps)
		if err != nil {
			return err
		}
		if err := opt.Update(net, batch); err != nil {
			return fmt.Errorf("training step %d: %w", step, err)
		}
		p.metrics.AddTrainingStep()
	}

	p.storage.SaveNetwork(p.conf.TrainingSteps, net)
	p.metrics.AddCheckpoint()
	log.Info().Int("steps", p.conf.TrainingSteps).Msg("training finished")
	return nil
}
