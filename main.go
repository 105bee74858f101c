package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"muzero/config"
	"muzero/metrics"
	"muzero/network"
	"muzero/player"
	"muzero/replay"
	"muzero/train"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "train":
		runTrain(args)
	case "selfplay":
		runSelfplay(args)
	default:
		log.Error().Str("command", cmd).Msg("unknown subcommand")
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: muzero <train|selfplay> [flags]")
}

func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	configPath := fs.String("config", "", "optional YAML config overlay")
	actors := fs.Int("actors", 0, "override number of selfplay actors")
	steps := fs.Int("steps", 0, "override number of training steps")
	simulations := fs.Int("simulations", 0, "override simulations per move")
	seed := fs.Uint64("seed", 1, "random seed")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf := config.TicTacToe()
	if *configPath != "" {
		if err := conf.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *actors > 0 {
		conf.NumActors = *actors
	}
	if *steps > 0 {
		conf.TrainingSteps = *steps
	}
	if *simulations > 0 {
		conf.NumSimulations = *simulations
	}
	conf.Seed = *seed

	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	return conf
}

// runTrain runs the full pipeline: selfplay actors feeding a replay buffer
// and a training loop checkpointing the evaluator.
func runTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	metricsDir := fs.String("metrics", "", "directory for CSV run metrics")
	conf := loadConfig(fs, args)

	storage := network.NewStorage(conf.ActionSpaceSize)
	buffer := replay.NewBuffer(conf.WindowSize, conf.BatchSize, conf.Seed)
	collector := metrics.NewCollector()
	pipeline := train.NewPipeline(conf, storage, buffer, train.WithMetrics(collector))

	net := network.NewUniform(conf.ActionSpaceSize)
	final, err := pipeline.Run(context.Background(), net, train.StepOptimizer{})
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	summary := collector.Summary()
	log.Info().
		Int("episodes", summary.Episodes).
		Int("moves", summary.Moves).
		Int("training_steps", summary.TrainingSteps).
		Int("checkpoints", summary.Checkpoints).
		Int("final_network_steps", final.TrainingSteps()).
		Msg("pipeline complete")

	if *metricsDir != "" {
		writer, err := metrics.NewWriter(*metricsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create metrics writer")
		}
		if err := writer.WriteEpisodes(collector.Episodes()); err != nil {
			log.Fatal().Err(err).Msg("failed to write episode metrics")
		}
		if err := writer.WriteSummary(summary); err != nil {
			log.Fatal().Err(err).Msg("failed to write summary metrics")
		}
	}
}

// runSelfplay generates episodes with the untrained evaluator and reports
// their shape, useful for sanity checks and throughput measurements.
func runSelfplay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", 1, "number of episodes to generate")
	conf := loadConfig(fs, args)

	storage := network.NewStorage(conf.ActionSpaceSize)
	buffer := replay.NewBuffer(conf.WindowSize, conf.BatchSize, conf.Seed)
	actor := player.NewActor(conf, storage, buffer, player.WithSeed(conf.Seed))
	net := network.NewUniform(conf.ActionSpaceSize)
	for i := 0; i < *games; i++ {
		start := time.Now()
		g := actor.PlayGame(net)
		log.Info().
			Int("game", i+1).
			Int("moves", len(g.History)).
			Floats64("rewards", g.Rewards).
			Dur("took", time.Since(start)).
			Msg("episode generated")
	}
}
