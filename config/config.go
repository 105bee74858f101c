package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"muzero/game"
)

// KnownBounds fixes the value normalizer's range when the environment's
// returns are bounded.
type KnownBounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// TemperatureFn maps (moves played, evaluator training steps) to the sampling
// temperature for action selection. 0 means deterministic arg-max.
type TemperatureFn func(numMoves, trainingSteps int) float64

// Config carries every numeric constant of the pipeline. Presets supply the
// temperature schedule and environment factory; Load overlays the numeric
// fields from a YAML file.
type Config struct {
	// Search
	ActionSpaceSize         int     `yaml:"action_space_size"`
	NumPlayers              int     `yaml:"num_players"`
	MaxMoves                int     `yaml:"max_moves"`
	Discount                float64 `yaml:"discount"`
	NumSimulations          int     `yaml:"num_simulations"`
	RootDirichletAlpha      float64 `yaml:"root_dirichlet_alpha"`
	RootExplorationFraction float64 `yaml:"root_exploration_fraction"`
	PbCBase                 float64 `yaml:"pb_c_base"`
	PbCInit                 float64 `yaml:"pb_c_init"`

	// Pipeline
	NumActors          int    `yaml:"num_actors"`
	TrainingSteps      int    `yaml:"training_steps"`
	CheckpointInterval int    `yaml:"checkpoint_interval"`
	WindowSize         int    `yaml:"window_size"`
	BatchSize          int    `yaml:"batch_size"`
	NumUnrollSteps     int    `yaml:"num_unroll_steps"`
	TDSteps            int    `yaml:"td_steps"`
	Seed               uint64 `yaml:"seed"`

	KnownBounds *KnownBounds `yaml:"known_bounds"`

	VisitSoftmaxTemperature TemperatureFn           `yaml:"-"`
	NewEnvironment          func() game.Environment `yaml:"-"`
}

// NewGame starts a fresh episode on a new environment instance.
func (c *Config) NewGame() *game.Game {
	return game.NewGame(c.NewEnvironment(), c.ActionSpaceSize, c.NumPlayers, c.Discount)
}

// Load overlays settings from a YAML file onto c. Fields absent from the file
// keep their preset values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ActionSpaceSize <= 0:
		return fmt.Errorf("action_space_size must be positive, got %d", c.ActionSpaceSize)
	case c.NumPlayers <= 0:
		return fmt.Errorf("num_players must be positive, got %d", c.NumPlayers)
	case c.MaxMoves <= 0:
		return fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves)
	case c.NumSimulations <= 0:
		return fmt.Errorf("num_simulations must be positive, got %d", c.NumSimulations)
	case c.NumActors <= 0:
		return fmt.Errorf("num_actors must be positive, got %d", c.NumActors)
	case c.TrainingSteps <= 0:
		return fmt.Errorf("training_steps must be positive, got %d", c.TrainingSteps)
	case c.CheckpointInterval <= 0:
		return fmt.Errorf("checkpoint_interval must be positive, got %d", c.CheckpointInterval)
	case c.WindowSize <= 0 || c.BatchSize <= 0:
		return fmt.Errorf("window_size and batch_size must be positive, got %d and %d", c.WindowSize, c.BatchSize)
	case c.NumUnrollSteps < 0 || c.TDSteps < 0:
		return fmt.Errorf("num_unroll_steps and td_steps must be non-negative, got %d and %d", c.NumUnrollSteps, c.TDSteps)
	case c.KnownBounds != nil && c.KnownBounds.Max < c.KnownBounds.Min:
		return fmt.Errorf("known_bounds max %v < min %v", c.KnownBounds.Max, c.KnownBounds.Min)
	case c.VisitSoftmaxTemperature == nil:
		return fmt.Errorf("missing temperature schedule")
	case c.NewEnvironment == nil:
		return fmt.Errorf("missing environment factory")
	}
	return nil
}
