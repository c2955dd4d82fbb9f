// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/tabular/agent"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	"github.com/samuelfneumann/tabular/utils/logger"
)

// Experiment outlines structs that can run experiments. Experiments
// send each TimeStep to their Trackers, which cache the data they
// need. The Save method then writes all cached data to disk, usually
// after Run has returned.
type Experiment interface {
	Run(ctx context.Context) error
	Save() error

	// Register adds a Tracker to the experiment. Useful for tracking
	// data only after a specified event.
	Register(t trackers.Tracker)
}

// Config represents a configuration of a set of independent online
// experiments whose cumulative reward traces are averaged
type Config struct {
	Steps       int
	Runs        int
	Parallelism int
	Seed        uint64
	Schedule    Schedule
	Agent       agent.Config

	OnRunDone func(run int)
	Logger    logrus.FieldLogger
}

// Result is the outcome of a set of independent online experiments
type Result struct {
	// CumulativeReward[t] is the mean, over runs, of the total reward
	// received in timesteps 0 through t
	CumulativeReward []float64

	// EpisodeLengths[i] holds the number of steps taken to reach the
	// end of each episode in run i
	EpisodeLengths [][]float64
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("validate: steps must be non-negative, got %v",
			c.Steps)
	}
	if c.Schedule == nil {
		return fmt.Errorf("validate: no layout schedule")
	}
	if c.Agent == nil {
		return fmt.Errorf("validate: no agent config")
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Run performs c.Runs independent online experiments. Each run creates
// a fresh environment with newEnv and a fresh agent seeded with
// c.Seed plus the run index.
func (c Config) Run(ctx context.Context,
	newEnv func() env.Environment) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}
	log := logger.OrDiscard(c.Logger).WithField("agent", c.Agent.Type())

	lengths := make([][]float64, c.Runs)
	runFunc := func(ctx context.Context, run int, seed uint64) ([]float64,
		error) {
		e := newEnv()
		a, err := c.Agent.CreateAgent(e, seed)
		if err != nil {
			return nil, err
		}

		reward := trackers.NewCumulativeReward("", c.Steps)
		episodes := trackers.NewEpisodeLength("")
		if err := NewOnline(e, a, c.Steps, c.Schedule, reward,
			episodes).Run(ctx); err != nil {
			return nil, err
		}

		lengths[run] = episodes.Data()
		return reward.Data(), nil
	}

	mean, err := Repeat(ctx, RepeatConfig{
		Runs:        c.Runs,
		Parallelism: c.Parallelism,
		Seed:        c.Seed,
		Length:      c.Steps,
		OnRunDone:   c.OnRunDone,
		Logger:      log,
	}, runFunc)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	if n := len(mean); n > 0 {
		log.WithField("reward", mean[n-1]).Info("experiments finished")
	}
	return Result{CumulativeReward: mean, EpisodeLengths: lengths}, nil
}
