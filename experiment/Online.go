package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Online is an Experiment that runs an agent online for a fixed number
// of timesteps. The environment is never reset by the experiment, so
// the learned state of the agent persists for the whole run.
type Online struct {
	env.Environment
	agent.Agent
	steps    int
	schedule Schedule
	trackers []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, the schedule determines
// the layout of the environment on each timestep and t determines
// what data is tracked.
func NewOnline(e env.Environment, a agent.Agent, steps int,
	schedule Schedule, t ...trackers.Tracker) *Online {
	return &Online{e, a, steps, schedule, t}
}

// Register registers a Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Run runs the experiment for all timesteps. Timestep t, counting from
// zero, is taken with layout schedule(t) and is tracked with Number
// t+1. The initial First timestep is not tracked. The context is
// checked before each timestep, and its error is returned once it is
// done.
func (o *Online) Run(ctx context.Context) error {
	step := ts.New(ts.First, 0, o.Environment.Start(), 0)
	if err := o.Agent.ObserveFirst(step); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	for t := 0; t < o.steps; t++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run: step %d: %w", t, err)
		}

		action, err := o.Agent.SelectAction(step)
		if err != nil {
			return fmt.Errorf("run: step %d: %w", t, err)
		}

		next, err := o.Environment.Step(step.Observation, action,
			o.schedule(t))
		if err != nil {
			return fmt.Errorf("run: step %d: %w", t, err)
		}
		next.Number = t + 1
		o.track(next)

		if err := o.Agent.Observe(action, next); err != nil {
			return fmt.Errorf("run: step %d: %w", t, err)
		}
		if err := o.Agent.Step(); err != nil {
			return fmt.Errorf("run: step %d: %w", t, err)
		}
		step = next
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
