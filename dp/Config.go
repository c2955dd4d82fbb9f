// Package dp implements policy iteration for Jack's car rental problem.
//
// Policy iteration alternates between policy evaluation, which computes
// the state-value function of a fixed deterministic policy by repeated
// in-place sweeps over the state space, and policy improvement, which
// makes the policy greedy with respect to that value function. The
// process stops once improvement no longer increases the value of any
// state by more than a threshold.
package dp

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DeltaMode determines how the change in the value function over an
// evaluation sweep is measured
type DeltaMode int

const (
	// SweepMax measures the largest change of any state in the sweep
	SweepMax DeltaMode = iota

	// LastColumn measures, for each row of states (fixed number of cars
	// at location 1), only the change of the last state updated in that
	// row and takes the largest of these. It gives a weaker convergence
	// signal than SweepMax and is kept to reproduce published results.
	LastColumn
)

func (d DeltaMode) String() string {
	switch d {
	case SweepMax:
		return "SweepMax"
	case LastColumn:
		return "LastColumn"
	}
	return fmt.Sprintf("DeltaMode(%d)", int(d))
}

// Config represents a configuration of policy iteration
type Config struct {
	Discount float64

	// MaxIterations is the maximum number of sweeps of a single policy
	// evaluation
	MaxIterations int

	// Threshold is the change in value below which policy evaluation
	// stops, and the improvement in value below which a policy is
	// considered stable
	Threshold float64

	// MaxPolicyIterations limits the number of evaluation/improvement
	// rounds. Zero means no limit.
	MaxPolicyIterations int

	Delta DeltaMode

	// OnIteration, if non-nil, is called after each round of policy
	// iteration
	OnIteration func(Step)

	Logger logrus.FieldLogger
}

// DefaultConfig returns a default configuration for policy iteration
func DefaultConfig() Config {
	return Config{
		Discount:      0.9,
		MaxIterations: 1000,
		Threshold:     1e-2,
		Delta:         SweepMax,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Discount <= 0 || c.Discount >= 1 {
		return fmt.Errorf("validate: discount must be in (0, 1), have %v",
			c.Discount)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("validate: max iterations must be > 0")
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("validate: threshold must be > 0")
	}
	if c.MaxPolicyIterations < 0 {
		return fmt.Errorf("validate: max policy iterations cannot be " +
			"negative")
	}
	if c.Delta != SweepMax && c.Delta != LastColumn {
		return fmt.Errorf("validate: no such delta mode %v", c.Delta)
	}
	return nil
}
