package dyna

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
)

// ErrUnknownVariant is returned when a Config names an agent Type that
// this package cannot construct
var ErrUnknownVariant = errors.New("unknown agent variant")

// Config represents a configuration for a tabular Q-learning or Dyna
// agent. Kappa is only used by the DynaQPlus and DynaQPlusV2 variants.
type Config struct {
	Variant       agent.Type
	Epsilon       float64 // ε for the ε-greedy behaviour policy
	LearningRate  float64
	Discount      float64
	PlanningSteps int
	Kappa         float64

	Logger logrus.FieldLogger `json:"-" mapstructure:"-"`
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	a, err := New(env, c, seed)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	switch c.Variant {
	case agent.QLearning, agent.DynaQ, agent.DynaQPlus, agent.DynaQPlusV2:
	default:
		return fmt.Errorf("validate: %q: %w", c.Variant, ErrUnknownVariant)
	}

	if c.Variant != agent.DynaQPlusV2 && (c.Epsilon < 0 || c.Epsilon > 1) {
		return fmt.Errorf("validate: ε must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.PlanningSteps < 0 {
		return fmt.Errorf("validate: planning steps must be non-negative, "+
			"got %v", c.PlanningSteps)
	}
	if c.Variant == agent.QLearning && c.PlanningSteps != 0 {
		return fmt.Errorf("validate: QLearning does not plan, got %v "+
			"planning steps", c.PlanningSteps)
	}
	if c.Kappa < 0 {
		return fmt.Errorf("validate: κ must be non-negative, got %v", c.Kappa)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return c.Variant
}

// plansWithBonus returns whether the exploration bonus is added to the
// modelled reward during planning
func (c Config) plansWithBonus() bool {
	return c.Variant == agent.DynaQPlus
}

// tracksRecency returns whether the agent needs time-since-last-taken
// counters
func (c Config) tracksRecency() bool {
	return c.Variant == agent.DynaQPlus || c.Variant == agent.DynaQPlusV2
}
