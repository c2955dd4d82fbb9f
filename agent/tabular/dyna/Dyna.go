// Package dyna implements tabular Q-learning and the Dyna family of
// model-based agents built on it.
//
// All variants share the same one-step update of the action values
// from real experience. Dyna agents additionally record each real
// transition in a learned model and, after each real step, perform a
// number of planning updates on transitions sampled from that model.
//
//	QLearning:    ε-greedy, no model
//	DynaQ:        ε-greedy, model of experienced pairs
//	DynaQPlus:    ε-greedy, prepopulated model, κ√τ added to the
//	              modelled reward during planning
//	DynaQPlusV2:  greedy on Q + κ√τ, prepopulated model
//
// where τ(s, a) is the number of real steps since a was last taken in s.
package dyna

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/agent/tabular/model"
	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/logger"
)

// Agent implements tabular Q-learning, Dyna-Q, Dyna-Q+ and the Dyna-Q+
// variant that uses the exploration bonus for action selection
type Agent struct {
	agent.Policy
	config Config

	q       *tabular.QTable
	model   *model.Model     // nil for QLearning
	recency *tabular.Recency // nil unless a bonus variant
	rng     *rand.Rand
	log     logrus.FieldLogger

	state    int
	observed bool
}

// New creates a new Agent for env. A single random source seeded with
// seed is shared by action selection and planning.
func New(env environment.Environment, c Config, seed uint64) (*Agent,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	obsSpec := env.ObservationSpec()
	actSpec := env.ActionSpec()
	if obsSpec.Cardinality != environment.Discrete ||
		actSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: tabular agents require discrete " +
			"observations and actions")
	}
	states, actions := obsSpec.N, actSpec.N

	rng := rand.New(rand.NewSource(seed))
	q := tabular.NewQTable(states, actions)

	a := &Agent{
		config: c,
		q:      q,
		rng:    rng,
		log:    logger.OrDiscard(c.Logger),
	}

	switch c.Variant {
	case agent.DynaQ:
		a.model = model.New(states, actions)
	case agent.DynaQPlus, agent.DynaQPlusV2:
		a.model = model.NewPrepopulated(states, actions)
	}
	if c.tracksRecency() {
		a.recency = tabular.NewRecency(states, actions)
	}

	var err error
	if c.Variant == agent.DynaQPlusV2 {
		a.Policy, err = policy.NewBonus(q, a.recency, c.Kappa, rng)
	} else {
		a.Policy, err = policy.NewEGreedy(q, c.Epsilon, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"variant":  c.Variant,
		"states":   states,
		"actions":  actions,
		"planning": c.PlanningSteps,
		"seed":     seed,
	}).Debug("created agent")

	return a, nil
}

// ObserveFirst records the first timestep of an experiment
func (a *Agent) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		a.log.Warnf("observeFirst: timestep is %v rather than First",
			t.StepType)
	}
	a.state = t.Observation
	a.observed = true
	return nil
}

// Observe performs the update for a real transition: the action value
// of the previous state and action moves towards the one-step target,
// the model records the transition and the recency counters advance.
func (a *Agent) Observe(action int, next ts.TimeStep) error {
	if !a.observed {
		return fmt.Errorf("observe: ObserveFirst must be called first")
	}

	s := a.state
	a.q.Update(s, action, next.Reward, next.Observation,
		a.config.LearningRate, a.config.Discount)

	if a.model != nil {
		err := a.model.Update(s, action, next.Reward, next.Observation)
		if err != nil {
			return fmt.Errorf("observe: %w", err)
		}
	}
	if a.recency != nil {
		a.recency.Advance(s, action)
	}

	a.state = next.Observation
	return nil
}

// Step performs the planning updates. The model is only read.
func (a *Agent) Step() error {
	if a.model == nil || a.model.Len() == 0 {
		return nil
	}

	for i := 0; i < a.config.PlanningSteps; i++ {
		key, err := a.model.Sample(a.rng)
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		reward, next, _ := a.model.Lookup(key.State, key.Action)

		if a.config.plansWithBonus() {
			τ := a.recency.At(key.State, key.Action)
			reward += a.config.Kappa * math.Sqrt(τ)
		}

		a.q.Update(key.State, key.Action, reward, next,
			a.config.LearningRate, a.config.Discount)
	}
	return nil
}

// QTable returns the action values of the agent. The table is shared.
func (a *Agent) QTable() *tabular.QTable {
	return a.q
}

// Model returns the learned model of the agent, or nil for QLearning
func (a *Agent) Model() *model.Model {
	return a.model
}

// Recency returns the time-since-last-taken counters of the agent, or
// nil if the variant does not use them
func (a *Agent) Recency() *tabular.Recency {
	return a.recency
}
