// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/tabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// ObserveFirst records the first timestep of an experiment
	ObserveFirst(timestep.TimeStep) error

	// Observe records that an action lead to some timestep and
	// performs any update that uses that real transition
	Observe(action int, nextObs timestep.TimeStep) error

	// Step performs any updates that do not need a new transition,
	// such as planning with a learned model
	Step() error
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should have pointers to the same action values so
// that any changes the learner makes are reflected in the actions the
// Policy chooses
type Policy interface {
	SelectAction(t timestep.TimeStep) (int, error)
}
