// Package environment outlines the interfaces and structs needed to
// implement concrete discrete environments
package environment

import (
	"github.com/samuelfneumann/tabular/timestep"
)

// Layout selects one of several fixed configurations of an environment's
// dynamics. Environments do not track time; a caller that wants the
// dynamics to change over an experiment passes a different Layout on
// different steps.
type Layout int

// Environment implements a simulated environment with a finite number
// of states and actions. States and actions are identified by their
// flat indices in [0, ObservationSpec().N) and [0, ActionSpec().N).
type Environment interface {
	// Start returns the starting state
	Start() int

	// Step takes action in state under the given layout and returns
	// the resulting TimeStep. The TimeStep's Number is left at zero;
	// callers number their own steps.
	Step(state, action int, layout Layout) (timestep.TimeStep, error)

	ObservationSpec() Spec
	ActionSpec() Spec
}
