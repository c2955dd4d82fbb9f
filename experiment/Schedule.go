package experiment

import (
	env "github.com/samuelfneumann/tabular/environment"
)

// Schedule returns the environment layout to use on timestep t,
// counting from zero
type Schedule func(t int) env.Layout

// Fixed returns a Schedule which always uses layout l
func Fixed(l env.Layout) Schedule {
	return func(int) env.Layout { return l }
}

// SwitchAt returns a Schedule which uses layout before on timesteps
// t < at and layout after from timestep at onwards
func SwitchAt(at int, before, after env.Layout) Schedule {
	return func(t int) env.Layout {
		if t < at {
			return before
		}
		return after
	}
}
