package agent

import (
	"github.com/samuelfneumann/tabular/environment"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	QLearning   Type = "QLearning"
	DynaQ       Type = "DynaQ"
	DynaQPlus   Type = "DynaQ+"
	DynaQPlusV2 Type = "DynaQ+V2"
)

// Types returns all agent Types in a fixed order
func Types() []Type {
	return []Type{QLearning, DynaQ, DynaQPlus, DynaQPlusV2}
}

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}
