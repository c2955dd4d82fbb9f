package environment

import (
	"fmt"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation.
type SpecType int

const (
	Action SpecType = iota
	Observation
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	default:
		return "Observation"
	}
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape and number of values of an action or observation.
//
// Shape gives the size of each dimension of the underlying grid, and
// N is the product of the shape, the number of flat indices.
type Spec struct {
	Shape []int
	Type  SpecType
	N     int
	Cardinality
}

// NewSpec constructs a new discrete environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.).
func NewSpec(shape []int, t SpecType) Spec {
	n := 1
	for _, dim := range shape {
		if dim <= 0 {
			panic(fmt.Sprintf("shape dimensions must be positive, have %v",
				shape))
		}
		n *= dim
	}
	return Spec{shape, t, n, Discrete}
}
