// Package tabular implements dense tables indexed by discrete states
// and actions, shared by tabular policies and learners
package tabular

import (
	"gonum.org/v1/gonum/floats"
)

// QTable stores one action value per state-action pair. All values
// start at zero.
type QTable struct {
	states, actions int
	values          []float64
}

// NewQTable returns a new zero-initialized QTable
func NewQTable(states, actions int) *QTable {
	return &QTable{
		states:  states,
		actions: actions,
		values:  make([]float64, states*actions),
	}
}

// Dims returns the number of states and actions of the table
func (q *QTable) Dims() (states, actions int) {
	return q.states, q.actions
}

// At returns Q(s, a)
func (q *QTable) At(s, a int) float64 {
	return q.values[s*q.actions+a]
}

// Set sets Q(s, a)
func (q *QTable) Set(s, a int, v float64) {
	q.values[s*q.actions+a] = v
}

// Row returns the action values of state s. The returned slice shares
// memory with the table.
func (q *QTable) Row(s int) []float64 {
	return q.values[s*q.actions : (s+1)*q.actions]
}

// Max returns max_a Q(s, a)
func (q *QTable) Max(s int) float64 {
	return floats.Max(q.Row(s))
}

// Update moves Q(s, a) towards the one-step Q-learning target:
//
//	Q(s, a) += α (r + γ max_a' Q(s', a') - Q(s, a))
//
// and returns the TD error.
func (q *QTable) Update(s, a int, r float64, next int, α, γ float64) float64 {
	i := s*q.actions + a
	tdError := r + γ*q.Max(next) - q.values[i]
	q.values[i] += α * tdError
	return tdError
}

// Equal returns whether two tables hold exactly the same values
func (q *QTable) Equal(other *QTable) bool {
	if q.states != other.states || q.actions != other.actions {
		return false
	}
	for i := range q.values {
		if q.values[i] != other.values[i] {
			return false
		}
	}
	return true
}
