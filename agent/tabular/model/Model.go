// Package model implements a deterministic tabular model of an
// environment, learned from the most recent experience of each
// state-action pair, for use in planning
package model

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// ErrEmpty is returned when sampling from a model that holds no
// transitions
var ErrEmpty = errors.New("model holds no transitions")

// Key is a state-action pair
type Key struct {
	State, Action int
}

// Model stores the last observed reward and next state for each
// state-action pair. Pairs are kept in an explicit list, in the order
// in which they were first recorded, so that sampling is uniform over
// known pairs and reproducible for a given random source.
type Model struct {
	states, actions int
	rewards         []float64
	next            []int
	known           []bool
	keys            []Key
}

// New returns an empty Model
func New(states, actions int) *Model {
	if states <= 0 || actions <= 0 {
		panic(fmt.Sprintf("new: states and actions must be positive, got "+
			"(%v, %v)", states, actions))
	}

	return &Model{
		states:  states,
		actions: actions,
		rewards: make([]float64, states*actions),
		next:    make([]int, states*actions),
		known:   make([]bool, states*actions),
		keys:    make([]Key, 0, states*actions),
	}
}

// NewPrepopulated returns a Model in which every state-action pair
// transitions back to its own state with zero reward
func NewPrepopulated(states, actions int) *Model {
	m := New(states, actions)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			m.record(s, a, 0, s)
		}
	}
	return m
}

// Dims returns the number of states and actions of the model
func (m *Model) Dims() (states, actions int) {
	return m.states, m.actions
}

// Update overwrites the transition stored for (s, a)
func (m *Model) Update(s, a int, reward float64, next int) error {
	if err := m.check(s, a); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if next < 0 || next >= m.states {
		return fmt.Errorf("update: next state %v out of range [0, %v)",
			next, m.states)
	}

	m.record(s, a, reward, next)
	return nil
}

// Lookup returns the transition stored for (s, a) and whether one
// exists
func (m *Model) Lookup(s, a int) (reward float64, next int, ok bool) {
	if m.check(s, a) != nil {
		return 0, 0, false
	}
	i := s*m.actions + a
	return m.rewards[i], m.next[i], m.known[i]
}

// Sample draws a known state-action pair uniformly at random
func (m *Model) Sample(rng *rand.Rand) (Key, error) {
	if len(m.keys) == 0 {
		return Key{}, ErrEmpty
	}
	return m.keys[rng.Intn(len(m.keys))], nil
}

// Len returns the number of known state-action pairs
func (m *Model) Len() int {
	return len(m.keys)
}

func (m *Model) record(s, a int, reward float64, next int) {
	i := s*m.actions + a
	if !m.known[i] {
		m.known[i] = true
		m.keys = append(m.keys, Key{s, a})
	}
	m.rewards[i] = reward
	m.next[i] = next
}

func (m *Model) check(s, a int) error {
	if s < 0 || s >= m.states {
		return fmt.Errorf("state %v out of range [0, %v)", s, m.states)
	}
	if a < 0 || a >= m.actions {
		return fmt.Errorf("action %v out of range [0, %v)", a, m.actions)
	}
	return nil
}
