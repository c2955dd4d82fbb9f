// Package policy implements action selection over tabular action
// values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/floatutils"
)

// EGreedy implements an ε-greedy policy over a QTable. With
// probability ε an action is selected uniformly at random, otherwise
// a greedy action is selected with ties broken uniformly at random.
type EGreedy struct {
	q       *tabular.QTable
	epsilon float64
	rng     *rand.Rand
}

// NewEGreedy returns a new EGreedy policy. The QTable is shared, not
// copied, so that the policy follows updates made by a learner. The
// rng is shared with the caller as well.
func NewEGreedy(q *tabular.QTable, ε float64, rng *rand.Rand) (*EGreedy, error) {
	if ε < 0 || ε > 1 {
		return nil, fmt.Errorf("newEGreedy: ε must be in [0, 1]")
	}
	return &EGreedy{q: q, epsilon: ε, rng: rng}, nil
}

// SelectAction selects an action for the observation of t
func (p *EGreedy) SelectAction(t timestep.TimeStep) (int, error) {
	states, actions := p.q.Dims()
	if err := checkState(t.Observation, states); err != nil {
		return 0, err
	}

	if p.rng.Float64() < p.epsilon {
		return p.rng.Intn(actions), nil
	}
	return argMax(p.q.Row(t.Observation), p.rng), nil
}

// argMax returns an index of the maximum value in values, breaking
// ties uniformly at random
func argMax(values []float64, rng *rand.Rand) int {
	_, indices := floatutils.MaxSlice(values)
	if len(indices) == 1 {
		return indices[0]
	}
	return indices[rng.Intn(len(indices))]
}

func checkState(s, states int) error {
	if s < 0 || s >= states {
		return fmt.Errorf("selectAction: state %v out of range [0, %v)", s,
			states)
	}
	return nil
}
