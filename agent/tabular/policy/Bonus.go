package policy

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/timestep"
)

// Bonus implements greedy action selection over exploration-augmented
// action values:
//
//	Q(s, a) + κ √τ(s, a)
//
// where τ(s, a) is the number of time steps since a was last taken in
// s. Ties are broken uniformly at random.
type Bonus struct {
	q       *tabular.QTable
	recency *tabular.Recency
	kappa   float64
	rng     *rand.Rand

	augmented []float64
}

// NewBonus returns a new Bonus policy sharing q and recency with the
// caller
func NewBonus(q *tabular.QTable, recency *tabular.Recency, κ float64,
	rng *rand.Rand) (*Bonus, error) {
	if κ < 0 {
		return nil, fmt.Errorf("newBonus: κ must be non-negative")
	}
	_, actions := q.Dims()

	return &Bonus{
		q:         q,
		recency:   recency,
		kappa:     κ,
		rng:       rng,
		augmented: make([]float64, actions),
	}, nil
}

// SelectAction selects an action for the observation of t
func (p *Bonus) SelectAction(t timestep.TimeStep) (int, error) {
	states, _ := p.q.Dims()
	s := t.Observation
	if err := checkState(s, states); err != nil {
		return 0, err
	}

	for a, v := range p.q.Row(s) {
		p.augmented[a] = v + p.kappa*math.Sqrt(p.recency.At(s, a))
	}
	return argMax(p.augmented, p.rng), nil
}
