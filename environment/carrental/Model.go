package carrental

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model caches the dynamics of a car rental problem so that rewards and
// transition probabilities can be looked up without re-evaluating the
// underlying distributions.
//
// Both quantities factor over the two locations given the number of
// cars at each location after the overnight move. For each location the
// Model stores the expected revenue and the distribution over the next
// number of cars for every post-move count. A location can hold up to
// MaxCars + MaxMoves cars after a move, since cars can be moved onto a
// full location.
type Model struct {
	config Config

	revenue     [2][]float64
	transitions [2]*mat.Dense // post-move cars × next cars
}

// NewModel creates and returns a new Model of the problem described by c
func NewModel(c Config) (*Model, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newModel: %v", err)
	}

	rows := c.MaxCars + c.MaxMoves + 1
	cols := c.NumStates()

	m := &Model{config: c}
	for loc := 0; loc < 2; loc++ {
		m.revenue[loc] = make([]float64, rows)
		m.transitions[loc] = mat.NewDense(rows, cols, nil)

		for cars := 0; cars < rows; cars++ {
			m.revenue[loc][cars] = expectedRevenue(cars, c.Requests[loc],
				c.RentalReward)

			for next := 0; next < cols; next++ {
				prob := locationTransition(cars, next, c.Returns[loc],
					c.Requests[loc], c.MaxCars)
				m.transitions[loc].Set(cars, next, prob)
			}
		}
	}

	return m, nil
}

// Config returns the configuration of the problem the Model describes
func (m *Model) Config() Config {
	return m.config
}

// Reward returns r(s, a). It returns the same value as ExpectedReward.
func (m *Model) Reward(s State, a Action) (float64, error) {
	cars1, cars2, err := m.config.move(s, a)
	if err != nil {
		return 0, fmt.Errorf("reward: %w", err)
	}

	revenue := m.revenue[0][cars1] + m.revenue[1][cars2]
	return revenue - m.config.movementCost(a) -
		m.config.parkingCost(cars1, cars2), nil
}

// Transition returns p(next | s, a). It returns the same value as
// TransitionProbability.
func (m *Model) Transition(next, s State, a Action) (float64, error) {
	if next.Cars1 < 0 || next.Cars2 < 0 || next.Cars1 > m.config.MaxCars ||
		next.Cars2 > m.config.MaxCars {
		return 0, fmt.Errorf("transition: next state %v: %w", next,
			ErrInvalidState)
	}

	cars1, cars2, err := m.config.move(s, a)
	if err != nil {
		return 0, fmt.Errorf("transition: %w", err)
	}

	return m.transitions[0].At(cars1, next.Cars1) *
		m.transitions[1].At(cars2, next.Cars2), nil
}

// ExpectedNext returns Σ_s' p(s' | s, a) V(s'), the expected value of
// the next state after taking action a in state s, where V is given by
// values with values.At(i, j) = V((i, j)).
//
// Since the locations are independent, the expectation is computed as
// p1ᵀ V p2, where p1 and p2 are the next-car distributions of each
// location.
func (m *Model) ExpectedNext(values mat.Matrix, s State, a Action) (float64,
	error) {
	r, c := values.Dims()
	if r != m.config.NumStates() || c != m.config.NumStates() {
		return 0, fmt.Errorf("expectedNext: values must be %[1]d × %[1]d, "+
			"have %d × %d", m.config.NumStates(), r, c)
	}

	cars1, cars2, err := m.config.move(s, a)
	if err != nil {
		return 0, fmt.Errorf("expectedNext: %w", err)
	}

	p1 := m.transitions[0].RowView(cars1)
	p2 := m.transitions[1].RowView(cars2)

	var vp2 mat.VecDense
	vp2.MulVec(values, p2)
	return mat.Dot(p1, &vp2), nil
}
