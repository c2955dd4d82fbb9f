package dp

import (
	"errors"
	"fmt"
	"math"

	"github.com/samuelfneumann/tabular/environment/carrental"
	"github.com/samuelfneumann/tabular/utils/logger"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// ErrNotFinite is returned when a value estimate becomes infinite or NaN
var ErrNotFinite = errors.New("value not finite")

// EvaluationResult describes a run of policy evaluation
type EvaluationResult struct {
	Iterations int     // Number of sweeps performed
	Delta      float64 // Change in value measured on the last sweep
	Converged  bool    // Whether Delta dropped below the threshold
}

// Evaluate performs policy evaluation of policy, updating values in
// place until the change in values over a sweep drops below the
// configured threshold or the maximum number of sweeps is reached.
//
// Each sweep visits states in row-major order and immediately
// overwrites each state's value, so later states in a sweep are backed
// up using values already updated earlier in the same sweep.
func Evaluate(values *mat.Dense, policy *Policy, m *carrental.Model,
	c Config) (EvaluationResult, error) {
	if err := c.Validate(); err != nil {
		return EvaluationResult{}, fmt.Errorf("evaluate: %v", err)
	}
	if err := checkDims(values, policy, m); err != nil {
		return EvaluationResult{}, fmt.Errorf("evaluate: %v", err)
	}
	log := logger.OrDiscard(c.Logger)

	n, _ := values.Dims()
	var result EvaluationResult
	for iter := 0; iter < c.MaxIterations; iter++ {
		delta := 0.0

		for i := 0; i < n; i++ {
			var change float64
			for j := 0; j < n; j++ {
				s := carrental.State{Cars1: i, Cars2: j}
				old := values.At(i, j)

				v, err := backup(values, m, s, policy.At(s), c.Discount)
				if err != nil {
					return result, fmt.Errorf("evaluate: %w", err)
				}
				values.Set(i, j, v)

				change = math.Abs(old - v)
				if c.Delta == SweepMax {
					delta = math.Max(delta, change)
				}
			}
			if c.Delta == LastColumn {
				delta = math.Max(delta, change)
			}
		}

		result.Iterations = iter + 1
		result.Delta = delta

		log.WithFields(logrus.Fields{
			"sweep": result.Iterations,
			"delta": delta,
		}).Trace("policy evaluation sweep")

		if delta < c.Threshold {
			result.Converged = true
			break
		}
	}

	return result, nil
}

// backup returns r(s, a) + γ Σ_s' p(s' | s, a) V(s')
func backup(values mat.Matrix, m *carrental.Model, s carrental.State,
	a carrental.Action, discount float64) (float64, error) {
	r, err := m.Reward(s, a)
	if err != nil {
		return 0, err
	}
	next, err := m.ExpectedNext(values, s, a)
	if err != nil {
		return 0, err
	}

	v := r + discount*next
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("backup of state %v: %w", s, ErrNotFinite)
	}
	return v, nil
}

// checkDims ensures that values and policy cover the state space of m
func checkDims(values mat.Matrix, policy *Policy, m *carrental.Model) error {
	n := m.Config().NumStates()
	if r, c := values.Dims(); r != n || c != n {
		return fmt.Errorf("values must be %[1]d × %[1]d, have %d × %d", n,
			r, c)
	}
	if r, c := policy.Dims(); r != n || c != n {
		return fmt.Errorf("policy must be %[1]d × %[1]d, have %d × %d", n,
			r, c)
	}
	return nil
}
