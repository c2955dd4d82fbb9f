package dp

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/tabular/environment/carrental"
	"gonum.org/v1/gonum/mat"
)

// ImprovementResult describes a round of policy improvement
type ImprovementResult struct {
	Policy *Policy

	// Stable is true if in no state the greedy action improved on the
	// state's value by more than the threshold
	Stable bool

	// Changed is the number of states whose action changed
	Changed int
}

// Improve returns the policy that is greedy with respect to values.
// Actions are scanned in ascending order and the first maximising
// action is kept, so ties are broken towards moving cars from location
// 2 to location 1. The argument policy is not modified.
func Improve(values mat.Matrix, policy *Policy, m *carrental.Model,
	c Config) (ImprovementResult, error) {
	if err := c.Validate(); err != nil {
		return ImprovementResult{}, fmt.Errorf("improve: %v", err)
	}
	if err := checkDims(values, policy, m); err != nil {
		return ImprovementResult{}, fmt.Errorf("improve: %v", err)
	}

	n, _ := values.Dims()
	result := ImprovementResult{Policy: policy.Clone(), Stable: true}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := carrental.State{Cars1: i, Cars2: j}

			action, value, err := greedy(values, m, s, c.Discount)
			if err != nil {
				return ImprovementResult{}, fmt.Errorf("improve: %w", err)
			}

			if action != policy.At(s) {
				result.Changed++
			}
			result.Policy.Set(s, action)

			if value > values.At(i, j)+c.Threshold {
				result.Stable = false
			}
		}
	}

	return result, nil
}

// greedy returns the action of maximum value in state s and its value
func greedy(values mat.Matrix, m *carrental.Model, s carrental.State,
	discount float64) (carrental.Action, float64, error) {
	var maxAction carrental.Action
	maxValue := math.Inf(-1)

	for _, a := range m.Config().Actions(s) {
		q, err := backup(values, m, s, a, discount)
		if err != nil {
			return 0, 0, err
		}
		if q > maxValue {
			maxAction = a
			maxValue = q
		}
	}
	return maxAction, maxValue, nil
}
