package dp

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment/carrental"
	"github.com/samuelfneumann/tabular/utils/logger"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Step records a single round of policy iteration: the policy that was
// evaluated, how its evaluation went, and whether the improvement that
// followed found it stable
type Step struct {
	Policy     *Policy
	Evaluation EvaluationResult
	Stable     bool
	Changed    int
}

// Result is the outcome of policy iteration
type Result struct {
	Policy *Policy
	Values *mat.Dense

	// History holds each round of policy iteration in order
	History []Step

	// Stable is true if policy iteration ended because the policy was
	// stable rather than because MaxPolicyIterations was reached
	Stable bool
}

// Iterate runs policy iteration on the problem described by m, starting
// from the zero value function and the policy that never moves cars
func Iterate(m *carrental.Model, c Config) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("iterate: %v", err)
	}
	log := logger.OrDiscard(c.Logger)

	n := m.Config().NumStates()
	values := mat.NewDense(n, n, nil)
	policy := NewPolicy(n)

	var result Result
	for round := 0; c.MaxPolicyIterations == 0 ||
		round < c.MaxPolicyIterations; round++ {
		eval, err := Evaluate(values, policy, m, c)
		if err != nil {
			return result, fmt.Errorf("iterate: round %d: %w", round, err)
		}

		improved, err := Improve(values, policy, m, c)
		if err != nil {
			return result, fmt.Errorf("iterate: round %d: %w", round, err)
		}

		step := Step{
			Policy:     policy,
			Evaluation: eval,
			Stable:     improved.Stable,
			Changed:    improved.Changed,
		}
		result.History = append(result.History, step)

		log.WithFields(logrus.Fields{
			"round":     round,
			"sweeps":    eval.Iterations,
			"delta":     eval.Delta,
			"converged": eval.Converged,
			"changed":   improved.Changed,
			"stable":    improved.Stable,
		}).Debug("policy iteration round")

		if c.OnIteration != nil {
			c.OnIteration(step)
		}

		policy = improved.Policy
		if improved.Stable {
			result.Stable = true
			break
		}
	}

	result.Policy = policy
	result.Values = values
	return result, nil
}
