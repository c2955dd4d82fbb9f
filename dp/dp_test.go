package dp

import (
	"math"
	"testing"

	"github.com/samuelfneumann/tabular/environment/carrental"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func newModel(t testing.TB, modified bool) *carrental.Model {
	t.Helper()
	c := carrental.DefaultConfig([2]float64{3, 4}, [2]float64{3, 2},
		modified)
	m, err := carrental.NewModel(c)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func TestEvaluateZeroPolicy(t *testing.T) {
	m := newModel(t, false)
	n := m.Config().NumStates()

	c := DefaultConfig()
	c.Threshold = 1e-6

	values := mat.NewDense(n, n, nil)
	policy := NewPolicy(n)
	result, err := Evaluate(values, policy, m, c)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if !result.Converged || result.Iterations >= c.MaxIterations {
		t.Fatalf("evaluation did not converge: %+v", result)
	}
	if result.Delta >= c.Threshold {
		t.Errorf("delta = %v, want < %v", result.Delta, c.Threshold)
	}

	// Values must be a fixed point of the Bellman operator, bounded by
	// the maximum expected reward / (1 - γ)
	maxReward := 10 * (3.0 + 4.0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := carrental.State{Cars1: i, Cars2: j}
			v := values.At(i, j)
			if v <= 0 || v > maxReward/(1-c.Discount) {
				t.Errorf("V(%v) = %v out of range", s, v)
			}

			target, err := backup(values, m, s, 0, c.Discount)
			if err != nil {
				t.Fatalf("backup: %v", err)
			}
			if !scalar.EqualWithinAbs(v, target, 1e-4) {
				t.Errorf("V(%v) = %v, Bellman target = %v", s, v, target)
			}
		}
	}
}

// startValues returns a non-zero value function to sweep from
func startValues(n int) *mat.Dense {
	values := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			values.Set(i, j, float64(10*i-7*j))
		}
	}
	return values
}

// handSweep performs a single sweep of policy evaluation of the
// never-move policy starting from start. If inPlace is true, each
// backup reads the values already written earlier in the sweep,
// otherwise all backups read start.
func handSweep(t *testing.T, m *carrental.Model, start *mat.Dense,
	discount float64, inPlace bool) *mat.Dense {
	t.Helper()
	n, _ := start.Dims()
	out := mat.DenseCopyOf(start)

	read := mat.Matrix(start)
	if inPlace {
		read = out
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := carrental.State{Cars1: i, Cars2: j}
			r, err := m.Reward(s, 0)
			if err != nil {
				t.Fatalf("reward: %v", err)
			}
			next, err := m.ExpectedNext(read, s, 0)
			if err != nil {
				t.Fatalf("expectedNext: %v", err)
			}
			out.Set(i, j, r+discount*next)
		}
	}
	return out
}

func TestEvaluateSweepsInPlace(t *testing.T) {
	m := newModel(t, false)
	n := m.Config().NumStates()

	c := DefaultConfig()
	c.MaxIterations = 1
	c.Threshold = 1e-12

	start := startValues(n)
	values := mat.DenseCopyOf(start)
	result, err := Evaluate(values, NewPolicy(n), m, c)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Iterations != 1 {
		t.Fatalf("iterations = %d, want 1", result.Iterations)
	}

	inPlace := handSweep(t, m, start, c.Discount, true)
	if !mat.EqualApprox(values, inPlace, 1e-12) {
		t.Error("sweep does not match an in-place sweep")
	}

	buffered := handSweep(t, m, start, c.Discount, false)
	if mat.EqualApprox(values, buffered, 1e-6) {
		t.Error("sweep matches a double-buffered sweep")
	}

	// The first state is backed up before anything is overwritten
	if got, want := values.At(0, 0), buffered.At(0, 0); got != want {
		t.Errorf("V(0, 0) = %v, want %v", got, want)
	}

	delta := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			delta = math.Max(delta, math.Abs(start.At(i, j)-
				inPlace.At(i, j)))
		}
	}
	if !scalar.EqualWithinAbs(result.Delta, delta, 1e-12) {
		t.Errorf("sweep max delta = %v, want %v", result.Delta, delta)
	}
}

func TestEvaluateLastColumnDelta(t *testing.T) {
	m := newModel(t, false)
	n := m.Config().NumStates()

	c := DefaultConfig()
	c.MaxIterations = 1
	c.Threshold = 1e-12
	c.Delta = LastColumn

	start := startValues(n)
	values := mat.DenseCopyOf(start)
	result, err := Evaluate(values, NewPolicy(n), m, c)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want, sweepMax := 0.0, 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			change := math.Abs(start.At(i, j) - values.At(i, j))
			sweepMax = math.Max(sweepMax, change)
			if j == n-1 {
				want = math.Max(want, change)
			}
		}
	}

	if result.Delta != want {
		t.Errorf("last column delta = %v, want %v", result.Delta, want)
	}
	if result.Delta > sweepMax {
		t.Errorf("last column delta %v exceeds sweep max delta %v",
			result.Delta, sweepMax)
	}
}

func TestEvaluateLastColumnStopsNoLater(t *testing.T) {
	m := newModel(t, false)
	n := m.Config().NumStates()

	sweepMax := DefaultConfig()
	lastColumn := DefaultConfig()
	lastColumn.Delta = LastColumn

	v1 := mat.NewDense(n, n, nil)
	r1, err := Evaluate(v1, NewPolicy(n), m, sweepMax)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	v2 := mat.NewDense(n, n, nil)
	r2, err := Evaluate(v2, NewPolicy(n), m, lastColumn)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if r2.Iterations > r1.Iterations {
		t.Errorf("last column delta took %d sweeps, sweep max delta took %d",
			r2.Iterations, r1.Iterations)
	}
}

func TestEvaluateMaxIterations(t *testing.T) {
	m := newModel(t, false)
	n := m.Config().NumStates()

	c := DefaultConfig()
	c.MaxIterations = 2
	c.Threshold = 1e-12

	result, err := Evaluate(mat.NewDense(n, n, nil), NewPolicy(n), m, c)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Iterations != 2 || result.Converged {
		t.Errorf("result = %+v, want 2 unconverged sweeps", result)
	}
}

func TestEvaluateBadDims(t *testing.T) {
	m := newModel(t, false)
	if _, err := Evaluate(mat.NewDense(3, 3, nil), NewPolicy(21), m,
		DefaultConfig()); err == nil {
		t.Error("expected error for mismatched values")
	}
	if _, err := Improve(mat.NewDense(21, 21, nil), NewPolicy(4), m,
		DefaultConfig()); err == nil {
		t.Error("expected error for mismatched policy")
	}
}

func TestImproveIsGreedy(t *testing.T) {
	m := newModel(t, true)
	n := m.Config().NumStates()
	c := DefaultConfig()

	values := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			values.Set(i, j, float64(3*i+j))
		}
	}
	policy := NewPolicy(n)

	result, err := Improve(values, policy, m, c)
	if err != nil {
		t.Fatalf("improve: %v", err)
	}
	if !policy.Equal(NewPolicy(n)) {
		t.Error("improve modified its argument policy")
	}

	states := []carrental.State{{Cars1: 0, Cars2: 0}, {Cars1: 20, Cars2: 0}, {Cars1: 0, Cars2: 20}, {Cars1: 10, Cars2: 10}, {Cars1: 4, Cars2: 17}}
	for _, s := range states {
		best, bestQ := carrental.Action(0), math.Inf(-1)
		for _, a := range m.Config().Actions(s) {
			r, _ := carrental.ExpectedReward(s, a, m.Config())
			q := r
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					p, _ := carrental.TransitionProbability(
						carrental.State{Cars1: i, Cars2: j}, s, a, m.Config())
					q += c.Discount * p * values.At(i, j)
				}
			}
			if q > bestQ+1e-9 {
				best, bestQ = a, q
			}
		}

		if got := result.Policy.At(s); got != best {
			t.Errorf("π(%v) = %v, want %v", s, got, best)
		}
	}
}

func TestIterate(t *testing.T) {
	for _, modified := range []bool{false, true} {
		m := newModel(t, modified)
		n := m.Config().NumStates()
		c := DefaultConfig()

		rounds := 0
		c.OnIteration = func(Step) { rounds++ }

		result, err := Iterate(m, c)
		if err != nil {
			t.Fatalf("iterate: %v", err)
		}

		if !result.Stable {
			t.Errorf("modified = %v: policy iteration did not stabilise",
				modified)
		}
		if rounds != len(result.History) || rounds == 0 || rounds > 10 {
			t.Errorf("modified = %v: %d rounds, %d in history", modified,
				rounds, len(result.History))
		}
		if !result.History[0].Policy.Equal(NewPolicy(n)) {
			t.Errorf("modified = %v: first policy should never move cars",
				modified)
		}

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				s := carrental.State{Cars1: i, Cars2: j}
				a := int(result.Policy.At(s))
				if a > i || -a > j || a > 5 || a < -5 {
					t.Errorf("modified = %v: π(%v) = %v infeasible",
						modified, s, a)
				}
				if v := result.Values.At(i, j); math.IsNaN(v) ||
					math.IsInf(v, 0) {
					t.Errorf("V(%v) = %v not finite", s, v)
				}
			}
		}

		// The final policy must be greedy with respect to its values
		improved, err := Improve(result.Values, result.Policy, m, c)
		if err != nil {
			t.Fatalf("improve: %v", err)
		}
		if !improved.Stable {
			t.Errorf("modified = %v: final policy is not stable", modified)
		}
	}
}

func TestIterateRoundLimit(t *testing.T) {
	m := newModel(t, false)
	c := DefaultConfig()
	c.MaxPolicyIterations = 1

	result, err := Iterate(m, c)
	if err != nil {
		t.Fatalf("iterate: %v", err)
	}
	if len(result.History) != 1 {
		t.Errorf("history has %d rounds, want 1", len(result.History))
	}
	if result.Stable {
		t.Error("never moving cars should not be a stable policy")
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Discount = 1 },
		func(c *Config) { c.Discount = 0 },
		func(c *Config) { c.MaxIterations = 0 },
		func(c *Config) { c.Threshold = 0 },
		func(c *Config) { c.MaxPolicyIterations = -1 },
		func(c *Config) { c.Delta = DeltaMode(7) },
	}

	for i, modify := range bad {
		c := DefaultConfig()
		modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("config %d: expected validation error", i)
		}
	}
}

func BenchmarkEvaluationSweep(b *testing.B) {
	m := newModel(b, false)
	n := m.Config().NumStates()
	c := DefaultConfig()
	c.MaxIterations = 1

	values := mat.NewDense(n, n, nil)
	policy := NewPolicy(n)
	for i := 0; i < b.N; i++ {
		Evaluate(values, policy, m, c)
	}
}
