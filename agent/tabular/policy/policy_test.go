package policy

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
)

const draws = 2000

func step(s int) ts.TimeStep {
	return ts.New(ts.Mid, 0, s, 0)
}

func TestEGreedyGreedy(t *testing.T) {
	q := tabular.NewQTable(2, 4)
	q.Set(1, 2, 1)

	p, err := NewEGreedy(q, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		a, err := p.SelectAction(step(1))
		if err != nil {
			t.Fatal(err)
		}
		if a != 2 {
			t.Fatalf("selected action %v, want 2", a)
		}
	}
}

// Greedy ties and ε = 1 must both reach every action
func TestEGreedyCoversActions(t *testing.T) {
	for _, ε := range []float64{0, 1} {
		q := tabular.NewQTable(1, 4)
		if ε == 1 {
			q.Set(0, 3, 5)
		}

		p, err := NewEGreedy(q, ε, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatal(err)
		}

		counts := make([]int, 4)
		for i := 0; i < draws; i++ {
			a, err := p.SelectAction(step(0))
			if err != nil {
				t.Fatal(err)
			}
			counts[a]++
		}
		for a, c := range counts {
			if c < draws/8 {
				t.Errorf("ε = %v: action %v chosen %d of %d times", ε, a, c,
					draws)
			}
		}
	}
}

func TestEGreedyErrors(t *testing.T) {
	q := tabular.NewQTable(2, 4)
	rng := rand.New(rand.NewSource(1))

	if _, err := NewEGreedy(q, 1.5, rng); err == nil {
		t.Error("expected an error for ε > 1")
	}

	p, _ := NewEGreedy(q, 0.1, rng)
	for _, s := range []int{-1, 2} {
		if _, err := p.SelectAction(step(s)); err == nil {
			t.Errorf("expected an error for state %v", s)
		}
	}
}

func TestBonusPrefersStaleActions(t *testing.T) {
	q := tabular.NewQTable(1, 4)
	r := tabular.NewRecency(1, 4)
	for i := 0; i < 3; i++ {
		r.Advance(0, 0)
	}
	q.Set(0, 0, 1)

	p, err := NewBonus(q, r, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	// Q(0, 0) + 0 = 1 < 0 + √3
	for i := 0; i < 100; i++ {
		a, err := p.SelectAction(step(0))
		if err != nil {
			t.Fatal(err)
		}
		if a == 0 {
			t.Fatal("selected the recently taken action")
		}
	}
}

func TestBonusWithoutKappaIsGreedy(t *testing.T) {
	q := tabular.NewQTable(1, 4)
	r := tabular.NewRecency(1, 4)
	r.Advance(0, 1)
	q.Set(0, 1, 0.5)

	p, err := NewBonus(q, r, 0, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := p.SelectAction(step(0)); a != 1 {
		t.Errorf("selected action %v, want 1", a)
	}

	if _, err := NewBonus(q, r, -1, nil); err == nil {
		t.Error("expected an error for negative κ")
	}
}
