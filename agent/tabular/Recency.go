package tabular

// Recency counts, for each state-action pair, the number of real time
// steps since the pair was last taken. Pairs that were never taken
// count the steps since the table was created.
type Recency struct {
	actions int
	steps   []float64
}

// NewRecency returns a new Recency table with all counts at zero
func NewRecency(states, actions int) *Recency {
	return &Recency{actions: actions, steps: make([]float64, states*actions)}
}

// At returns the number of steps since (s, a) was last taken
func (r *Recency) At(s, a int) float64 {
	return r.steps[s*r.actions+a]
}

// Advance records that a real time step passed on which a was taken
// in s
func (r *Recency) Advance(s, a int) {
	for i := range r.steps {
		r.steps[i]++
	}
	r.steps[s*r.actions+a] = 0
}
