package dp

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/tabular/environment/carrental"
	"gonum.org/v1/gonum/mat"
)

// Policy is a deterministic policy over an n × n grid of car rental
// states
type Policy struct {
	n       int
	actions []carrental.Action
}

// NewPolicy returns a new Policy over an n × n grid of states that
// takes action 0 in every state
func NewPolicy(n int) *Policy {
	return &Policy{n: n, actions: make([]carrental.Action, n*n)}
}

// Dims returns the dimensions of the grid of states
func (p *Policy) Dims() (r, c int) {
	return p.n, p.n
}

// At returns the action taken in state s
func (p *Policy) At(s carrental.State) carrental.Action {
	return p.actions[s.Cars1*p.n+s.Cars2]
}

// Set sets the action taken in state s
func (p *Policy) Set(s carrental.State, a carrental.Action) {
	p.actions[s.Cars1*p.n+s.Cars2] = a
}

// Clone returns a copy of the Policy
func (p *Policy) Clone() *Policy {
	actions := make([]carrental.Action, len(p.actions))
	copy(actions, p.actions)
	return &Policy{n: p.n, actions: actions}
}

// Equal returns whether two policies take the same action in every
// state
func (p *Policy) Equal(other *Policy) bool {
	if p.n != other.n {
		return false
	}
	for i := range p.actions {
		if p.actions[i] != other.actions[i] {
			return false
		}
	}
	return true
}

// Dense returns the policy as a matrix with element (i, j) the action
// taken in state (i, j)
func (p *Policy) Dense() *mat.Dense {
	data := make([]float64, len(p.actions))
	for i, a := range p.actions {
		data[i] = float64(a)
	}
	return mat.NewDense(p.n, p.n, data)
}

func (p *Policy) String() string {
	var b strings.Builder
	for i := p.n - 1; i >= 0; i-- {
		for j := 0; j < p.n; j++ {
			fmt.Fprintf(&b, "%3d", p.actions[i*p.n+j])
		}
		b.WriteString("\n")
	}
	return b.String()
}
