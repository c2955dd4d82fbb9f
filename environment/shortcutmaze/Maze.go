// Package shortcutmaze implements the shortcut maze, a 9 × 6 gridworld
// whose wall shortens part way through an experiment, opening a shorter
// path to the goal.
//
// The agent starts at (3, 0) below a wall along row 2 and must reach the
// goal at (8, 5). At first the wall spans columns 1 through 8 so that the
// only way around it is on the left. Once the wall shrinks to columns 1
// through 7, a shortcut opens on the right.
package shortcutmaze

import (
	"errors"
	"fmt"

	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Dimensions of the maze
const (
	Width  int = 9
	Height int = 6
)

// GoalReward is the reward for reaching the goal. All other transitions
// have zero reward.
const GoalReward float64 = 1.0

var (
	// ErrInvalidAction is returned when an action is not one of the
	// four movement actions
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidState is returned when a state lies outside the maze
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidLayout is returned when a layout is neither FirstWall
	// nor SecondWall
	ErrInvalidLayout = errors.New("invalid layout")
)

// Layouts of the maze
const (
	FirstWall env.Layout = iota
	SecondWall
)

// State is a cell of the maze
type State struct {
	X, Y int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.X, s.Y)
}

// Start and goal states
var (
	StartState = State{3, 0}
	GoalState  = State{8, 5}
)

// Action is a movement in one of the four cardinal directions
type Action int

const (
	Up Action = iota
	Down
	Right
	Left
)

// NumActions is the number of actions available in each state
const NumActions int = 4

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Right:
		return "Right"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// displacement returns the change in coordinates caused by an action
func (a Action) displacement() (dx, dy int, err error) {
	switch a {
	case Up:
		return 0, 1, nil
	case Down:
		return 0, -1, nil
	case Right:
		return 1, 0, nil
	case Left:
		return -1, 0, nil
	}
	return 0, 0, fmt.Errorf("action %d: %w", int(a), ErrInvalidAction)
}

// Maze is the shortcut maze. It holds no mutable state; the caller
// tracks the agent's position and chooses the wall on each step.
type Maze struct {
	firstWall  [Width][Height]bool
	secondWall [Width][Height]bool
}

// New returns a new shortcut maze
func New() *Maze {
	m := &Maze{}
	for x := 1; x <= 8; x++ {
		m.firstWall[x][2] = true
	}
	for x := 1; x <= 7; x++ {
		m.secondWall[x][2] = true
	}
	return m
}

// WallStates returns the cells blocked by the first or second wall
func (m *Maze) WallStates(firstWallActive bool) []State {
	walls := &m.secondWall
	if firstWallActive {
		walls = &m.firstWall
	}

	var states []State
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if walls[x][y] {
				states = append(states, State{x, y})
			}
		}
	}
	return states
}

// Valid returns whether the agent can occupy state s, that is whether s
// is inside the maze and not blocked by the active wall
func (m *Maze) Valid(s State, firstWallActive bool) bool {
	if !inBounds(s) {
		return false
	}
	if firstWallActive {
		return !m.firstWall[s.X][s.Y]
	}
	return !m.secondWall[s.X][s.Y]
}

// Take takes action a in state s and returns the reward and next state.
// Moves out of the maze or into the active wall leave the agent where it
// is. Reaching the goal gives GoalReward and returns the agent to the
// start state.
func (m *Maze) Take(s State, a Action, firstWallActive bool) (float64, State,
	error) {
	if !inBounds(s) {
		return 0, s, fmt.Errorf("take: state %v: %w", s, ErrInvalidState)
	}
	dx, dy, err := a.displacement()
	if err != nil {
		return 0, s, fmt.Errorf("take: %w", err)
	}

	next := State{s.X + dx, s.Y + dy}
	if !m.Valid(next, firstWallActive) {
		next = s
	}

	if next == GoalState {
		return GoalReward, StartState, nil
	}
	return 0, next, nil
}

// Start implements the environment.Environment interface
func (m *Maze) Start() int {
	return Index(StartState)
}

// Step implements the environment.Environment interface. The returned
// TimeStep is Last if the goal was reached on this step.
func (m *Maze) Step(state, action int, layout env.Layout) (ts.TimeStep,
	error) {
	var firstWallActive bool
	switch layout {
	case FirstWall:
		firstWallActive = true
	case SecondWall:
		firstWallActive = false
	default:
		return ts.TimeStep{}, fmt.Errorf("step: layout %d: %w", layout,
			ErrInvalidLayout)
	}

	if state < 0 || state >= Width*Height {
		return ts.TimeStep{}, fmt.Errorf("step: state index %d: %w", state,
			ErrInvalidState)
	}

	reward, next, err := m.Take(StateAt(state), Action(action),
		firstWallActive)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("step: %w", err)
	}

	stepType := ts.Mid
	if reward == GoalReward {
		stepType = ts.Last
	}
	return ts.New(stepType, reward, Index(next), 0), nil
}

// ObservationSpec implements the environment.Environment interface
func (m *Maze) ObservationSpec() env.Spec {
	return env.NewSpec([]int{Width, Height}, env.Observation)
}

// ActionSpec implements the environment.Environment interface
func (m *Maze) ActionSpec() env.Spec {
	return env.NewSpec([]int{NumActions}, env.Action)
}

// Index returns the flat index of state s
func Index(s State) int {
	return s.X*Height + s.Y
}

// StateAt returns the state with flat index i
func StateAt(i int) State {
	return State{i / Height, i % Height}
}

func inBounds(s State) bool {
	return s.X >= 0 && s.Y >= 0 && s.X < Width && s.Y < Height
}
