// Package carrental implements the reward and transition dynamics of
// Jack's car rental problem.
//
// Jack manages two rental locations. Each day a Poisson-distributed
// number of customers arrive at each location to rent cars, and a
// Poisson-distributed number of cars are returned. Overnight Jack may
// move up to MaxMoves cars between the locations at a cost. The state
// is the number of cars at each location at the end of a day, and the
// action is the net number of cars moved from location 1 to location 2.
//
// The modified problem adds two twists: one of Jack's employees will
// shuttle a single car from location 1 to location 2 for free, and
// keeping more than ParkingLimit cars at a location overnight requires
// a second parking lot at a flat cost.
package carrental

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/tabular/utils/intutils"
)

var (
	// ErrInfeasibleAction is returned when an action moves more cars
	// out of a location than are present there
	ErrInfeasibleAction = errors.New("infeasible action")

	// ErrInvalidState is returned when a state holds a negative number
	// of cars or more than the maximum number of cars at a location
	ErrInvalidState = errors.New("invalid state")
)

// Default problem constants
const (
	DefaultMaxCars      int     = 20
	DefaultMaxMoves     int     = 5
	DefaultRentalReward float64 = 10
	DefaultMoveCost     float64 = 2
	DefaultParkingLimit int     = 10
	DefaultParkingCost  float64 = 10
)

// State is the number of cars at each of the two locations
type State struct {
	Cars1, Cars2 int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.Cars1, s.Cars2)
}

// Action is the net number of cars moved from location 1 to location 2
// overnight. Negative actions move cars from location 2 to location 1.
type Action int

// Config describes a single car rental problem
type Config struct {
	// Expected number of rental requests and returns per day at
	// location 1 and location 2
	Requests [2]float64
	Returns  [2]float64

	MaxCars  int
	MaxMoves int

	RentalReward float64 // Reward per car rented
	MoveCost     float64 // Cost per car moved

	// Modified enables the free shuttle and the second parking lot
	Modified     bool
	ParkingLimit int
	ParkingCost  float64
}

// DefaultConfig returns the Config of the textbook problem with the
// given rates, optionally modified
func DefaultConfig(requests, returns [2]float64, modified bool) Config {
	return Config{
		Requests:     requests,
		Returns:      returns,
		MaxCars:      DefaultMaxCars,
		MaxMoves:     DefaultMaxMoves,
		RentalReward: DefaultRentalReward,
		MoveCost:     DefaultMoveCost,
		Modified:     modified,
		ParkingLimit: DefaultParkingLimit,
		ParkingCost:  DefaultParkingCost,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	for i := range c.Requests {
		if c.Requests[i] <= 0 {
			return fmt.Errorf("validate: request rate %d must be > 0", i+1)
		}
		if c.Returns[i] <= 0 {
			return fmt.Errorf("validate: return rate %d must be > 0", i+1)
		}
	}
	if c.MaxCars <= 0 {
		return fmt.Errorf("validate: max cars must be > 0")
	}
	if c.MaxMoves < 0 {
		return fmt.Errorf("validate: max moves cannot be negative")
	}
	return nil
}

// NumStates returns the number of states per location
func (c Config) NumStates() int {
	return c.MaxCars + 1
}

// Actions returns the actions Jack may take in state s in ascending
// order, from -min(s.Cars2, MaxMoves) to +min(s.Cars1, MaxMoves)
func (c Config) Actions(s State) []Action {
	lo := -intutils.Min(s.Cars2, c.MaxMoves)
	hi := intutils.Min(s.Cars1, c.MaxMoves)

	actions := make([]Action, 0, hi-lo+1)
	for a := lo; a <= hi; a++ {
		actions = append(actions, Action(a))
	}
	return actions
}

// move returns the number of cars at each location after taking
// action a in state s
func (c Config) move(s State, a Action) (int, int, error) {
	if s.Cars1 < 0 || s.Cars2 < 0 || s.Cars1 > c.MaxCars ||
		s.Cars2 > c.MaxCars {
		return 0, 0, fmt.Errorf("move: state %v: %w", s, ErrInvalidState)
	}
	if int(a) > s.Cars1 || -int(a) > s.Cars2 {
		return 0, 0, fmt.Errorf("move: cannot move %d cars in state %v: %w",
			a, s, ErrInfeasibleAction)
	}
	return s.Cars1 - int(a), s.Cars2 + int(a), nil
}

// movementCost returns the cost of moving cars with action a. In the
// modified problem, the first car moved from location 1 to location 2
// is free.
func (c Config) movementCost(a Action) float64 {
	if c.Modified && a > 0 {
		return float64(a-1) * c.MoveCost
	}
	return float64(intutils.Abs(int(a))) * c.MoveCost
}

// parkingCost returns the cost of the second parking lots needed to
// keep cars1 and cars2 cars overnight
func (c Config) parkingCost(cars1, cars2 int) float64 {
	if !c.Modified {
		return 0
	}

	cost := 0.0
	if cars1 > c.ParkingLimit {
		cost += c.ParkingCost
	}
	if cars2 > c.ParkingLimit {
		cost += c.ParkingCost
	}
	return cost
}
