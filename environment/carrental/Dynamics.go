package carrental

import (
	"fmt"

	"github.com/samuelfneumann/tabular/distribution"
)

// boundaryTerms is the number of extra differences added to the mass of
// a boundary state to account for demand clipped at zero or MaxCars cars
const boundaryTerms = 10

// ExpectedReward returns r(s, a), the expected immediate reward of
// taking action a in state s.
//
// Rentals at a location with n cars are truncated at n: the probability
// of n or more requests is lumped onto n rentals. The movement cost and,
// in the modified problem, the parking cost are subtracted from the
// expected rental revenue.
func ExpectedReward(s State, a Action, c Config) (float64, error) {
	cars1, cars2, err := c.move(s, a)
	if err != nil {
		return 0, fmt.Errorf("expectedReward: %w", err)
	}

	revenue := expectedRevenue(cars1, c.Requests[0], c.RentalReward) +
		expectedRevenue(cars2, c.Requests[1], c.RentalReward)

	return revenue - c.movementCost(a) - c.parkingCost(cars1, cars2), nil
}

// expectedRevenue returns the expected rental revenue of a location
// holding cars cars with Poisson(requests) rental requests
func expectedRevenue(cars int, requests, reward float64) float64 {
	revenue := 0.0
	for i := 0; i < cars; i++ {
		revenue += reward * float64(i) * distribution.PoissonPMF(requests, i)
	}
	revenue += reward * float64(cars) *
		distribution.PoissonSurvival(requests, cars)

	return revenue
}

// TransitionProbability returns p(next | s, a). The two locations are
// independent, so the probability is the product of the probabilities
// of each location reaching its next number of cars.
func TransitionProbability(next, s State, a Action, c Config) (float64, error) {
	if next.Cars1 < 0 || next.Cars2 < 0 || next.Cars1 > c.MaxCars ||
		next.Cars2 > c.MaxCars {
		return 0, fmt.Errorf("transitionProbability: next state %v: %w",
			next, ErrInvalidState)
	}

	cars1, cars2, err := c.move(s, a)
	if err != nil {
		return 0, fmt.Errorf("transitionProbability: %w", err)
	}

	prob1 := locationTransition(cars1, next.Cars1, c.Returns[0],
		c.Requests[0], c.MaxCars)
	prob2 := locationTransition(cars2, next.Cars2, c.Returns[1],
		c.Requests[1], c.MaxCars)

	return prob1 * prob2, nil
}

// locationTransition returns the probability that a location holding
// cars cars after the overnight move holds next cars at the end of the
// following day. The net change in cars is Skellam distributed since it
// is the difference of the Poisson returns and Poisson requests.
//
// The number of cars is clipped at 0 and maxCars. Each boundary state
// also collects the mass of the next boundaryTerms differences beyond
// it.
func locationTransition(cars, next int, returns, requests float64,
	maxCars int) float64 {
	diff := next - cars
	prob := distribution.SkellamPMF(returns, requests, diff)

	if next == 0 {
		for i := 1; i <= boundaryTerms; i++ {
			prob += distribution.SkellamPMF(returns, requests, diff-i)
		}
	} else if next == maxCars {
		for i := 1; i <= boundaryTerms; i++ {
			prob += distribution.SkellamPMF(returns, requests, diff+i)
		}
	}
	return prob
}
