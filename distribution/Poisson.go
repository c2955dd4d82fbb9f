// Package distribution implements the probability mass functions needed
// to compute exact expectations under Poisson-distributed demand.
package distribution

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonPMF returns P(K = k) for K ~ Poisson(λ). Negative k has zero
// probability.
func PoissonPMF(λ float64, k int) float64 {
	if k < 0 {
		return 0
	}
	dist := distuv.Poisson{Lambda: λ}
	return dist.Prob(float64(k))
}

// PoissonCDF returns P(K <= k) for K ~ Poisson(λ)
func PoissonCDF(λ float64, k int) float64 {
	if k < 0 {
		return 0
	}
	dist := distuv.Poisson{Lambda: λ}
	return dist.CDF(float64(k))
}

// PoissonSurvival returns P(K >= k) for K ~ Poisson(λ)
func PoissonSurvival(λ float64, k int) float64 {
	return 1 - PoissonCDF(λ, k-1)
}
