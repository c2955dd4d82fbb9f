package distribution

import (
	"math"
)

// besselTolerance is the relative size of a series term below which the
// series for BesselI is truncated
const besselTolerance = 1e-17

// SkellamPMF returns P(D = k) where D = X - Y, X ~ Poisson(μ1) and
// Y ~ Poisson(μ2) are independent. The caller must ensure μ2 > 0.
//
// The mass is computed as
//
//	exp(-(μ1+μ2)) * (μ1/μ2)^(k/2) * I_|k|(2√(μ1μ2))
//
// where I is the modified Bessel function of the first kind.
func SkellamPMF(μ1, μ2 float64, k int) float64 {
	n := k
	if n < 0 {
		n = -n
	}

	ratio := math.Pow(μ1/μ2, float64(k)/2)
	return math.Exp(-(μ1 + μ2)) * ratio * BesselI(n, 2*math.Sqrt(μ1*μ2))
}

// BesselI returns the modified Bessel function of the first kind of
// integer order n >= 0 evaluated at x >= 0. The power series
//
//	I_n(x) = Σ_m (x/2)^(2m+n) / (m! (m+n)!)
//
// is summed with each term derived from the previous one. The leading
// term is computed in log space so that large orders do not overflow.
func BesselI(n int, x float64) float64 {
	if n < 0 {
		n = -n
	}
	if x == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}

	half := x / 2
	lgammaN, _ := math.Lgamma(float64(n + 1))
	term := math.Exp(float64(n)*math.Log(half) - lgammaN)
	if term == 0 {
		return 0
	}

	quarterSq := half * half
	sum := term
	for m := 1; ; m++ {
		term *= quarterSq / (float64(m) * float64(m+n))
		sum += term

		// Terms grow until m ~ x/2 and decrease monotonically after that
		if float64(m) > half && term < sum*besselTolerance {
			break
		}
	}
	return sum
}
