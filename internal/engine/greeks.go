package engine

import (
	"math"

	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/models"
)

// DefaultRiskFreeRate is the annualized rate used when none is configured.
const DefaultRiskFreeRate = 0.045

// daysPerYear converts annualized theta to per-calendar-day decay.
const daysPerYear = 365.0

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal probability density function.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// CallGreeks computes closed-form Black-Scholes delta and theta for a
// European call. s is spot, k strike, t time to expiry in years, r the
// annualized risk-free rate and sigma the annualized implied volatility.
// Theta is returned per calendar day. Degenerate inputs (t <= 0, sigma <=
// 0, or non-positive s/k) yield ErrComputationUndefined; callers omit
// Greeks-dependent diagnostics in that case rather than treating the
// result as zero.
func CallGreeks(s, k, t, r, sigma float64) (models.Greeks, error) {
	if t <= 0 || sigma <= 0 || s <= 0 || k <= 0 {
		return models.Greeks{}, errors.ErrComputationUndefined
	}

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	delta := normCDF(d1)
	annualTheta := -(s*normPDF(d1)*sigma)/(2*sqrtT) - r*k*math.Exp(-r*t)*normCDF(d2)

	return models.Greeks{
		Delta: delta,
		Theta: annualTheta / daysPerYear,
	}, nil
}

// PutDelta is the closed-form Black-Scholes put delta, -N(-d1). Defined
// for completeness; a PMCC position holds calls only.
func PutDelta(s, k, t, r, sigma float64) (float64, error) {
	if t <= 0 || sigma <= 0 || s <= 0 || k <= 0 {
		return 0, errors.ErrComputationUndefined
	}
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	return -normCDF(-d1), nil
}
