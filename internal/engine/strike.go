package engine

import (
	"math"

	"pmcc-analyzer/internal/errors"
)

// Default target moneyness ratios for strike selection. The long leg aims
// deep in the money, the short leg above market.
const (
	DefaultLongTargetRatio  = 0.60
	DefaultShortTargetRatio = 1.15
)

// NearestStrike returns the member of strikes closest to target. Strikes
// must be sorted ascending; on an exact distance tie the lowest tied
// strike wins because the strict less-than comparison keeps the first
// candidate seen in ascending order. That tie-break is load-bearing for
// reproducibility and must not change.
func NearestStrike(strikes []float64, target float64) (float64, error) {
	if len(strikes) == 0 {
		return 0, errors.ErrEmptyStrikeSet
	}
	best := strikes[0]
	bestDist := math.Abs(strikes[0] - target)
	for _, s := range strikes[1:] {
		if d := math.Abs(s - target); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, nil
}

// SelectDefaultStrike picks the strike nearest to spot*targetRatio.
func SelectDefaultStrike(strikes []float64, spot, targetRatio float64) (float64, error) {
	return NearestStrike(strikes, spot*targetRatio)
}
