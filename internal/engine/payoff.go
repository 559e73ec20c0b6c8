package engine

import (
	"math"

	"pmcc-analyzer/internal/models"
)

// Default sweep bounds and sample counts for the payoff curve.
const (
	DefaultCurveLowFactor  = 0.7
	DefaultCurveHighFactor = 1.3
	DefaultChartSamples    = 100
	DefaultTableRows       = 11
)

// NetDebit is the per-share cost of the spread. A negative result is a net
// credit.
func NetDebit(pos models.PMCCPosition) float64 {
	return pos.LongLeg.Premium - pos.ShortLeg.Premium
}

// TotalCost is the dollar cost for one contract set.
func TotalCost(pos models.PMCCPosition) float64 {
	return NetDebit(pos) * models.ContractMultiplier
}

// Breakeven is the expiry spot price at which the position nets to zero:
// longStrike + netDebit. Between the strikes the payoff rises 1:1 with the
// long call's intrinsic value while the short call stays worthless, so the
// closed form is exact there.
func Breakeven(pos models.PMCCPosition) float64 {
	return pos.LongLeg.Strike + NetDebit(pos)
}

// ProfitAt is the per-share expiry profit at spot price p. Piecewise
// linear: flat at -netDebit below the long strike, rising 1:1 between the
// strikes, flat at the max-profit plateau above the short strike.
func ProfitAt(pos models.PMCCPosition, p float64) float64 {
	longValue := math.Max(0, p-pos.LongLeg.Strike)
	shortLiability := math.Max(0, p-pos.ShortLeg.Strike)
	return longValue - shortLiability - NetDebit(pos)
}

// MaxProfit is the per-share plateau value reached at or above the short
// strike.
func MaxProfit(pos models.PMCCPosition) float64 {
	return pos.ShortLeg.Strike - pos.LongLeg.Strike - NetDebit(pos)
}

// Curve samples ProfitAt over an evenly spaced sweep of spot prices from
// lowFactor*spot to highFactor*spot, ordered by ascending spot. samples
// must be at least 2.
func Curve(pos models.PMCCPosition, lowFactor, highFactor float64, samples int) models.PayoffCurve {
	if samples < 2 {
		samples = 2
	}
	lo := pos.UnderlyingPrice * lowFactor
	hi := pos.UnderlyingPrice * highFactor
	step := (hi - lo) / float64(samples-1)

	curve := make(models.PayoffCurve, samples)
	for i := 0; i < samples; i++ {
		p := lo + float64(i)*step
		perShare := ProfitAt(pos, p)
		curve[i] = models.PayoffPoint{
			SpotPrice:         p,
			ProfitPerShare:    perShare,
			ProfitPerContract: perShare * models.ContractMultiplier,
		}
	}
	return curve
}

// ROIPercent is total profit over total cost, as a percentage. Defined as
// 0 when totalCost <= 0: a net-credit or zero-cost position has no
// meaningful cost base, and dividing by it would distort the table. This
// is an inherited policy choice, not a mathematical identity.
func ROIPercent(total, totalCost float64) float64 {
	if totalCost <= 0 {
		return 0
	}
	return total / totalCost * 100
}

// Scenarios evaluates the leg breakdown at exactly three named spots:
// current price, the computed breakeven, and the short strike.
func Scenarios(pos models.PMCCPosition) []models.ScenarioRow {
	totalCost := TotalCost(pos)
	points := []struct {
		label string
		spot  float64
	}{
		{"Current price", pos.UnderlyingPrice},
		{"Breakeven", Breakeven(pos)},
		{"Short strike", pos.ShortLeg.Strike},
	}

	rows := make([]models.ScenarioRow, 0, len(points))
	for _, pt := range points {
		longValue := math.Max(0, pt.spot-pos.LongLeg.Strike)
		shortLiability := math.Max(0, pt.spot-pos.ShortLeg.Strike)
		perShare := longValue - shortLiability - NetDebit(pos)
		total := perShare * models.ContractMultiplier
		rows = append(rows, models.ScenarioRow{
			Label:          pt.label,
			SpotPrice:      pt.spot,
			LongValue:      longValue,
			ShortLiability: shortLiability,
			PerShare:       perShare,
			Total:          total,
			ROIPercent:     ROIPercent(total, totalCost),
		})
	}
	return rows
}
