package engine

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pmcc-analyzer/internal/models"
)

// strikeSliceGen generates a non-empty ascending slice of distinct positive
// strikes, the shape NearestStrike expects from a chain.
func strikeSliceGen() gopter.Gen {
	return gen.SliceOfN(20, gen.Float64Range(5, 500)).Map(func(strikes []float64) []float64 {
		sort.Float64s(strikes)
		out := strikes[:0]
		for i, s := range strikes {
			if i == 0 || s > out[len(out)-1] {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			out = append(out, 100)
		}
		return out
	})
}

// positionGen generates positions with the PMCC shape: long strike at or
// below spot, short strike at or above it, long expiry past short expiry.
func positionGen() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(10, 1000),  // spot
		gen.Float64Range(0.3, 1.0),  // long strike as a fraction of spot
		gen.Float64Range(1.0, 2.0),  // short strike as a multiple of spot
		gen.Float64Range(0.01, 20),  // short premium
	).Map(func(vals []interface{}) models.PMCCPosition {
		spot := vals[0].(float64)
		now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		longStrike := spot * vals[1].(float64)
		return models.PMCCPosition{
			Symbol:          "PROP",
			UnderlyingPrice: spot,
			LongLeg: models.OptionLeg{
				Strike:  longStrike,
				Premium: math.Max(0, spot-longStrike) + 1,
				Expiry:  now.AddDate(2, 0, 0),
				Side:    models.SideLong,
			},
			ShortLeg: models.OptionLeg{
				Strike:  spot * vals[2].(float64),
				Premium: vals[3].(float64),
				Expiry:  now.AddDate(0, 2, 0),
				Side:    models.SideShort,
			},
		}
	})
}

// TestProperty_NearestStrikeMembership tests that the selected strike is a
// member of the input and no other member is strictly closer to the target.
func TestProperty_NearestStrikeMembership(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("nearest strike is a member and minimal", prop.ForAll(
		func(strikes []float64, target float64) bool {
			got, err := NearestStrike(strikes, target)
			if err != nil {
				return false
			}
			member := false
			for _, s := range strikes {
				if s == got {
					member = true
				}
				if math.Abs(s-target) < math.Abs(got-target) {
					return false
				}
			}
			return member
		},
		strikeSliceGen(),
		gen.Float64Range(1, 600),
	))

	// Integer-valued strikes keep the midpoint distance exact, so ties are
	// real ties.
	properties.Property("ties resolve to the lower strike", prop.ForAll(
		func(base, gap int) bool {
			lo := float64(base)
			hi := float64(base + 2*gap)
			got, err := NearestStrike([]float64{lo, hi}, float64(base+gap))
			return err == nil && got == lo
		},
		gen.IntRange(10, 500),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

// TestProperty_PayoffShape tests the structural invariants of the expiry
// payoff: flat below the long strike, flat above the short strike, and the
// closed-form breakeven landing on zero profit.
func TestProperty_PayoffShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("capped loss below the long strike", prop.ForAll(
		func(pos models.PMCCPosition, frac float64) bool {
			p := pos.LongLeg.Strike * frac
			return math.Abs(ProfitAt(pos, p)-(-NetDebit(pos))) < 1e-9
		},
		positionGen(),
		gen.Float64Range(0, 0.99),
	))

	properties.Property("plateau above the short strike", prop.ForAll(
		func(pos models.PMCCPosition, mult float64) bool {
			p := pos.ShortLeg.Strike * mult
			return math.Abs(ProfitAt(pos, p)-MaxProfit(pos)) < 1e-6
		},
		positionGen(),
		gen.Float64Range(1.0, 10.0),
	))

	properties.Property("profit at breakeven is zero when breakeven is between the strikes", prop.ForAll(
		func(pos models.PMCCPosition) bool {
			be := Breakeven(pos)
			if be < pos.LongLeg.Strike || be > pos.ShortLeg.Strike {
				return true // closed form only exact inside the rising segment
			}
			return math.Abs(ProfitAt(pos, be)) < 1e-9
		},
		positionGen(),
	))

	properties.Property("curve is ascending in spot and consistent with ProfitAt", prop.ForAll(
		func(pos models.PMCCPosition, samples int) bool {
			curve := Curve(pos, DefaultCurveLowFactor, DefaultCurveHighFactor, samples)
			if len(curve) != samples {
				return false
			}
			for i, pt := range curve {
				if i > 0 && pt.SpotPrice <= curve[i-1].SpotPrice {
					return false
				}
				if math.Abs(pt.ProfitPerShare-ProfitAt(pos, pt.SpotPrice)) > 1e-9 {
					return false
				}
			}
			return true
		},
		positionGen(),
		gen.IntRange(2, 200),
	))

	properties.TestingRun(t)
}

// TestProperty_GreeksBounds tests the analytic bounds of the closed-form
// Greeks over realistic inputs.
func TestProperty_GreeksBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	// Bounds are inclusive: far from the money the normal CDF saturates in
	// float64.
	properties.Property("call delta in [0, 1] and theta non-positive", prop.ForAll(
		func(s, k, tYears, sigma float64) bool {
			g, err := CallGreeks(s, k, tYears, DefaultRiskFreeRate, sigma)
			if err != nil {
				return false
			}
			return g.Delta >= 0 && g.Delta <= 1 && g.Theta <= 0
		},
		gen.Float64Range(10, 1000),
		gen.Float64Range(10, 1000),
		gen.Float64Range(0.01, 3),
		gen.Float64Range(0.05, 1.5),
	))

	properties.Property("deeper strike never lowers delta", prop.ForAll(
		func(s, tYears, sigma, kLow, gap float64) bool {
			shallow, err1 := CallGreeks(s, kLow+gap, tYears, DefaultRiskFreeRate, sigma)
			deep, err2 := CallGreeks(s, kLow, tYears, DefaultRiskFreeRate, sigma)
			if err1 != nil || err2 != nil {
				return false
			}
			return deep.Delta >= shallow.Delta
		},
		gen.Float64Range(50, 500),
		gen.Float64Range(0.05, 3),
		gen.Float64Range(0.05, 1.5),
		gen.Float64Range(10, 400),
		gen.Float64Range(1, 100),
	))

	properties.TestingRun(t)
}

// TestProperty_TierMonotonicity tests that more days and deeper strikes
// never worsen the diagnostic tier.
func TestProperty_TierMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	th := DefaultThresholds()

	properties.Property("time tier is monotone in days", prop.ForAll(
		func(days, extra int) bool {
			return th.TimeTier(days+extra) >= th.TimeTier(days)
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("moneyness tier is monotone in depth", prop.ForAll(
		func(m, delta float64) bool {
			return th.MoneynessTier(m-delta) >= th.MoneynessTier(m)
		},
		gen.Float64Range(0.1, 1.5),
		gen.Float64Range(0, 0.5),
	))

	properties.TestingRun(t)
}
