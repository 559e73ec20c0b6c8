package engine

import (
	"fmt"
	"time"

	"pmcc-analyzer/internal/models"
)

// Thresholds holds the diagnostic band boundaries. Observed variants of
// this strategy disagree on the exact numbers (moneyness 0.85 vs a
// 0.8/0.9 three-tier split, short-delta ideal top 0.40 vs 0.45), so the
// boundaries are configuration, not literals. The defaults below are the
// set this implementation commits to; see DESIGN.md.
type Thresholds struct {
	// Long-leg time to expiry, in calendar days.
	MinDays       int // below this: Fail
	PreferredDays int // at or above this: Pass; between: Warn

	// Long-leg moneyness (strike / spot).
	MoneynessFail float64 // above this: Fail
	MoneynessWarn float64 // above this up to MoneynessFail inclusive: Warn; at or below: Pass

	// Long-leg delta bands.
	LongDeltaExcellent float64 // >= : excellent
	LongDeltaGood      float64 // >= : good
	LongDeltaCaution   float64 // >= : caution; below: reject

	// Short-leg delta bands.
	ShortDeltaAssignment float64 // > : reject (assignment risk)
	ShortDeltaNear       float64 // >= : caution (too near the money)
	ShortDeltaIdealLow   float64 // ideal band is [IdealLow, IdealHigh]
	ShortDeltaIdealHigh  float64
}

// DefaultThresholds returns the committed boundary set.
//
// Inclusivity, stated precisely: days < MinDays fails, MinDays <= days <
// PreferredDays warns, days >= PreferredDays passes. Moneyness m > 0.9
// fails, 0.8 < m <= 0.9 warns, m <= 0.8 passes. Long delta d >= 0.90
// excellent, 0.80 <= d < 0.90 good, 0.70 <= d < 0.80 caution, d < 0.70
// reject. Short delta d > 0.60 reject, 0.50 <= d <= 0.60 caution, 0.20 <=
// d <= 0.45 ideal, anything else is the far-OTM/low-income bucket.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinDays:              180,
		PreferredDays:        365,
		MoneynessFail:        0.9,
		MoneynessWarn:        0.8,
		LongDeltaExcellent:   0.90,
		LongDeltaGood:        0.80,
		LongDeltaCaution:     0.70,
		ShortDeltaAssignment: 0.60,
		ShortDeltaNear:       0.50,
		ShortDeltaIdealLow:   0.20,
		ShortDeltaIdealHigh:  0.45,
	}
}

// TimeTier classifies the long leg's remaining calendar days.
func (t Thresholds) TimeTier(days int) models.Tier {
	switch {
	case days < t.MinDays:
		return models.TierFail
	case days < t.PreferredDays:
		return models.TierWarn
	default:
		return models.TierPass
	}
}

// MoneynessTier classifies the long leg's strike/spot ratio.
func (t Thresholds) MoneynessTier(moneyness float64) models.Tier {
	switch {
	case moneyness > t.MoneynessFail:
		return models.TierFail
	case moneyness > t.MoneynessWarn:
		return models.TierWarn
	default:
		return models.TierPass
	}
}

// legScore ranks a delta band 0 (reject) to 3 (best).
func (t Thresholds) longScore(delta float64) int {
	switch {
	case delta >= t.LongDeltaExcellent:
		return 3
	case delta >= t.LongDeltaGood:
		return 2
	case delta >= t.LongDeltaCaution:
		return 1
	default:
		return 0
	}
}

func (t Thresholds) shortScore(delta float64) int {
	switch {
	case delta > t.ShortDeltaAssignment:
		return 0
	case delta >= t.ShortDeltaNear:
		return 1
	case delta >= t.ShortDeltaIdealLow && delta <= t.ShortDeltaIdealHigh:
		return 3
	default:
		return 2 // far OTM or the gap just above ideal: tradeable, low income
	}
}

// CompositeGrade combines long- and short-leg delta bands into a single
// grade. S requires a long delta at or above the good band and a short
// delta inside the ideal band; any rejected leg caps the grade at C; the
// remaining combinations split A/B by combined band score.
func (t Thresholds) CompositeGrade(longDelta, shortDelta float64) models.Grade {
	ls := t.longScore(longDelta)
	ss := t.shortScore(shortDelta)
	switch {
	case ls == 0 || ss == 0:
		return models.GradeC
	case ls >= 2 && ss == 3:
		return models.GradeS
	case ls+ss >= 4:
		return models.GradeA
	default:
		return models.GradeB
	}
}

// DaysToExpiry is the whole calendar days from now until expiry.
func DaysToExpiry(now, expiry time.Time) int {
	return int(expiry.Sub(now).Hours() / 24)
}

// Diagnose evaluates the rule-based quality checks for a position. Greeks
// may be nil for either leg; delta checks and the composite grade are
// simply omitted then. The checks never error: a malformed position (e.g.
// a long expiry at or before the short expiry) reports lower quality
// instead of failing.
func Diagnose(pos models.PMCCPosition, longGreeks, shortGreeks *models.Greeks, t Thresholds, now time.Time) models.DiagnosticReport {
	var report models.DiagnosticReport

	days := DaysToExpiry(now, pos.LongLeg.Expiry)
	timeTier := t.TimeTier(days)
	report.Checks = append(report.Checks, models.Diagnostic{
		Code:    "time",
		Tier:    timeTier,
		Message: timeMessage(timeTier, days, t),
	})

	moneyness := pos.LongLeg.Strike / pos.UnderlyingPrice
	moneyTier := t.MoneynessTier(moneyness)
	report.Checks = append(report.Checks, models.Diagnostic{
		Code:    "moneyness",
		Tier:    moneyTier,
		Message: moneynessMessage(moneyTier, moneyness),
	})

	if !pos.LongLeg.Expiry.After(pos.ShortLeg.Expiry) {
		report.Checks = append(report.Checks, models.Diagnostic{
			Code:    "expiry_order",
			Tier:    models.TierFail,
			Message: "long expiry is not later than short expiry; this is not a diagonal spread",
		})
	}

	report.IsSafe = report.Worst() > models.TierFail

	if longGreeks != nil && shortGreeks != nil {
		report.Graded = true
		report.Grade = t.CompositeGrade(longGreeks.Delta, shortGreeks.Delta)
		report.Checks = append(report.Checks,
			models.Diagnostic{
				Code:    "long_delta",
				Tier:    deltaTier(t.longScore(longGreeks.Delta)),
				Message: longDeltaMessage(t.longScore(longGreeks.Delta), longGreeks.Delta),
			},
			models.Diagnostic{
				Code:    "short_delta",
				Tier:    deltaTier(t.shortScore(shortGreeks.Delta)),
				Message: shortDeltaMessage(t.shortScore(shortGreeks.Delta), shortGreeks.Delta),
			},
		)
	}

	return report
}

// deltaTier folds a 0-3 band score onto the three-tier scale used for
// rendering.
func deltaTier(score int) models.Tier {
	switch {
	case score == 0:
		return models.TierFail
	case score >= 3:
		return models.TierPass
	default:
		return models.TierWarn
	}
}

func timeMessage(tier models.Tier, days int, t Thresholds) string {
	switch tier {
	case models.TierFail:
		return fmt.Sprintf("too little time: %d days remaining (want %d+)", days, t.PreferredDays)
	case models.TierWarn:
		return fmt.Sprintf("limited runway: %d days remaining (6-12 months is a short campaign)", days)
	default:
		return fmt.Sprintf("ample time: %d days remaining", days)
	}
}

func moneynessMessage(tier models.Tier, m float64) string {
	switch tier {
	case models.TierFail:
		return fmt.Sprintf("not deep enough: strike is %.0f%% of spot", m*100)
	case models.TierWarn:
		return fmt.Sprintf("shallow: strike is %.0f%% of spot, delta may be thin", m*100)
	default:
		return fmt.Sprintf("deep ITM: strike is %.0f%% of spot", m*100)
	}
}

func longDeltaMessage(score int, delta float64) string {
	switch score {
	case 3:
		return fmt.Sprintf("long delta %.2f: excellent stock substitute", delta)
	case 2:
		return fmt.Sprintf("long delta %.2f: good", delta)
	case 1:
		return fmt.Sprintf("long delta %.2f: caution, not very deep", delta)
	default:
		return fmt.Sprintf("long delta %.2f: too shallow for a PMCC base", delta)
	}
}

func shortDeltaMessage(score int, delta float64) string {
	switch score {
	case 3:
		return fmt.Sprintf("short delta %.2f: ideal income zone", delta)
	case 2:
		return fmt.Sprintf("short delta %.2f: far OTM, low income", delta)
	case 1:
		return fmt.Sprintf("short delta %.2f: too near the money", delta)
	default:
		return fmt.Sprintf("short delta %.2f: assignment risk", delta)
	}
}
