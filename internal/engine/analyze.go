package engine

import (
	"fmt"
	"time"

	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/models"
)

// Params collects every tunable the engine consumes. Zero values are not
// usable; start from DefaultParams.
type Params struct {
	RiskFreeRate    float64
	CurveLowFactor  float64
	CurveHighFactor float64
	ChartSamples    int
	TableRows       int
	Thresholds      Thresholds
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		RiskFreeRate:    DefaultRiskFreeRate,
		CurveLowFactor:  DefaultCurveLowFactor,
		CurveHighFactor: DefaultCurveHighFactor,
		ChartSamples:    DefaultChartSamples,
		TableRows:       DefaultTableRows,
		Thresholds:      DefaultThresholds(),
	}
}

// Report is the full analysis output for one position. LongGreeks and
// ShortGreeks are nil when the inputs for that leg were degenerate (no
// time left, unknown volatility); Table is the coarse row sweep for
// terminal rendering and Curve the fine one for charting.
type Report struct {
	Position    models.PMCCPosition     `json:"position"`
	NetDebit    float64                 `json:"net_debit"`
	TotalCost   float64                 `json:"total_cost"`
	Breakeven   float64                 `json:"breakeven"`
	MaxProfit   float64                 `json:"max_profit_per_share"`
	Curve       models.PayoffCurve      `json:"curve"`
	Table       models.PayoffCurve      `json:"table"`
	Scenarios   []models.ScenarioRow    `json:"scenarios"`
	LongGreeks  *models.Greeks          `json:"long_greeks,omitempty"`
	ShortGreeks *models.Greeks          `json:"short_greeks,omitempty"`
	Diagnostics models.DiagnosticReport `json:"diagnostics"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// Analyze runs the full pipeline over a resolved position: validation,
// cost/breakeven, payoff sweeps, per-leg Greeks, diagnostics. It is a pure
// function of its inputs (now included), so identical inputs always
// produce identical reports. Unpriced legs and degenerate Greeks degrade
// the report with warnings instead of failing it; only invalid spot or
// strikes are hard errors.
func Analyze(pos models.PMCCPosition, p Params, now time.Time) (*Report, error) {
	if pos.UnderlyingPrice <= 0 {
		return nil, errors.NewValidationError("underlying_price", pos.UnderlyingPrice, "must be positive")
	}
	if pos.LongLeg.Strike <= 0 {
		return nil, errors.NewValidationError("long_strike", pos.LongLeg.Strike, "must be positive")
	}
	if pos.ShortLeg.Strike <= 0 {
		return nil, errors.NewValidationError("short_strike", pos.ShortLeg.Strike, "must be positive")
	}

	report := &Report{
		Position:  pos,
		NetDebit:  NetDebit(pos),
		TotalCost: TotalCost(pos),
		Breakeven: Breakeven(pos),
		MaxProfit: MaxProfit(pos),
		Curve:     Curve(pos, p.CurveLowFactor, p.CurveHighFactor, p.ChartSamples),
		Table:     Curve(pos, p.CurveLowFactor, p.CurveHighFactor, p.TableRows),
		Scenarios: Scenarios(pos),
	}

	if pos.LongLeg.Premium <= 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("long leg %s: %v", formatLeg(pos.LongLeg), errors.ErrUnpricedLeg))
	}
	if pos.ShortLeg.Premium <= 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("short leg %s: %v", formatLeg(pos.ShortLeg), errors.ErrUnpricedLeg))
	}

	report.LongGreeks = legGreeks(pos.UnderlyingPrice, pos.LongLeg, p.RiskFreeRate, now)
	report.ShortGreeks = legGreeks(pos.UnderlyingPrice, pos.ShortLeg, p.RiskFreeRate, now)
	if report.LongGreeks == nil || report.ShortGreeks == nil {
		report.Warnings = append(report.Warnings,
			"greeks unavailable for at least one leg; delta checks omitted")
	}

	report.Diagnostics = Diagnose(pos, report.LongGreeks, report.ShortGreeks, p.Thresholds, now)

	return report, nil
}

// legGreeks computes Greeks for one leg, or nil when undefined.
func legGreeks(spot float64, leg models.OptionLeg, rate float64, now time.Time) *models.Greeks {
	t := leg.Expiry.Sub(now).Hours() / 24 / daysPerYear
	g, err := CallGreeks(spot, leg.Strike, t, rate, leg.ImpliedVol)
	if err != nil {
		return nil
	}
	return &g
}

func formatLeg(leg models.OptionLeg) string {
	return fmt.Sprintf("%.2f @ %s", leg.Strike, leg.Expiry.Format("2006-01-02"))
}
