// Package models defines the domain types shared across the application.
package models

import "time"

// LegSide indicates whether a leg is bought or written.
type LegSide string

const (
	SideLong  LegSide = "LONG"
	SideShort LegSide = "SHORT"
)

// ContractMultiplier is the number of shares per US equity option contract.
const ContractMultiplier = 100

// OptionLeg is one leg of the diagonal spread, with its premium already
// resolved from a quote.
type OptionLeg struct {
	Strike     float64   `json:"strike"`
	Premium    float64   `json:"premium"`
	Expiry     time.Time `json:"expiry"`
	Side       LegSide   `json:"side"`
	ImpliedVol float64   `json:"implied_vol"` // 0 means unknown
}

// PMCCPosition is a two-leg diagonal call spread: a deep ITM long-dated
// call financing a short near-dated OTM call. The long expiry is expected
// to be later than the short expiry; a violation degrades diagnostics but
// is not an error.
type PMCCPosition struct {
	Symbol          string    `json:"symbol"`
	UnderlyingPrice float64   `json:"underlying_price"`
	LongLeg         OptionLeg `json:"long_leg"`
	ShortLeg        OptionLeg `json:"short_leg"`
}

// PayoffPoint is one sample of the expiry P&L curve.
type PayoffPoint struct {
	SpotPrice         float64 `json:"spot_price"`
	ProfitPerShare    float64 `json:"profit_per_share"`
	ProfitPerContract float64 `json:"profit_per_contract"`
}

// PayoffCurve is ordered by ascending spot price.
type PayoffCurve []PayoffPoint

// ScenarioRow is the leg-value breakdown at one named spot price.
type ScenarioRow struct {
	Label          string  `json:"label"`
	SpotPrice      float64 `json:"spot_price"`
	LongValue      float64 `json:"long_value"`      // per share
	ShortLiability float64 `json:"short_liability"` // per share
	PerShare       float64 `json:"per_share"`
	Total          float64 `json:"total"`
	ROIPercent     float64 `json:"roi_percent"`
}

// Greeks holds the closed-form sensitivities for one leg. Theta is quoted
// per calendar day.
type Greeks struct {
	Delta float64 `json:"delta"`
	Theta float64 `json:"theta"`
}
