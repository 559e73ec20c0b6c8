package models

import "time"

// SlotKind distinguishes how a saved position can be re-used.
type SlotKind string

const (
	// SlotResolved stores symbol, expiries and strikes only; loading it
	// re-queries live quotes and snaps to the nearest available strikes.
	SlotResolved SlotKind = "resolved"
	// SlotFrozen stores a fully self-contained snapshot (spot, strikes,
	// premiums, expiries) usable without market access.
	SlotFrozen SlotKind = "frozen"
)

// PositionSlot is a named saved position.
type PositionSlot struct {
	Name         string    `json:"name"`
	Kind         SlotKind  `json:"kind"`
	Symbol       string    `json:"symbol"`
	SpotPrice    float64   `json:"spot_price,omitempty"` // frozen only
	LongExpiry   time.Time `json:"long_expiry"`
	ShortExpiry  time.Time `json:"short_expiry"`
	LongStrike   float64   `json:"long_strike"`
	ShortStrike  float64   `json:"short_strike"`
	LongPremium  float64   `json:"long_premium,omitempty"`  // frozen only
	ShortPremium float64   `json:"short_premium,omitempty"` // frozen only
	LongIV       float64   `json:"long_iv,omitempty"`       // frozen only
	ShortIV      float64   `json:"short_iv,omitempty"`      // frozen only
	UpdatedAt    time.Time `json:"updated_at"`
}

// Position reconstructs a PMCCPosition from a frozen slot.
func (s PositionSlot) Position() PMCCPosition {
	return PMCCPosition{
		Symbol:          s.Symbol,
		UnderlyingPrice: s.SpotPrice,
		LongLeg: OptionLeg{
			Strike:     s.LongStrike,
			Premium:    s.LongPremium,
			Expiry:     s.LongExpiry,
			Side:       SideLong,
			ImpliedVol: s.LongIV,
		},
		ShortLeg: OptionLeg{
			Strike:     s.ShortStrike,
			Premium:    s.ShortPremium,
			Expiry:     s.ShortExpiry,
			Side:       SideShort,
			ImpliedVol: s.ShortIV,
		},
	}
}
