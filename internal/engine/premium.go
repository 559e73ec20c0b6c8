// Package engine implements the PMCC strategy analytics: premium
// resolution, strike selection, closed-form Greeks, payoff mathematics and
// rule-based diagnostics. Every function is pure; the package does no I/O
// and holds no state between calls.
package engine

import "pmcc-analyzer/internal/models"

// PremiumField names the quote field used as the executable price for a
// leg. Standard aggressor-side convention: pay the ask to buy, receive the
// bid to sell.
type PremiumField int

const (
	FieldAsk PremiumField = iota
	FieldBid
)

func (f PremiumField) String() string {
	if f == FieldBid {
		return "bid"
	}
	return "ask"
}

// PremiumFieldFor returns the executable-price field for a leg side.
func PremiumFieldFor(side models.LegSide) PremiumField {
	if side == models.SideShort {
		return FieldBid
	}
	return FieldAsk
}

// ResolvePremium picks an executable premium from a quote. If the primary
// field is absent or not strictly positive it falls back to the last
// traded price; if that too is unusable it returns 0, which callers must
// treat as "unpriced/illiquid", not as a valid zero-cost leg.
func ResolvePremium(q models.OptionQuote, primary PremiumField) float64 {
	field := q.Ask
	if primary == FieldBid {
		field = q.Bid
	}
	if v, ok := field.Get(); ok && v > 0 {
		return v
	}
	if v, ok := q.LastPrice.Get(); ok && v > 0 {
		return v
	}
	return 0
}
