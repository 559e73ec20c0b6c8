// Package marketdata provides market-data provider interfaces and
// implementations.
package marketdata

import (
	"context"
	"time"

	"pmcc-analyzer/internal/models"
)

// SpotInfo is the spot price and available option expiries for a symbol.
type SpotInfo struct {
	Symbol    string      `json:"symbol"`
	Price     float64     `json:"price"`
	Expiries  []time.Time `json:"expiries"` // sorted ascending
	FetchedAt time.Time   `json:"fetched_at"`
}

// Provider defines the interface for market-data retrieval. The engine
// never talks to a Provider; the CLI resolves inputs through one and hands
// the engine plain values, so engine output stays deterministic for
// identical quote inputs.
type Provider interface {
	GetSpotAndExpiries(ctx context.Context, symbol string) (*SpotInfo, error)
	GetCallChain(ctx context.Context, symbol string, expiry time.Time) ([]models.OptionQuote, error)
}

// Strikes extracts the sorted unique strike ladder from a chain. Chains
// arrive sorted by strike; duplicates are dropped because the selector's
// tie-break assumes uniqueness.
func Strikes(chain []models.OptionQuote) []float64 {
	strikes := make([]float64, 0, len(chain))
	var last float64
	for i, q := range chain {
		if i > 0 && q.Strike == last {
			continue
		}
		strikes = append(strikes, q.Strike)
		last = q.Strike
	}
	return strikes
}

// QuoteForStrike finds the quote with an exactly matching strike.
func QuoteForStrike(chain []models.OptionQuote, strike float64) (models.OptionQuote, bool) {
	for _, q := range chain {
		if q.Strike == strike {
			return q, true
		}
	}
	return models.OptionQuote{}, false
}
