// Package utils provides shared utility functions.
package utils

import "time"

// NYLocation is the timezone for US equity and option markets.
var NYLocation *time.Location

func init() {
	var err error
	NYLocation, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback to UTC-5
		NYLocation = time.FixedZone("EST", -5*60*60)
	}
}

// MarketStatus describes the current US market session.
type MarketStatus string

const (
	MarketOpen   MarketStatus = "OPEN"
	MarketPre    MarketStatus = "PRE_MARKET"
	MarketAfter  MarketStatus = "AFTER_HOURS"
	MarketClosed MarketStatus = "CLOSED"
)

// GetMarketStatus returns the current market status for US equities.
// Regular session 9:30-16:00 ET, pre-market from 4:00, after-hours to
// 20:00. Exchange holidays are not modelled; quotes carry their own
// timestamps.
func GetMarketStatus(now time.Time) MarketStatus {
	t := now.In(NYLocation)

	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return MarketClosed
	}

	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= 240 && minutes < 570:
		return MarketPre
	case minutes >= 570 && minutes < 960:
		return MarketOpen
	case minutes >= 960 && minutes < 1200:
		return MarketAfter
	default:
		return MarketClosed
	}
}

// IsMarketOpen returns true if the regular US session is in progress.
func IsMarketOpen(now time.Time) bool {
	return GetMarketStatus(now) == MarketOpen
}
