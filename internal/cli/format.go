// Package cli provides the command-line interface for the analyzer.
package cli

import (
	"fmt"
	"strings"
	"time"

	"pmcc-analyzer/internal/models"
)

// FormatPrice formats a dollar amount with two decimals and thousands
// separators.
func FormatPrice(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatDollars formats a whole-dollar amount.
func FormatDollars(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	result := "$" + groupThousands(fmt.Sprintf("%.0f", amount))
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 0 {
		if len(s) >= 3 {
			result = s[len(s)-3:] + "," + result
			s = s[:len(s)-3]
		} else {
			result = s + "," + result
			s = ""
		}
	}
	return result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, value)
}

// dateLayout is the display layout for dates, overridable through
// ui.date_format.
var dateLayout = "2006-01-02"

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatPnL formats a signed dollar P&L.
func FormatPnL(pnl float64) string {
	formatted := FormatDollars(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// RenderPayoffChart draws an ASCII P&L chart of per-contract profit over
// the curve's spot range. Returns the chart lines, left-labelled with
// dollar levels.
func RenderPayoffChart(curve models.PayoffCurve, width, height int) []string {
	if len(curve) < 2 || width < 10 || height < 3 {
		return nil
	}

	// Resample the curve onto the column grid.
	samples := make([]float64, width)
	minP, maxP := curve[0].ProfitPerContract, curve[0].ProfitPerContract
	for col := 0; col < width; col++ {
		idx := col * (len(curve) - 1) / (width - 1)
		v := curve[idx].ProfitPerContract
		samples[col] = v
		if v < minP {
			minP = v
		}
		if v > maxP {
			maxP = v
		}
	}
	if maxP == minP {
		maxP = minP + 1
	}

	rowFor := func(v float64) int {
		r := int((maxP - v) / (maxP - minP) * float64(height-1))
		if r < 0 {
			r = 0
		}
		if r > height-1 {
			r = height - 1
		}
		return r
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// Zero axis, when it is inside the plotted range.
	zeroRow := -1
	if minP <= 0 && maxP >= 0 {
		zeroRow = rowFor(0)
		for col := 0; col < width; col++ {
			grid[zeroRow][col] = '─'
		}
	}

	for col, v := range samples {
		grid[rowFor(v)][col] = '*'
	}

	lines := make([]string, 0, height+1)
	for i, row := range grid {
		label := "          "
		switch {
		case i == 0:
			label = fmt.Sprintf("%9s ", FormatDollars(maxP))
		case i == height-1:
			label = fmt.Sprintf("%9s ", FormatDollars(minP))
		case i == zeroRow:
			label = fmt.Sprintf("%9s ", "$0")
		}
		lines = append(lines, label+"│"+string(row))
	}

	lo := curve[0].SpotPrice
	hi := curve[len(curve)-1].SpotPrice
	footer := fmt.Sprintf("%10s└%s", "", strings.Repeat("─", width))
	axis := fmt.Sprintf("%11s%-*s%s", "", width-len(FormatPrice(hi)), FormatPrice(lo), FormatPrice(hi))
	lines = append(lines, footer, axis)

	return lines
}
