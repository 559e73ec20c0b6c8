package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"pmcc-analyzer/internal/engine"
	"pmcc-analyzer/internal/models"
	"pmcc-analyzer/pkg/utils"
)

var (
	tierPassMark = color.New(color.FgGreen).SprintFunc()
	tierWarnMark = color.New(color.FgYellow).SprintFunc()
	tierFailMark = color.New(color.FgRed).SprintFunc()
	gradeStyle   = color.New(color.Bold, color.FgCyan).SprintFunc()
)

// tierMark renders a tier as a colored status symbol.
func tierMark(t models.Tier) string {
	switch t {
	case models.TierPass:
		return tierPassMark("✓")
	case models.TierWarn:
		return tierWarnMark("!")
	default:
		return tierFailMark("✗")
	}
}

// renderReport prints the full analysis report to the terminal.
func renderReport(output *Output, report *engine.Report, withChart bool) {
	pos := report.Position

	output.Bold("PMCC Analysis - %s", pos.Symbol)
	output.Printf("  Spot: %s\n\n", FormatPrice(pos.UnderlyingPrice))

	output.Printf("  Long:  %s call, expiry %s, premium %s (pay)\n",
		FormatPrice(pos.LongLeg.Strike), FormatDate(pos.LongLeg.Expiry), FormatPrice(pos.LongLeg.Premium))
	output.Printf("  Short: %s call, expiry %s, premium %s (receive)\n\n",
		FormatPrice(pos.ShortLeg.Strike), FormatDate(pos.ShortLeg.Expiry), FormatPrice(pos.ShortLeg.Premium))

	output.Bold("Position Economics")
	output.Printf("  Net Debit:      %s /share\n", FormatPrice(report.NetDebit))
	output.Printf("  Total Cost:     %s /contract set\n", FormatDollars(report.TotalCost))
	output.Printf("  Breakeven:      %s\n", FormatPrice(report.Breakeven))
	output.Printf("  Max Profit:     %s /share (%s total)\n\n",
		FormatPrice(report.MaxProfit), FormatDollars(report.MaxProfit*models.ContractMultiplier))

	if report.LongGreeks != nil {
		output.Printf("  Long Greeks:    delta %.3f, theta %.3f/day\n", report.LongGreeks.Delta, report.LongGreeks.Theta)
	}
	if report.ShortGreeks != nil {
		output.Printf("  Short Greeks:   delta %.3f, theta %.3f/day\n", report.ShortGreeks.Delta, report.ShortGreeks.Theta)
	}
	if report.LongGreeks != nil || report.ShortGreeks != nil {
		output.Println()
	}

	renderDiagnostics(output, report.Diagnostics)

	output.Bold("Scenarios")
	output.Printf("  %-15s %10s %10s %10s %12s %8s\n", "At", "Spot", "Long", "Short", "Total P&L", "ROI")
	for _, row := range report.Scenarios {
		output.Printf("  %-15s %10s %10s %10s %12s %8s\n",
			row.Label,
			FormatPrice(row.SpotPrice),
			FormatPrice(row.LongValue),
			FormatPrice(-row.ShortLiability),
			FormatPnL(row.Total),
			FormatPercent(row.ROIPercent),
		)
	}
	output.Println()

	output.Bold("P&L by Expiry Spot Price")
	output.Printf("  %10s %14s %8s\n", "Spot", "Total P&L", "ROI")
	for _, pt := range report.Table {
		roi := engine.ROIPercent(pt.ProfitPerContract, report.TotalCost)
		output.Printf("  %10s %14s %8s\n",
			FormatPrice(pt.SpotPrice), FormatPnL(pt.ProfitPerContract), FormatPercent(roi))
	}
	output.Println()

	if withChart {
		for _, line := range RenderPayoffChart(report.Curve, 60, 12) {
			output.Println(line)
		}
		output.Println()
	}

	for _, w := range report.Warnings {
		output.Warning("⚠ %s", w)
	}
}

// renderDiagnostics prints the rule checks and composite grade.
func renderDiagnostics(output *Output, report models.DiagnosticReport) {
	output.Bold("Diagnostics")
	for _, check := range report.Checks {
		output.Printf("  %s %s\n", tierMark(check.Tier), check.Message)
	}

	verdict := "position passes the basic checks"
	if !report.IsSafe {
		verdict = "position fails at least one basic check"
	}
	mark := tierMark(models.TierPass)
	if !report.IsSafe {
		mark = tierMark(models.TierFail)
	}
	output.Printf("  %s %s\n", mark, verdict)

	if report.Graded {
		output.Printf("  Grade: %s\n", gradeStyle(report.Grade.String()))
	} else {
		output.Dim("  Grade unavailable (greeks undefined for a leg)")
	}
	output.Println()
}

// renderQuoteTable prints a call chain around a center strike.
func renderQuoteTable(output *Output, quotes []models.OptionQuote, spot float64, around int) {
	rows := quotes
	if around > 0 && len(quotes) > around {
		// Window around the ATM strike.
		atm := 0
		for i, q := range quotes {
			if q.Strike >= spot {
				atm = i
				break
			}
		}
		lo := atm - around/2
		if lo < 0 {
			lo = 0
		}
		hi := lo + around
		if hi > len(quotes) {
			hi = len(quotes)
			lo = hi - around
			if lo < 0 {
				lo = 0
			}
		}
		rows = quotes[lo:hi]
	}

	output.Printf("  %10s %10s %10s %10s %8s\n", "Strike", "Bid", "Ask", "Last", "IV")
	output.Println("  " + strings.Repeat("─", 54))
	for _, q := range rows {
		output.Printf("  %10s %10s %10s %10s %8s\n",
			FormatPrice(q.Strike),
			fieldOrDash(q.Bid),
			fieldOrDash(q.Ask),
			fieldOrDash(q.LastPrice),
			ivOrDash(q.ImpliedVolatility),
		)
	}
}

// marketNote returns a staleness hint for quote-backed output when the
// regular US session is not in progress, or "" during market hours.
func marketNote(now time.Time) string {
	status := utils.GetMarketStatus(now)
	if status == utils.MarketOpen {
		return ""
	}
	return fmt.Sprintf("Market is %s; quotes may be stale from the last session.", status)
}

func fieldOrDash(f models.Field) string {
	if v, ok := f.Get(); ok {
		return FormatPrice(v)
	}
	return "-"
}

func ivOrDash(iv float64) string {
	if iv <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", iv*100)
}
