package cli

import (
	"strings"
	"testing"
	"time"

	"pmcc-analyzer/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5.2, "$5.20"},
		{100, "$100.00"},
		{1234.56, "$1,234.56"},
		{1234567.891, "$1,234,567.89"},
		{-2000, "-$2,000.00"},
		{-0.5, "-$0.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.amount); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{3000, "$3,000"},
		{-2000, "-$2,000"},
		{1500000, "$1,500,000"},
	}
	for _, tt := range tests {
		if got := FormatDollars(tt.amount); got != tt.want {
			t.Errorf("FormatDollars(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
	}
	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(150.0); got != "+150.0%" {
		t.Errorf("FormatPercent(150) = %q", got)
	}
	if got := FormatPercent(-100.0); got != "-100.0%" {
		t.Errorf("FormatPercent(-100) = %q", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(3000); got != "+$3,000" {
		t.Errorf("FormatPnL(3000) = %q", got)
	}
	if got := FormatPnL(-2000); got != "-$2,000" {
		t.Errorf("FormatPnL(-2000) = %q", got)
	}
	if got := FormatPnL(0); got != "$0" {
		t.Errorf("FormatPnL(0) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2028, 1, 21, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2028-01-21" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestRenderPayoffChart(t *testing.T) {
	curve := models.PayoffCurve{
		{SpotPrice: 70, ProfitPerContract: -2000},
		{SpotPrice: 100, ProfitPerContract: 0},
		{SpotPrice: 130, ProfitPerContract: 3000},
	}

	lines := RenderPayoffChart(curve, 40, 10)
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want height plus footer and axis", len(lines))
	}

	// Top row carries the max label, bottom grid row the min.
	if !strings.Contains(lines[0], "$3,000") {
		t.Errorf("top label missing: %q", lines[0])
	}
	if !strings.Contains(lines[9], "-$2,000") {
		t.Errorf("bottom label missing: %q", lines[9])
	}

	// The zero axis lands between them.
	zeroRows := 0
	for _, l := range lines[:10] {
		if strings.Contains(l, "$0 ") || strings.HasSuffix(strings.SplitN(l, "│", 2)[0], "$0 ") {
			zeroRows++
		}
	}
	if zeroRows != 1 {
		t.Errorf("got %d zero-axis labels, want 1", zeroRows)
	}

	// Every grid row has the left border and something plotted somewhere.
	stars := 0
	for _, l := range lines[:10] {
		if !strings.Contains(l, "│") {
			t.Errorf("row missing border: %q", l)
		}
		stars += strings.Count(l, "*")
	}
	if stars == 0 {
		t.Error("no points plotted")
	}

	// Spot bounds appear on the axis line.
	axis := lines[11]
	if !strings.Contains(axis, "$70.00") || !strings.Contains(axis, "$130.00") {
		t.Errorf("axis missing spot bounds: %q", axis)
	}
}

func TestRenderPayoffChartDegenerate(t *testing.T) {
	if got := RenderPayoffChart(nil, 40, 10); got != nil {
		t.Errorf("nil curve should render nothing, got %v", got)
	}
	curve := models.PayoffCurve{{SpotPrice: 70}, {SpotPrice: 130}}
	if got := RenderPayoffChart(curve, 5, 10); got != nil {
		t.Error("too-narrow chart should render nothing")
	}
}
