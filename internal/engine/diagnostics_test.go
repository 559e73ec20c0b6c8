package engine

import (
	"testing"
	"time"

	"pmcc-analyzer/internal/models"
)

func TestTimeTierBoundaries(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		days int
		want models.Tier
	}{
		{0, models.TierFail},
		{90, models.TierFail},
		{179, models.TierFail},
		{180, models.TierWarn},
		{300, models.TierWarn},
		{364, models.TierWarn},
		{365, models.TierPass},
		{730, models.TierPass},
	}
	for _, tt := range tests {
		if got := th.TimeTier(tt.days); got != tt.want {
			t.Errorf("TimeTier(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestMoneynessTierBoundaries(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		m    float64
		want models.Tier
	}{
		{0.50, models.TierPass},
		{0.79, models.TierPass},
		{0.80, models.TierPass}, // boundary is inclusive on the good side
		{0.81, models.TierWarn},
		{0.90, models.TierWarn},
		{0.91, models.TierFail},
		{1.10, models.TierFail},
	}
	for _, tt := range tests {
		if got := th.MoneynessTier(tt.m); got != tt.want {
			t.Errorf("MoneynessTier(%v) = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestCompositeGrade(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name       string
		longDelta  float64
		shortDelta float64
		want       models.Grade
	}{
		{"excellent long, ideal short", 0.92, 0.30, models.GradeS},
		{"good long, ideal short", 0.85, 0.30, models.GradeS},
		{"caution long, ideal short", 0.75, 0.30, models.GradeA},
		{"excellent long, near-money short", 0.92, 0.55, models.GradeA},
		{"good long, far-OTM short", 0.85, 0.10, models.GradeA},
		{"caution long, near-money short", 0.75, 0.55, models.GradeB},
		{"caution long, far-OTM short", 0.75, 0.10, models.GradeB},
		{"shallow long rejects", 0.60, 0.30, models.GradeC},
		{"assignment-risk short rejects", 0.92, 0.65, models.GradeC},
		{"both rejected", 0.50, 0.70, models.GradeC},
		{"gap above ideal counts as far-OTM band", 0.92, 0.47, models.GradeA},
	}
	for _, tt := range tests {
		if got := th.CompositeGrade(tt.longDelta, tt.shortDelta); got != tt.want {
			t.Errorf("%s: CompositeGrade(%v, %v) = %v, want %v",
				tt.name, tt.longDelta, tt.shortDelta, got, tt.want)
		}
	}
}

func TestShortScoreBands(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		delta float64
		want  int
	}{
		{0.61, 0}, // assignment risk
		{0.60, 1}, // boundary: caution, not reject
		{0.50, 1},
		{0.49, 2}, // above ideal, below caution
		{0.45, 3}, // ideal top
		{0.30, 3},
		{0.20, 3}, // ideal bottom
		{0.19, 2}, // far OTM
		{0.05, 2},
	}
	for _, tt := range tests {
		if got := th.shortScore(tt.delta); got != tt.want {
			t.Errorf("shortScore(%v) = %d, want %d", tt.delta, got, tt.want)
		}
	}
}

func TestDiagnose(t *testing.T) {
	th := DefaultThresholds()
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	pos := examplePosition()

	t.Run("healthy position without greeks", func(t *testing.T) {
		report := Diagnose(pos, nil, nil, th, now)
		if !report.IsSafe {
			t.Error("deep ITM two-year long should be safe")
		}
		if report.Graded {
			t.Error("grade must be omitted without Greeks")
		}
		if len(report.Checks) != 2 {
			t.Fatalf("got %d checks, want time and moneyness", len(report.Checks))
		}
		for _, c := range report.Checks {
			if c.Tier != models.TierPass {
				t.Errorf("check %q = %v, want Pass", c.Code, c.Tier)
			}
		}
	})

	t.Run("short-dated long fails", func(t *testing.T) {
		p := pos
		p.LongLeg.Expiry = now.AddDate(0, 3, 0)
		report := Diagnose(p, nil, nil, th, now)
		if report.IsSafe {
			t.Error("a 90-day long leg should not be safe")
		}
	})

	t.Run("shallow strike warns but stays safe", func(t *testing.T) {
		p := pos
		p.LongLeg.Strike = 85 // moneyness 0.85
		report := Diagnose(p, nil, nil, th, now)
		if !report.IsSafe {
			t.Error("a Warn tier alone must not fail the verdict")
		}
		if report.Worst() != models.TierWarn {
			t.Errorf("Worst = %v, want Warn", report.Worst())
		}
	})

	t.Run("inverted expiries fail", func(t *testing.T) {
		p := pos
		p.LongLeg.Expiry, p.ShortLeg.Expiry = p.ShortLeg.Expiry, p.LongLeg.Expiry
		p.LongLeg.Expiry = now.AddDate(2, 0, 0) // keep the time check passing
		p.ShortLeg.Expiry = now.AddDate(3, 0, 0)
		report := Diagnose(p, nil, nil, th, now)
		if report.IsSafe {
			t.Error("long expiry before short expiry should fail the verdict")
		}
		found := false
		for _, c := range report.Checks {
			if c.Code == "expiry_order" && c.Tier == models.TierFail {
				found = true
			}
		}
		if !found {
			t.Error("expected an expiry_order Fail check")
		}
	})

	t.Run("greeks enable the grade and delta checks", func(t *testing.T) {
		long := &models.Greeks{Delta: 0.92, Theta: -0.01}
		short := &models.Greeks{Delta: 0.30, Theta: -0.05}
		report := Diagnose(pos, long, short, th, now)
		if !report.Graded {
			t.Fatal("expected a grade with both legs' Greeks")
		}
		if report.Grade != models.GradeS {
			t.Errorf("Grade = %v, want S", report.Grade)
		}
		if len(report.Checks) != 4 {
			t.Errorf("got %d checks, want 4 with delta checks appended", len(report.Checks))
		}
	})
}

func TestDaysToExpiry(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if got := DaysToExpiry(now, now.AddDate(0, 0, 400)); got != 400 {
		t.Errorf("DaysToExpiry = %d, want 400", got)
	}
	// Partial days truncate toward zero.
	if got := DaysToExpiry(now, now.Add(36*time.Hour)); got != 1 {
		t.Errorf("DaysToExpiry(36h) = %d, want 1", got)
	}
	if got := DaysToExpiry(now, now.Add(-24*time.Hour)); got != -1 {
		t.Errorf("DaysToExpiry(past) = %d, want -1", got)
	}
}
