package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFieldPresence(t *testing.T) {
	present := FieldOf(4.80)
	if v, ok := present.Get(); !ok || v != 4.80 {
		t.Errorf("Get = %v, %v", v, ok)
	}
	if !present.Valid() {
		t.Error("present field reported invalid")
	}

	absent := NoField()
	if absent.Valid() {
		t.Error("absent field reported valid")
	}
	if got := absent.Or(1.5); got != 1.5 {
		t.Errorf("Or = %v, want fallback", got)
	}

	// A present zero is not the same as absent.
	zero := FieldOf(0)
	if !zero.Valid() {
		t.Error("zero must be a present value")
	}
	if got := zero.Or(9); got != 0 {
		t.Errorf("Or on present zero = %v, want 0", got)
	}
}

func TestFieldOfNaN(t *testing.T) {
	if FieldOf(math.NaN()).Valid() {
		t.Error("NaN must ingest as absent")
	}
}

func TestFieldJSON(t *testing.T) {
	q := OptionQuote{
		Strike:            130,
		Bid:               FieldOf(4.80),
		ImpliedVolatility: 0.40,
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back OptionQuote
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v, ok := back.Bid.Get(); !ok || v != 4.80 {
		t.Errorf("Bid = %v, %v", v, ok)
	}
	// Ask was never set and round-trips as null, staying absent.
	if back.Ask.Valid() {
		t.Error("absent Ask became present through JSON")
	}
}

func TestTierOrderingAndText(t *testing.T) {
	if !(TierFail < TierWarn && TierWarn < TierPass) {
		t.Error("tier ordering broken")
	}
	if TierPass.String() != "PASS" || TierFail.String() != "FAIL" || TierWarn.String() != "WARN" {
		t.Errorf("tier strings = %s/%s/%s", TierPass, TierWarn, TierFail)
	}
}

func TestReportWorst(t *testing.T) {
	r := DiagnosticReport{Checks: []Diagnostic{
		{Code: "a", Tier: TierPass},
		{Code: "b", Tier: TierWarn},
		{Code: "c", Tier: TierPass},
	}}
	if r.Worst() != TierWarn {
		t.Errorf("Worst = %v, want Warn", r.Worst())
	}

	r.Checks = append(r.Checks, Diagnostic{Code: "d", Tier: TierFail})
	if r.Worst() != TierFail {
		t.Errorf("Worst = %v, want Fail", r.Worst())
	}

	empty := DiagnosticReport{}
	if empty.Worst() != TierPass {
		t.Errorf("empty Worst = %v, want Pass", empty.Worst())
	}
}
