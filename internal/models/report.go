package models

// Tier is an ordered quality level for a single diagnostic check.
type Tier int

const (
	TierFail Tier = iota
	TierWarn
	TierPass
)

func (t Tier) String() string {
	switch t {
	case TierFail:
		return "FAIL"
	case TierWarn:
		return "WARN"
	case TierPass:
		return "PASS"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets Tier render as its name in JSON output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Grade is the composite quality grade assigned when per-leg Greeks are
// available. Ordered worst to best: C < B < A < S.
type Grade int

const (
	GradeC Grade = iota
	GradeB
	GradeA
	GradeS
)

func (g Grade) String() string {
	switch g {
	case GradeS:
		return "S"
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	default:
		return "C"
	}
}

// MarshalText lets Grade render as its letter in JSON output.
func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Diagnostic is one tier-tagged finding about the position.
type Diagnostic struct {
	Code    string `json:"code"`
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

// DiagnosticReport is the ordered rule-evaluation result for a position.
// Grade is only meaningful when Graded is true (Greeks were computable for
// both legs).
type DiagnosticReport struct {
	Checks []Diagnostic `json:"checks"`
	IsSafe bool         `json:"is_safe"`
	Graded bool         `json:"graded"`
	Grade  Grade        `json:"grade"`
}

// Worst returns the lowest tier present among the checks, or TierPass for
// an empty report.
func (r DiagnosticReport) Worst() Tier {
	worst := TierPass
	for _, c := range r.Checks {
		if c.Tier < worst {
			worst = c.Tier
		}
	}
	return worst
}
