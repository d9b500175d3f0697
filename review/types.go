package review

import (
	"context"
)

type Verdict string

const (
	VerdictPromoting   Verdict = "promoting"
	VerdictDebunking   Verdict = "debunking"
	VerdictEducational Verdict = "educational"
	VerdictNeutral     Verdict = "neutral"
	VerdictSatire      Verdict = "satire"
)

// ParseVerdict - Normalizes a model-supplied verdict string. Anything outside
// the known set becomes neutral rather than an error.
func ParseVerdict(s string) Verdict {
	switch Verdict(s) {
	case VerdictPromoting, VerdictDebunking, VerdictEducational, VerdictNeutral, VerdictSatire:
		return Verdict(s)
	default:
		return VerdictNeutral
	}
}

// Subject - The flagged content under review, assembled once per flagged
// category.
type Subject struct {
	VideoId             string
	Title               string
	Description         string
	Channel             string
	Transcript          string
	Category            string
	CategoryDescription string
}

// Result - The arbitration outcome for one flagged category.
type Result struct {
	Verdict    Verdict `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`

	// IsDangerous is always derived from the verdict, never taken from the
	// model's own claim.
	IsDangerous bool `json:"is_dangerous"`

	// Method records which path produced the result: "heuristic", "openai",
	// "openai+heuristic", or "heuristic_fallback" after a model failure.
	Method string `json:"method"`

	ShouldSuppress  bool `json:"should_suppress"`
	HeuristicAgreed bool `json:"heuristic_agreed,omitempty"`
}

// Provider - An external model capable of judging promoting vs debunking.
type Provider interface {
	ReviewContext(ctx context.Context, subject *Subject) (*Result, error)
}
