package review

import (
	"context"
	"log"
	"strings"

	"github.com/beautifulplanet/safetyserv/config"
)

const (
	// Model confidence at or above this overrides the heuristic entirely.
	llmOverrideConfidence = 0.6

	// Below the override bar, a heuristic this confident plus a model leaning
	// the same way still suppresses.
	heuristicAgreementConfidence = 0.5

	maxReportedSignals = 3

	defaultMaxHeuristicTranscript = 5000
)

// Reviewer - The two-phase context arbitrator. Phase 1 is the deterministic
// debunking scorer and always runs; phase 2 is an optional model review. The
// model is accurate but slow and paid, and must never be a single point of
// failure, so every model error degrades to the phase-1 result.
type Reviewer struct {
	provider      Provider
	maxTranscript int
}

func NewReviewer(cnf *config.InstanceConfig) *Reviewer {
	r := &Reviewer{maxTranscript: cnf.MaxHeuristicTranscript}
	if len(cnf.OpenAIApiKey) > 0 {
		provider, err := NewOpenAIReviewer(cnf)
		if err != nil {
			log.Printf("Error creating review provider, running heuristic-only: %s", err)
		} else {
			r.provider = provider
		}
	} else {
		log.Printf("No review API key configured - context arbitration is heuristic-only")
	}
	return r
}

// NewReviewerWithProvider - For tests and alternative providers.
func NewReviewerWithProvider(provider Provider) *Reviewer {
	return &Reviewer{provider: provider}
}

// ReviewFlagged - Arbitrates one flagged category. Never returns nil and never
// fails: the worst case is a heuristic-only result tagged as a fallback.
func (r *Reviewer) ReviewFlagged(ctx context.Context, subject *Subject) *Result {
	// The heuristic only needs the opening of the transcript; debunkers state
	// intent early, and scanning hour-long transcripts adds noise, not signal.
	limit := r.maxTranscript
	if limit <= 0 {
		limit = defaultMaxHeuristicTranscript
	}
	transcript := subject.Transcript
	if len(transcript) > limit {
		transcript = transcript[:limit]
	}

	heuristic := HeuristicIsDebunking(subject.Title, subject.Description, transcript)
	log.Printf("[%s | %s] Heuristic arbitration: debunking=%t confidence=%.2f",
		subject.VideoId, subject.Category, heuristic.IsDebunking, heuristic.Confidence)

	if r.provider != nil {
		modelResult, err := r.provider.ReviewContext(ctx, subject)
		if err != nil {
			log.Printf("[%s | %s] Model review failed, falling back to heuristic: %s",
				subject.VideoId, subject.Category, err)
			result := r.heuristicResult(heuristic)
			result.Method = "heuristic_fallback"
			return result
		}

		if modelResult.Confidence >= llmOverrideConfidence {
			modelResult.ShouldSuppress = !modelResult.IsDangerous
			modelResult.HeuristicAgreed = heuristic.IsDebunking == !modelResult.IsDangerous
			return modelResult
		}

		if heuristic.IsDebunking && heuristic.Confidence >= heuristicAgreementConfidence {
			return &Result{
				Verdict:         VerdictDebunking,
				Confidence:      max(modelResult.Confidence, heuristic.Confidence),
				Reasoning:       "Model and heuristic agree: debunking. Model: " + modelResult.Reasoning,
				IsDangerous:     false,
				Method:          modelResult.Method + "+heuristic",
				ShouldSuppress:  true,
				HeuristicAgreed: true,
			}
		}
	}

	return r.heuristicResult(heuristic)
}

func (r *Reviewer) heuristicResult(heuristic *HeuristicResult) *Result {
	shouldSuppress := heuristic.IsDebunking && heuristic.Confidence >= DebunkingThreshold

	reasoning := "No debunking signals found"
	if len(heuristic.Signals) > 0 {
		signals := heuristic.Signals
		if len(signals) > maxReportedSignals {
			signals = signals[:maxReportedSignals]
		}
		reasoning = "Heuristic: " + strings.Join(signals, "; ")
	}

	verdict := VerdictPromoting
	if heuristic.IsDebunking {
		verdict = VerdictDebunking
	}

	return &Result{
		Verdict:        verdict,
		Confidence:     heuristic.Confidence,
		Reasoning:      reasoning,
		IsDangerous:    !shouldSuppress,
		Method:         "heuristic",
		ShouldSuppress: shouldSuppress,
	}
}
