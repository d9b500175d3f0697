package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/test"
)

type fakeProvider struct {
	result *Result
	err    error
}

func (f *fakeProvider) ReviewContext(ctx context.Context, subject *Subject) (*Result, error) {
	return f.result, f.err
}

func promotingSubject() *Subject {
	return &Subject{
		VideoId:     "vid1",
		Title:       "The HIDDEN Truth About Tartaria",
		Description: "What they don't want you to know about the great empire",
		Category:    "conspiracy",
	}
}

func debunkingSubject() *Subject {
	return &Subject{
		VideoId:     "vid1",
		Title:       "Tartaria Truth DEBUNKED: Why This Hidden History is Fake",
		Description: "debunking the conspiracy theory... no evidence",
		Category:    "conspiracy",
	}
}

func TestConfidentModelOverridesHeuristic(t *testing.T) {
	r := NewReviewerWithProvider(&fakeProvider{result: &Result{
		Verdict: VerdictDebunking, Confidence: 0.9, IsDangerous: false, Method: "openai",
	}})
	// The heuristic sees a promoting title, but the model is confident.
	result := r.ReviewFlagged(context.Background(), promotingSubject())
	assert.True(t, result.ShouldSuppress)
	assert.False(t, result.HeuristicAgreed)
	assert.Equal(t, "openai", result.Method)
}

func TestConfidentPromotingModelRetainsWarning(t *testing.T) {
	r := NewReviewerWithProvider(&fakeProvider{result: &Result{
		Verdict: VerdictPromoting, Confidence: 0.8, IsDangerous: true, Method: "openai",
	}})
	result := r.ReviewFlagged(context.Background(), promotingSubject())
	assert.False(t, result.ShouldSuppress)
	assert.True(t, result.IsDangerous)
	assert.True(t, result.HeuristicAgreed)
}

func TestLowConfidenceModelWithStrongHeuristicAgreement(t *testing.T) {
	r := NewReviewerWithProvider(&fakeProvider{result: &Result{
		Verdict: VerdictDebunking, Confidence: 0.4, IsDangerous: false, Method: "openai",
	}})
	result := r.ReviewFlagged(context.Background(), debunkingSubject())
	assert.True(t, result.ShouldSuppress)
	assert.Equal(t, "openai+heuristic", result.Method)
	assert.True(t, result.HeuristicAgreed)
	// Max of the two confidences; heuristic is 0.85 here.
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
}

func TestLowConfidenceModelWithWeakHeuristic(t *testing.T) {
	r := NewReviewerWithProvider(&fakeProvider{result: &Result{
		Verdict: VerdictDebunking, Confidence: 0.4, IsDangerous: false, Method: "openai",
	}})
	result := r.ReviewFlagged(context.Background(), promotingSubject())
	assert.False(t, result.ShouldSuppress)
	assert.Equal(t, "heuristic", result.Method)
	assert.Equal(t, VerdictPromoting, result.Verdict)
}

func TestReviewerCombinesModelAndHeuristicEndToEnd(t *testing.T) {
	server := test.MakeOpenAIChatServer(t, "testkey")
	defer server.Close()

	provider, err := NewOpenAIReviewer(reviewerConfig(server.URL))
	assert.NoError(t, err)
	r := NewReviewerWithProvider(provider)

	subject := debunkingSubject()
	subject.Title = test.KeywordVerdictLowConfidence + " " + subject.Title
	result := r.ReviewFlagged(context.Background(), subject)
	assert.True(t, result.ShouldSuppress)
	assert.Equal(t, "openai+heuristic", result.Method)
	assert.True(t, result.HeuristicAgreed)
}

func TestReviewerCapsTranscriptForHeuristic(t *testing.T) {
	r := NewReviewerWithProvider(nil)

	subject := promotingSubject()
	subject.Transcript = "this has been debunked"
	result := r.ReviewFlagged(context.Background(), subject)
	assert.InDelta(t, 0.1, result.Confidence, 0.001)

	// The same phrase buried past the default scan window contributes nothing.
	subject.Transcript = strings.Repeat("filler ", 1000) + "this has been debunked"
	result = r.ReviewFlagged(context.Background(), subject)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestReviewerTranscriptCapConfigurable(t *testing.T) {
	r := &Reviewer{maxTranscript: 16}
	subject := promotingSubject()
	subject.Transcript = "padding padding this has been debunked"
	result := r.ReviewFlagged(context.Background(), subject)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestModelFailureDegradesToHeuristic(t *testing.T) {
	r := NewReviewerWithProvider(&fakeProvider{err: errors.New("upstream timeout")})
	result := r.ReviewFlagged(context.Background(), debunkingSubject())
	assert.NotNil(t, result)
	assert.Equal(t, "heuristic_fallback", result.Method)
	assert.True(t, result.ShouldSuppress)
}

func TestNoProviderHeuristicOnly(t *testing.T) {
	r := NewReviewerWithProvider(nil)

	result := r.ReviewFlagged(context.Background(), debunkingSubject())
	assert.True(t, result.ShouldSuppress)
	assert.Equal(t, "heuristic", result.Method)
	assert.Equal(t, VerdictDebunking, result.Verdict)

	result = r.ReviewFlagged(context.Background(), promotingSubject())
	assert.False(t, result.ShouldSuppress)
	assert.True(t, result.IsDangerous)
}
