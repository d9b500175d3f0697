package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/review"
	"github.com/beautifulplanet/safetyserv/signature"
)

func testConfig() *config.InstanceConfig {
	return &config.InstanceConfig{
		MaxAnalysisTextLength:  50000,
		MaxTitleLength:         500,
		MaxDescriptionLength:   5000,
		MaxTranscriptExcerpt:   3000,
		ScriptEvasionThreshold: 0.5,
		TrustedChannels:        []string{"national geographic", "bbc*", "veritasium"},
	}
}

// A deterministic engine: heuristic-only arbitration, no deep analysis.
func testEngine(t *testing.T) *Engine {
	engine, err := NewEngineWithReviewer(testConfig(), signature.NewDefaultStore(), review.NewReviewerWithProvider(nil))
	assert.NoError(t, err)
	return engine
}

func warningCategories(result *Result) []string {
	categories := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		categories = append(categories, w.Category)
	}
	return categories
}

func TestDebunkingVideoSuppressed(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "Tartaria Truth DEBUNKED: Why This Hidden History is Fake",
		Description:         "debunking the conspiracy theory piece by piece... no evidence for any of it",
		TranscriptText:      "let's look at what historians actually say",
		TranscriptAvailable: true,
	})

	assert.True(t, result.IsDebunking)
	assert.NotContains(t, warningCategories(result), "Misinformation")
	assert.NotNil(t, result.Arbitration["conspiracy"])
	assert.True(t, result.Arbitration["conspiracy"].ShouldSuppress)
	assert.GreaterOrEqual(t, result.SafetyScore, 90)
}

func TestPromotingVideoRetainedAndCapped(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "The HIDDEN Truth About Tartaria",
		Description:         "What they don't want you to know about the great empire",
		TranscriptText:      "the old maps prove everything",
		TranscriptAvailable: true,
	})

	assert.False(t, result.IsDebunking)
	assert.Contains(t, warningCategories(result), "Misinformation")
	assert.Contains(t, result.MatchedCategories, "conspiracy")
	assert.NotEmpty(t, result.DebunkSearches)
	// Medium-severity metadata cap
	assert.LessOrEqual(t, result.SafetyScore, 65)
	assert.False(t, result.Arbitration["conspiracy"].ShouldSuppress)
}

func TestEmptyInputUncertaintyCap(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{VideoId: "vid1"})

	assert.Equal(t, 72, result.SafetyScore)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.TranscriptAvailable)
}

func TestChemicalTitleRedFlagCap(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId: "vid1",
		Title:   "Mix bleach and ammonia for cleaning",
	})

	assert.LessOrEqual(t, result.SafetyScore, 30)
	assert.Contains(t, warningCategories(result), "Chemical")
}

func TestTrustedChannelSkipsAiWarnings(t *testing.T) {
	engine := testEngine(t)
	input := &VideoInput{
		VideoId:             "vid1",
		Title:               "Parrot talks to owner - amazing vocabulary!",
		Channel:             "National Geographic",
		TranscriptText:      "this parrot has an incredible vocabulary",
		TranscriptAvailable: true,
		CommentWarnings: []CommentWarning{
			{Category: AICommentCategory, Severity: signature.SeverityHigh, Message: "Commenters suspect AI"},
		},
		CommentsAnalyzed: 50,
		CommentScore:     90,
	}
	result := engine.Analyze(context.Background(), input)

	assert.True(t, result.IsTrustedChannel)
	assert.False(t, result.HasAIContent)
	assert.NotContains(t, warningCategories(result), AICommentCategory)

	// The same video on an unknown channel gets flagged and capped.
	input.Channel = "Random Clips 4 U"
	result = engine.Analyze(context.Background(), input)
	assert.False(t, result.IsTrustedChannel)
	assert.True(t, result.HasAIContent)
	assert.Contains(t, warningCategories(result), AICommentCategory)
	assert.LessOrEqual(t, result.SafetyScore, 20)
}

func TestTrustedChannelGlobPattern(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "Wildlife documentary",
		Channel:             "BBC Earth",
		TranscriptText:      "the herd migrates north",
		TranscriptAvailable: true,
	})
	assert.True(t, result.IsTrustedChannel)
}

func TestAnimalNearChildCapped(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "My toddler playing with our 10ft python",
		TranscriptText:      "look how gentle he is",
		TranscriptAvailable: true,
	})

	assert.LessOrEqual(t, result.SafetyScore, 10)
	assert.Contains(t, warningCategories(result), "Childcare")
}

func TestTranscriptTriggersProduceWarnings(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "Cleaning hacks",
		TranscriptText:      "for tough stains, mix bleach and ammonia in a bucket",
		TranscriptAvailable: true,
	})

	assert.Contains(t, warningCategories(result), "Chemical")
	assert.Contains(t, result.MatchedCategories, "chemical")
	assert.Less(t, result.SafetyScore, 95)
	for _, w := range result.Warnings {
		if w.Category == "Chemical" {
			assert.NotEmpty(t, w.SafeAlternative)
			assert.Equal(t, signature.SeverityHigh, w.Severity)
		}
	}
}

func TestCommentWarningsAppendedAndLimited(t *testing.T) {
	engine := testEngine(t)
	warnings := make([]CommentWarning, 0, 8)
	for i := 0; i < 8; i++ {
		warnings = append(warnings, CommentWarning{
			Category: "Community",
			Severity: signature.SeverityMedium,
			Message:  "Warning number " + string(rune('a'+i)),
		})
	}
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "A video",
		TranscriptText:      "hello",
		TranscriptAvailable: true,
		CommentWarnings:     warnings,
		CommentsAnalyzed:    100,
		WarningComments:     8,
		CommentScore:        60,
	})

	count := 0
	for _, w := range result.Warnings {
		if w.Category == "Community" {
			count++
		}
	}
	assert.Equal(t, 5, count)
}

func TestSummaryContents(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "Cleaning hacks",
		TranscriptText:      "mix bleach and ammonia",
		TranscriptAvailable: true,
		CommentsAnalyzed:    40,
		WarningComments:     10,
		CommentScore:        70,
		TopConcerns:         []string{"toxic gas", "chemical burns"},
	})

	assert.Contains(t, result.Summary, "10/40 comments")
	assert.Contains(t, result.Summary, "HIGH severity")
	assert.Contains(t, result.Summary, "Top concerns: toxic gas, chemical burns")
	assert.Contains(t, result.Summary, "verify information with trusted sources")
}

func TestSafeVideoSummary(t *testing.T) {
	engine := testEngine(t)
	result := engine.Analyze(context.Background(), &VideoInput{
		VideoId:             "vid1",
		Title:               "How to tie a tie - 4 easy knots",
		TranscriptText:      "start with the wide end on the right",
		TranscriptAvailable: true,
		CommentsAnalyzed:    25,
		CommentScore:        100,
	})

	assert.GreaterOrEqual(t, result.SafetyScore, 90)
	assert.Contains(t, result.Summary, "No safety concerns detected")
	assert.Empty(t, result.Warnings)
}

func TestAnalyzeIdempotent(t *testing.T) {
	engine := testEngine(t)
	input := &VideoInput{
		VideoId:             "vid1",
		Title:               "The HIDDEN Truth About Tartaria",
		Description:         "What they don't want you to know about the great empire",
		TranscriptText:      "the old maps prove everything. mix bleach and ammonia to clean them.",
		TranscriptAvailable: true,
		CommentsAnalyzed:    10,
		CommentScore:        80,
	}

	first := engine.Analyze(context.Background(), input)
	second := engine.Analyze(context.Background(), input)
	assert.Equal(t, first, second)
}
