package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/heuristic"
	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/signature"
)

func matchWith(category string, severity signature.Severity) *match.Record {
	return &match.Record{
		SignatureId: category + "-test",
		Category:    category,
		Severity:    severity,
		Type:        match.TypePhrase,
	}
}

func metadataMatch(severity signature.Severity, weight int) *match.Record {
	return &match.Record{
		SignatureId: "meta-test",
		Category:    "conspiracy",
		Severity:    severity,
		Type:        match.TypeMetadata,
		Weight:      weight,
	}
}

func TestAnalyzeCategories(t *testing.T) {
	store := signature.NewDefaultStore()
	matches := []*match.Record{
		matchWith("chemical", signature.SeverityHigh),
		matchWith("chemical", signature.SeverityMedium),
		matchWith("cooking", signature.SeverityLow),
	}
	results := AnalyzeCategories(store, matches)

	chemical := results["Chemical"]
	assert.True(t, chemical.Flagged)
	assert.Equal(t, 55, chemical.Score)

	cooking := results["Cooking"]
	assert.True(t, cooking.Flagged)
	assert.Equal(t, 95, cooking.Score)

	fitness := results["Fitness"]
	assert.False(t, fitness.Flagged)
	assert.Equal(t, 100, fitness.Score)
}

func TestNoMatchesHighScore(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	// 0.6*95 + 0.4*100
	assert.Equal(t, 97, score)
}

func TestUncertaintyCapNoEvidence(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore: 100,
	})
	assert.Equal(t, uncertaintyCap, score)
}

func TestUncertaintyCapSkippedForTrustedChannel(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:   100,
		TrustedChannel: true,
	})
	assert.Greater(t, score, uncertaintyCap)
}

func TestSeverityPenalties(t *testing.T) {
	matches := []*match.Record{
		matchWith("chemical", signature.SeverityHigh),
		matchWith("fitness", signature.SeverityMedium),
	}
	score := ComputeSafetyScore("vid1", &Inputs{
		Matches:             matches,
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	// base = 100-25-12 = 63, then 0.6*63 + 0.4*100 = 77
	assert.Equal(t, 77, score)
}

func TestCategoryBlend(t *testing.T) {
	matches := []*match.Record{matchWith("chemical", signature.SeverityHigh)}
	categories := map[string]CategoryResult{
		"Chemical": {Flagged: true, Score: 70},
		"Cooking":  {Score: 100},
	}
	score := ComputeSafetyScore("vid1", &Inputs{
		Matches:             matches,
		Categories:          categories,
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	// base = 0.6*75 + 0.4*85 = 79, then 0.6*79 + 0.4*100 = 87
	assert.Equal(t, 87, score)
}

func TestCommentWeightShiftWithoutTranscript(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore: 40,
		HasComments:  true,
	})
	// 0.3*95 + 0.7*40 = 56
	assert.Equal(t, 56, score)
}

func TestAiContentCap(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
		AIContent:           true,
	})
	assert.Equal(t, aiContentCap, score)
}

func TestAnimalNearChildCapIsLowest(t *testing.T) {
	score := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
		AIContent:           true,
		AnimalNearChild:     true,
	})
	assert.Equal(t, animalNearChildCap, score)
}

func TestTitleRedFlagCaps(t *testing.T) {
	high := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
		TitleFlags: []heuristic.Flag{
			{Category: "chemical", Severity: signature.SeverityHigh},
		},
	})
	assert.Equal(t, titleFlagHighCap, high)

	medium := ComputeSafetyScore("vid1", &Inputs{
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
		TitleFlags: []heuristic.Flag{
			{Category: "medical", Severity: signature.SeverityMedium},
		},
	})
	assert.Equal(t, titleFlagMediumCap, medium)
}

func TestMetadataSeverityCap(t *testing.T) {
	// High severity, weight 5: cap = 45 - 15 = 30
	score := ComputeSafetyScore("vid1", &Inputs{
		Matches:             []*match.Record{metadataMatch(signature.SeverityHigh, 5)},
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	assert.Equal(t, 30, score)

	// Heavy high-severity match floors at 10
	score = ComputeSafetyScore("vid1", &Inputs{
		Matches:             []*match.Record{metadataMatch(signature.SeverityHigh, 15)},
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	assert.Equal(t, 10, score)

	// Medium severity caps at 65
	score = ComputeSafetyScore("vid1", &Inputs{
		Matches:             []*match.Record{metadataMatch(signature.SeverityMedium, 5)},
		CommentScore:        100,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	assert.Equal(t, metadataMediumCap, score)
}

func TestCapsOnlyLower(t *testing.T) {
	// A score already below the medium metadata cap stays untouched.
	matches := []*match.Record{
		metadataMatch(signature.SeverityMedium, 5),
		matchWith("chemical", signature.SeverityHigh),
		matchWith("chemical", signature.SeverityHigh),
		matchWith("medical", signature.SeverityHigh),
	}
	score := ComputeSafetyScore("vid1", &Inputs{
		Matches:             matches,
		CommentScore:        20,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	assert.LessOrEqual(t, score, metadataMediumCap)
	assert.GreaterOrEqual(t, score, 0)
}

func TestScoreClamped(t *testing.T) {
	matches := make([]*match.Record, 0, 10)
	for i := 0; i < 10; i++ {
		matches = append(matches, matchWith("chemical", signature.SeverityHigh))
	}
	score := ComputeSafetyScore("vid1", &Inputs{
		Matches:             matches,
		CommentScore:        0,
		TranscriptAvailable: true,
		HasComments:         true,
	})
	assert.Equal(t, 0, score)
}
