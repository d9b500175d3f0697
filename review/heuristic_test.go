package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicDebunkingTitle(t *testing.T) {
	result := HeuristicIsDebunking(
		"Tartaria Truth DEBUNKED: Why This Hidden History is Fake",
		"debunking the conspiracy theory piece by piece... no evidence for any of it",
		"")
	assert.True(t, result.IsDebunking)
	// Title pattern + title keyword + one description keyword
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
	assert.NotEmpty(t, result.Signals)
}

func TestHeuristicPromotingTitle(t *testing.T) {
	result := HeuristicIsDebunking(
		"The HIDDEN Truth About Tartaria",
		"What they don't want you to know about the great empire",
		"")
	assert.False(t, result.IsDebunking)
	assert.Less(t, result.Confidence, DebunkingThreshold)
}

func TestHeuristicDescriptionKeywordsCapped(t *testing.T) {
	// Four description keywords, but only two may count.
	result := HeuristicIsDebunking(
		"A video about a theory",
		"misinformation and disinformation, a conspiracy theory, thoroughly debunked",
		"")
	assert.InDelta(t, 0.3, result.Confidence, 0.001)
}

func TestHeuristicEducationalSignalsCapped(t *testing.T) {
	result := HeuristicIsDebunking(
		"A lecture",
		"professor at a university, peer-reviewed researcher, citations below",
		"")
	assert.InDelta(t, 0.2, result.Confidence, 0.001)
	assert.False(t, result.IsDebunking)
}

func TestHeuristicTranscriptFlatBonus(t *testing.T) {
	// Two transcript phrases present, but the bonus is flat.
	result := HeuristicIsDebunking(
		"A video",
		"",
		"this has been debunked many times. there is no proof it ever happened.")
	assert.InDelta(t, 0.1, result.Confidence, 0.001)
}

func TestHeuristicEducationalSignalsInTranscript(t *testing.T) {
	// Educational signals count from the transcript as well as the
	// description, and the combination crosses the debunking threshold.
	result := HeuristicIsDebunking(
		"A video about the theory",
		"people call it a conspiracy theory",
		"as peer-reviewed university research demonstrates")
	assert.True(t, result.IsDebunking)
	// One description keyword + two educational signals
	assert.InDelta(t, 0.35, result.Confidence, 0.001)
}

func TestHeuristicEducationalSignalsIgnoreTitle(t *testing.T) {
	result := HeuristicIsDebunking("University professor reacts to a documentary", "", "")
	assert.False(t, result.IsDebunking)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestHeuristicConfidenceCap(t *testing.T) {
	result := HeuristicIsDebunking(
		"Debunked! Fact check: the myth is busted and exposed",
		"in this video i debunk the conspiracy theory. no scientific evidence. peer-reviewed sources: below. professor interview.",
		"this has been debunked, no evidence at all")
	assert.Equal(t, 0.95, result.Confidence)
	assert.True(t, result.IsDebunking)
}

func TestHeuristicNoSignals(t *testing.T) {
	result := HeuristicIsDebunking("How to bake bread", "A relaxing tutorial", "knead the dough")
	assert.False(t, result.IsDebunking)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.Signals)
}

func TestParseVerdict(t *testing.T) {
	assert.Equal(t, VerdictPromoting, ParseVerdict("promoting"))
	assert.Equal(t, VerdictSatire, ParseVerdict("satire"))
	assert.Equal(t, VerdictNeutral, ParseVerdict("definitely_fine"))
	assert.Equal(t, VerdictNeutral, ParseVerdict(""))
}
