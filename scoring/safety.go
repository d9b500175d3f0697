package scoring

import (
	"log"

	"github.com/beautifulplanet/safetyserv/heuristic"
	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/signature"
)

// Overall per-match penalties and the cap ladder. Caps only ever lower the
// running score; their order is fixed and load-bearing.
const (
	penaltyHigh   = 25
	penaltyMedium = 12
	penaltyLow    = 5

	noSignalBaseScore = 95

	transcriptWeight          = 0.6
	commentWeightTranscript   = 0.4
	noTranscriptBaseWeight    = 0.3
	noTranscriptCommentWeight = 0.7

	uncertaintyCap     = 72
	aiContentCap       = 20
	animalNearChildCap = 10
	titleFlagHighCap   = 30
	titleFlagMediumCap = 55

	metadataMediumCap = 65
	metadataLowCap    = 80
)

// Inputs - Everything the safety scorer composes. A pure value; the scorer
// never mutates it.
type Inputs struct {
	Matches    []*match.Record
	Categories map[string]CategoryResult

	// CommentScore is the community warning score, 100 = clean. Defaults to
	// 100 upstream when no comments exist.
	CommentScore        int
	TranscriptAvailable bool
	HasComments         bool
	TrustedChannel      bool

	AIContent       bool
	AnimalNearChild bool
	TitleFlags      []heuristic.Flag
}

// ComputeSafetyScore - Composes all signals into one 0-100 score with fixed
// precedence. Every cap logs its before/after value.
func ComputeSafetyScore(videoId string, in *Inputs) int {
	base := baseMatchScore(in.Matches, in.Categories)

	var score float64
	if in.TranscriptAvailable {
		score = float64(base)*transcriptWeight + float64(in.CommentScore)*commentWeightTranscript
	} else {
		score = float64(base)*noTranscriptBaseWeight + float64(in.CommentScore)*noTranscriptCommentWeight
	}
	running := int(score)

	// Absence of evidence is not safety: no transcript, no comments, and an
	// unknown channel means we simply don't know.
	if !in.TranscriptAvailable && !in.HasComments && !in.TrustedChannel {
		running = applyCap(videoId, "uncertainty", running, uncertaintyCap)
	}

	if in.AIContent {
		running = applyCap(videoId, "ai-content", running, aiContentCap)
	}
	if in.AnimalNearChild {
		running = applyCap(videoId, "animal-near-child", running, animalNearChildCap)
	}
	for _, flag := range in.TitleFlags {
		if flag.Severity == signature.SeverityHigh {
			running = applyCap(videoId, "title-red-flag", running, titleFlagHighCap)
		} else if flag.Severity == signature.SeverityMedium {
			running = applyCap(videoId, "title-red-flag", running, titleFlagMediumCap)
		}
	}

	if capValue, ok := metadataSeverityCap(in.Matches); ok {
		running = applyCap(videoId, "metadata-severity", running, capValue)
	}

	if running < 0 {
		running = 0
	}
	if running > 100 {
		running = 100
	}
	return running
}

func baseMatchScore(matches []*match.Record, categories map[string]CategoryResult) int {
	if len(matches) == 0 {
		return noSignalBaseScore
	}

	base := 100
	for _, m := range matches {
		switch m.Severity {
		case signature.SeverityHigh:
			base -= penaltyHigh
		case signature.SeverityMedium:
			base -= penaltyMedium
		default:
			base -= penaltyLow
		}
	}

	if len(categories) == 0 {
		return clamp(base)
	}
	sum := 0
	for _, c := range categories {
		sum += c.Score
	}
	avg := float64(sum) / float64(len(categories))
	return clamp(int(float64(base)*0.6 + avg*0.4))
}

// metadataSeverityCap - Ceiling derived from the worst metadata match. A heavy
// high-severity match (weight 11+) drives the ceiling down to the floor of 10.
func metadataSeverityCap(matches []*match.Record) (int, bool) {
	maxSeverity := signature.SeverityLow
	maxWeight := 0
	found := false
	for _, m := range matches {
		if m.Type != match.TypeMetadata {
			continue
		}
		found = true
		if m.Severity.Rank() < maxSeverity.Rank() {
			maxSeverity = m.Severity
		}
		if m.Weight > maxWeight {
			maxWeight = m.Weight
		}
	}
	if !found {
		return 0, false
	}

	switch maxSeverity {
	case signature.SeverityHigh:
		capValue := 45 - 3*maxWeight
		if capValue < 10 {
			capValue = 10
		}
		return capValue, true
	case signature.SeverityMedium:
		return metadataMediumCap, true
	default:
		return metadataLowCap, true
	}
}

func applyCap(videoId string, name string, score int, capValue int) int {
	if score <= capValue {
		return score
	}
	log.Printf("[%s] Applying %s cap: %d -> %d", videoId, name, score, capValue)
	metrics.RecordScoreCap(name)
	return capValue
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
