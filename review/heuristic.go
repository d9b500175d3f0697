package review

import (
	"fmt"
	"regexp"
	"strings"
)

// Scoring contributions for the deterministic debunking scorer. A title signal
// is worth the most since debunkers advertise intent in the title; description
// and transcript signals are capped so keyword-stuffed descriptions cannot buy
// suppression on their own.
const (
	scoreTitlePattern  = 0.4
	scoreTitleKeyword  = 0.3
	scoreDescKeyword   = 0.15
	maxDescKeywords    = 2
	scoreEduSignal     = 0.1
	maxEduSignals      = 2
	scoreTranscriptHit = 0.1
	maxConfidence      = 0.95
	DebunkingThreshold = 0.3
)

var debunkingTitleKeywords = []string{
	"debunk", "debunked", "debunking",
	"fact check", "fact-check", "factcheck",
	"myth", "myths", "mythbusting",
	"busted", "busting",
	"exposed", "exposing",
	"fraud", "fraudulent", "scam",
	"hoax", "hoaxes",
	"fake", "faked",
	"not real", "isn't real", "isnt real",
	"critical look", "critical analysis", "critical thinking",
	"skeptic", "skeptical",
	"disproved", "disproven", "disproving",
	"refuted", "refuting", "refutation",
	"nonsense", "pseudoscience", "pseudo-science",
	"the truth about",
	"explained", "explanation",
	"history of the myth",
	"stop believing", "stop falling for",
	"don't fall for", "don't believe",
	"is it real", "is this real",
	"vs reality", "vs. reality",
	"in 2 minutes", "in two minutes",
}

var debunkingDescriptionKeywords = []string{
	"in this video i debunk",
	"in this video we debunk",
	"let's debunk",
	"let me debunk",
	"is complete nonsense",
	"is pseudoscience",
	"is a hoax",
	"is a scam",
	"is fraudulent",
	"fact-checking",
	"critical examination",
	"has been debunked",
	"has been disproven",
	"has been refuted",
	"thoroughly debunked",
	"no scientific evidence",
	"no credible evidence",
	"lack of evidence",
	"conspiracy theory",
	"conspiracy theories",
	"misinformation",
	"disinformation",
	"internet phenomenon",
	"internet conspiracy",
}

var educationalSignals = []string{
	"professor", "phd", "ph.d", "doctorate",
	"university", "academic", "researcher",
	"peer-reviewed", "peer reviewed",
	"scientific consensus",
	"evidence-based", "evidence based",
	"source:", "sources:", "references:",
	"citation", "citations",
	"study shows", "studies show", "research shows",
}

var transcriptDebunkPhrases = []string{
	"this is false", "this is not true", "this is a myth",
	"this has been debunked", "no evidence", "no scientific basis",
	"this is pseudoscience", "let me explain why this is wrong",
	"this is simply not true", "there is no proof",
	"conspiracy theory", "misinformation",
}

var debunkingTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bdebunk(?:ed|ing|s)?\b`),
	regexp.MustCompile(`\bfact[\s-]?check(?:ed|ing|s)?\b`),
	regexp.MustCompile(`\bmyth(?:s|busting|buster)?\b`),
	regexp.MustCompile(`\bbusted\b`),
	regexp.MustCompile(`\bexposed?\b`),
	regexp.MustCompile(`\bhoax(?:es)?\b`),
	regexp.MustCompile(`\bfraud(?:ulent)?\b`),
	regexp.MustCompile(`\bpseudo[\s-]?science\b`),
	regexp.MustCompile(`\bscam\b`),
	regexp.MustCompile(`\bdisprov(?:ed|en|ing)\b`),
	regexp.MustCompile(`\brefut(?:ed|ing|ation)\b`),
	regexp.MustCompile(`\bskeptic(?:al)?\b`),
	regexp.MustCompile(`\bnonsense\b`),
	regexp.MustCompile(`\bwhy\b.+\bis\s+(?:wrong|fake|bs|nonsense)\b`),
	regexp.MustCompile(`\bstop\s+(?:believing|falling\s+for)\b`),
	regexp.MustCompile(`\bdon'?t\s+(?:fall\s+for|believe)\b`),
	regexp.MustCompile(`\bvs\.?\s*reality\b`),
	regexp.MustCompile(`\bis\s+(?:it|this)\s+real\b`),
	regexp.MustCompile(`\bno[,.]?\s+\w+.{0,20}\b(?:does|do|is|are|will|can)\s*(?:not|n'?t)\b`),
	regexp.MustCompile(`\bspoiler[:\s]+no\b`),
}

// HeuristicResult - Output of the deterministic debunking scorer.
type HeuristicResult struct {
	IsDebunking bool
	Confidence  float64
	Signals     []string
}

// HeuristicIsDebunking - Scores title/description/transcript for debunking
// intent. Fast and free, so it always runs before any model call.
func HeuristicIsDebunking(title string, description string, transcript string) *HeuristicResult {
	title = strings.ToLower(title)
	description = strings.ToLower(description)
	transcript = strings.ToLower(transcript)

	score := 0.0
	signals := make([]string, 0)

	// One strong title pattern caps further title-pattern bonus.
	for _, p := range debunkingTitlePatterns {
		if m := p.FindString(title); m != "" {
			signals = append(signals, fmt.Sprintf("Title contains debunking keyword: '%s'", m))
			score += scoreTitlePattern
			break
		}
	}

	for _, keyword := range debunkingTitleKeywords {
		if strings.Contains(title, keyword) {
			signals = append(signals, fmt.Sprintf("Title contains: '%s'", keyword))
			score += scoreTitleKeyword
			break
		}
	}

	descHits := 0
	for _, keyword := range debunkingDescriptionKeywords {
		if strings.Contains(description, keyword) {
			descHits++
			if descHits <= maxDescKeywords {
				signals = append(signals, fmt.Sprintf("Description contains: '%s'", keyword))
			}
		}
	}
	if descHits > 0 {
		score += min(float64(maxDescKeywords)*scoreDescKeyword, float64(descHits)*scoreDescKeyword)
	}

	// Educational signals live in descriptions and transcripts; a title like
	// "university professor reacts" carries no weight on its own.
	eduHits := 0
	eduText := description + " " + transcript
	for _, signal := range educationalSignals {
		if strings.Contains(eduText, signal) {
			eduHits++
			if eduHits <= maxEduSignals {
				signals = append(signals, fmt.Sprintf("Educational signal: '%s'", signal))
			}
		}
	}
	if eduHits > 0 {
		score += min(float64(maxEduSignals)*scoreEduSignal, float64(eduHits)*scoreEduSignal)
	}

	if transcript != "" {
		for _, phrase := range transcriptDebunkPhrases {
			if strings.Contains(transcript, phrase) {
				signals = append(signals, fmt.Sprintf("Transcript contains: '%s'", phrase))
				score += scoreTranscriptHit
				break
			}
		}
	}

	confidence := min(maxConfidence, score)
	return &HeuristicResult{
		IsDebunking: confidence >= DebunkingThreshold,
		Confidence:  confidence,
		Signals:     signals,
	}
}
