package match

import (
	"strings"

	"github.com/beautifulplanet/safetyserv/signature"
)

type Type string

const (
	TypeRegex    Type = "regex"
	TypePhrase   Type = "phrase"
	TypeMetadata Type = "metadata"
)

type EvidenceType string

const (
	EvidenceTitle        EvidenceType = "title"
	EvidenceDescription  EvidenceType = "description"
	EvidenceCoOccurrence EvidenceType = "co_occurrence"
	EvidenceChannel      EvidenceType = "channel"
	EvidenceHashtag      EvidenceType = "hashtag"
	EvidenceOther        EvidenceType = "other"
)

// EvidenceItem - One piece of provenance for a match. Always carries enough to
// show a user exactly what text caused the flag.
type EvidenceItem struct {
	Type  EvidenceType `json:"type"`
	Label string       `json:"label"`
	Value string       `json:"value"`
}

// Record - A single signature hit. Exactly one of the signature references is
// non-nil depending on Type.
type Record struct {
	SignatureId     string
	Category        string
	Severity        signature.Severity
	WarningMessage  string
	SafeAlternative string
	Source          string

	Type           Type
	MatchedTrigger string
	MatchedReasons []string
	Weight         int // metadata matches only
	Evidence       []EvidenceItem

	// Metadata is set for metadata matches so the arbitrator can reach the
	// signature's description and debunk-search hints.
	Metadata *signature.MetadataSignature
}

// Input - Everything a detector may scan. All text fields are raw; detectors
// lowercase and length-cap as needed via the helpers below.
type Input struct {
	VideoId     string
	Title       string
	Description string
	Channel     string
	Tags        []string
	Transcript  string

	// ConcernText is text derived from community comments (top concerns), fed to
	// the trigger matcher alongside the transcript.
	ConcernText string
}

// AnalysisText - Lowercased transcript + derived concern text, capped at max
// runes. This is the legacy trigger matcher's scan target.
func (i *Input) AnalysisText(max int) string {
	text := i.Transcript
	if i.ConcernText != "" {
		text += " " + i.ConcernText
	}
	return Truncate(strings.ToLower(text), max)
}

// CombinedText - Lowercased title + description + tags + transcript, capped.
// Used for hashtag scanning, where uploader tags are a primary carrier.
func (i *Input) CombinedText(max int) string {
	parts := []string{i.Title, i.Description, strings.Join(i.Tags, " "), i.Transcript}
	return Truncate(strings.ToLower(strings.Join(parts, "\n")), max)
}

// CoOccurrenceText - Lowercased title + description + transcript, capped. Tags
// are deliberately excluded from co-occurrence scanning; tag-borne signals are
// the hashtag signal's job.
func (i *Input) CoOccurrenceText(max int) string {
	parts := []string{i.Title, i.Description, i.Transcript}
	return Truncate(strings.ToLower(strings.Join(parts, "\n")), max)
}

// Truncate - Rune-safe prefix truncation. Oversized input is an anomaly handled
// by truncation, never by raising (and a hard bound keeps pathological regex
// inputs cheap).
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
