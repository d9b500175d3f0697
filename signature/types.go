package signature

import (
	"regexp"
	"strings"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity - Normalizes a severity string, falling back when the value is
// empty or unrecognized. Signature files are hand-maintained, so unknown values
// are treated as data problems rather than load failures.
func ParseSeverity(s string, fallback Severity) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	default:
		return fallback
	}
}

// Rank - Sort order for severities. Lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// TriggerSignature - The legacy "triggers" signature form. Triggers are tried in
// order and the first hit produces exactly one match. Exclusion phrases found
// anywhere in the input veto that one match.
type TriggerSignature struct {
	Id              string
	Category        string
	Severity        Severity
	Triggers        []string
	IsRegex         bool
	Exclusions      []string
	WarningMessage  string
	SafeAlternative string
	Source          string

	// Compiled triggers, index-aligned with Triggers. Nil entries are literal
	// substring triggers.
	CompiledTriggers []*regexp.Regexp
}

// DangerPattern - One entry of the "danger_signatures" signature form. Each
// pattern is tested independently and every hit is its own match.
type DangerPattern struct {
	Id             string
	Category       string
	Severity       Severity
	PatternSource  string
	Pattern        *regexp.Regexp
	WarningMessage string
	Source         string
}

// Pattern - A description pattern that is either a compiled regex or a literal
// substring, decided once at load time by whether the source contains regex
// metacharacters.
type Pattern struct {
	Source string
	Regex  *regexp.Regexp // nil for literal substring patterns
}

func (p *Pattern) MatchString(text string) bool {
	if p.Regex != nil {
		return p.Regex.MatchString(text)
	}
	return strings.Contains(text, strings.ToLower(p.Source))
}

// ReservedCoOccurrenceGroup - Terms under this group name describe the topic for
// debunk-search and arbitration hints; they never contribute to co-occurrence
// weighting.
const ReservedCoOccurrenceGroup = "debunk_terms"

// MetadataSignature - The multi-signal metadata signature form (§ matcher weights
// are owned by the match package; this is pure data).
type MetadataSignature struct {
	Category    string
	Severity    Severity
	Name        string
	Description string

	TitlePatterns       []Pattern // always regex; Regex non-nil
	DescriptionPatterns []Pattern

	// CoOccurrence maps a group name to its terms. A match requires hits in two
	// or more distinct non-reserved groups.
	CoOccurrence map[string][]string

	KnownBadChannels []string // exact channel names, stored lowercased
	KnownBadHashtags []string // substrings (or globs when they contain '*')

	ScriptEvasion bool

	References     []string
	DebunkSearches []string
}

// WeightedCoOccurrenceGroups - The co-occurrence groups that participate in
// weighting, i.e. all but the reserved group.
func (m *MetadataSignature) WeightedCoOccurrenceGroups() map[string][]string {
	groups := make(map[string][]string, len(m.CoOccurrence))
	for name, terms := range m.CoOccurrence {
		if name == ReservedCoOccurrenceGroup {
			continue
		}
		groups[name] = terms
	}
	return groups
}

// Category - Display information for a safety category.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	Description string `json:"description" yaml:"description"`
}
