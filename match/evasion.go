package match

import (
	"strings"
	"unicode"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

// evasionScanner - Detects non-Latin-script evasion: titles rewritten in
// Cyrillic/Greek lookalike characters to slip past keyword matchers while the
// topic is still recognizable from symbols and cross-script hint terms. The
// scan runs against the raw (untransliterated) text on purpose; transliterating
// first would defeat the fraction check.
type evasionScanner struct {
	threshold float64
	symbols   []string
	hints     []string
}

func newEvasionScanner(cnf *config.InstanceConfig) *evasionScanner {
	return &evasionScanner{
		threshold: cnf.ScriptEvasionThreshold,
		symbols:   cnf.ScriptEvasionSymbols,
		hints:     cnf.ScriptEvasionHints,
	}
}

// Scan - Returns the matched hint and true when the title+description looks
// like script evasion for the given signature. Fires only when the majority of
// alphabetic characters are non-ASCII.
func (e *evasionScanner) Scan(title string, description string, sig *signature.MetadataSignature) (string, bool) {
	text := title + " " + description
	if nonAsciiAlphaFraction(text) <= e.threshold {
		return "", false
	}

	for _, sym := range e.symbols {
		if strings.Contains(text, sym) {
			return sym, true
		}
	}

	// Hint terms include the signature's own co-occurrence vocabulary; short
	// terms are skipped as too likely to occur in unrelated non-Latin text.
	for _, hint := range e.hintsFor(sig) {
		if len(hint) >= 5 && strings.Contains(text, hint) {
			return hint, true
		}
	}
	return "", false
}

func (e *evasionScanner) hintsFor(sig *signature.MetadataSignature) []string {
	hints := make([]string, 0, len(e.hints))
	hints = append(hints, e.hints...)
	for _, terms := range sig.WeightedCoOccurrenceGroups() {
		hints = append(hints, terms...)
	}
	return hints
}

// nonAsciiAlphaFraction - The fraction of letters in s outside the ASCII range.
// Non-letters (digits, punctuation, emoji) are ignored entirely.
func nonAsciiAlphaFraction(s string) float64 {
	total := 0
	nonAscii := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		if r > unicode.MaxASCII {
			nonAscii++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nonAscii) / float64(total)
}
