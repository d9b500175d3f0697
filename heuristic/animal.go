package heuristic

import (
	"regexp"
	"strings"

	"github.com/beautifulplanet/safetyserv/match"
)

// Animals capable of seriously injuring a small child, near child words.
// Every pairing is written in both word orders since natural phrasing varies
// ("toddler with python" vs "python plays with toddler").
var animalChildPatterns = []reasonPattern{
	{regexp.MustCompile(`\b(python|boa|constrictor|snake|pit ?bull|rottweiler|wolf|coyote|alligator|crocodile|bear|tiger|lion|cougar|macaw|horse|bull)s?\b.{0,40}\b(baby|babies|infant|newborn|toddler|child|children|kid|kids)\b`),
		"Large or dangerous animal in close contact with a young child"},
	{regexp.MustCompile(`\b(baby|babies|infant|newborn|toddler|child|children|kid|kids)\b.{0,40}\b(python|boa|constrictor|snake|pit ?bull|rottweiler|wolf|coyote|alligator|crocodile|bear|tiger|lion|cougar|macaw|horse|bull)s?\b`),
		"Large or dangerous animal in close contact with a young child"},
	// Pets sleeping against an infant are a suffocation risk even when the
	// animal itself is harmless.
	{regexp.MustCompile(`\b(cat|dog)s?\b.{0,40}\b(newborn|sleeping (baby|infant)|baby'?s? (face|crib)|crib)\b`),
		"Pet sleeping near an infant is a suffocation risk"},
	{regexp.MustCompile(`\b(newborn|sleeping (baby|infant)|baby'?s? (face|crib)|crib)\b.{0,40}\b(cat|dog)s?\b`),
		"Pet sleeping near an infant is a suffocation risk"},
}

// DetectDangerousAnimalNearChild - Scans title+description+tags for a dangerous
// animal near a young child. Returns the first matching warning or false.
func (c *Classifiers) DetectDangerousAnimalNearChild(title string, description string, tags []string) (string, bool) {
	text := strings.ToLower(strings.Join([]string{
		match.Truncate(title, c.maxTitle),
		match.Truncate(description, c.maxDesc),
		strings.Join(tags, " "),
	}, " "))

	for _, p := range animalChildPatterns {
		if p.pattern.MatchString(text) {
			return p.reason, true
		}
	}
	return "", false
}
