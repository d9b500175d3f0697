package scoring

import (
	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/signature"
)

// Per-match penalty when scoring a single category. Harsher than the overall
// penalties so one high-severity match visibly tanks its category.
var categorySeverityPenalties = map[signature.Severity]int{
	signature.SeverityHigh:   30,
	signature.SeverityMedium: 15,
	signature.SeverityLow:    5,
}

// CategoryResult - Per-category score, 100 safe down to 0.
type CategoryResult struct {
	Emoji   string `json:"emoji"`
	Flagged bool   `json:"flagged"`
	Score   int    `json:"score"`
}

// AnalyzeCategories - Scores every known category against the match list,
// keyed by display name. Categories without matches score 100.
func AnalyzeCategories(store *signature.Store, matches []*match.Record) map[string]CategoryResult {
	results := make(map[string]CategoryResult)
	for id, category := range store.Categories() {
		penalty := 0
		flagged := false
		for _, m := range matches {
			if m.Category != id {
				continue
			}
			flagged = true
			p, ok := categorySeverityPenalties[m.Severity]
			if !ok {
				p = categorySeverityPenalties[signature.SeverityLow]
			}
			penalty += p
		}
		score := 100 - penalty
		if score < 0 {
			score = 0
		}
		results[category.Name] = CategoryResult{
			Emoji:   category.Emoji,
			Flagged: flagged,
			Score:   score,
		}
	}
	return results
}
