package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/scoring"
	"github.com/beautifulplanet/safetyserv/signature"
)

const maxSummaryConcerns = 3

// generateSummary - Human-readable rollup of the analysis, assembled in a
// fixed order so identical inputs produce identical summaries.
func generateSummary(input *VideoInput, records []*match.Record, categories map[string]scoring.CategoryResult) string {
	parts := make([]string, 0)

	if !input.TranscriptAvailable {
		parts = append(parts, "⚠️ Could not extract video transcript.")
	}

	if input.CommentsAnalyzed > 0 {
		if input.WarningComments > 0 {
			ratio := float64(input.WarningComments) / float64(input.CommentsAnalyzed) * 100
			parts = append(parts, fmt.Sprintf("👥 Community feedback: %d/%d comments (%.0f%%) contain safety warnings!",
				input.WarningComments, input.CommentsAnalyzed, ratio))
			if len(input.TopConcerns) > 0 {
				concerns := input.TopConcerns
				if len(concerns) > maxSummaryConcerns {
					concerns = concerns[:maxSummaryConcerns]
				}
				parts = append(parts, "Top concerns: "+strings.Join(concerns, ", "))
			}
		} else {
			parts = append(parts, fmt.Sprintf("👥 Analyzed %d comments - no safety warnings found.", input.CommentsAnalyzed))
		}
	} else {
		parts = append(parts, "👥 No comments available for community feedback analysis.")
	}

	if len(records) > 0 {
		counts := map[signature.Severity]int{}
		for _, r := range records {
			counts[r.Severity]++
		}
		if counts[signature.SeverityHigh] > 0 {
			parts = append(parts, fmt.Sprintf("🚨 %d HIGH severity concern(s) detected", counts[signature.SeverityHigh]))
		}
		if counts[signature.SeverityMedium] > 0 {
			parts = append(parts, fmt.Sprintf("⚠️ %d MEDIUM severity concern(s) detected", counts[signature.SeverityMedium]))
		}
		if counts[signature.SeverityLow] > 0 {
			parts = append(parts, fmt.Sprintf("ℹ️ %d LOW severity concern(s) detected", counts[signature.SeverityLow]))
		}

		flagged := make([]string, 0)
		for name, data := range categories {
			if data.Flagged {
				flagged = append(flagged, name)
			}
		}
		sort.Strings(flagged)
		if len(flagged) > 0 {
			parts = append(parts, "Categories with issues: "+strings.Join(flagged, ", "))
		}
	}

	if len(records) == 0 && input.WarningComments == 0 {
		if input.TranscriptAvailable {
			parts = append(parts, "✅ No safety concerns detected based on available data.")
		} else {
			parts = append(parts, "Consider watching with caution as analysis is limited.")
		}
	} else {
		parts = append(parts, "Please review the warnings and verify information with trusted sources before following any advice.")
	}

	return strings.Join(parts, " ")
}
