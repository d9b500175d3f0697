package analysis

import (
	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/review"
	"github.com/beautifulplanet/safetyserv/scoring"
	"github.com/beautifulplanet/safetyserv/signature"
)

// VideoInput - The full input contract. The engine is agnostic to how the
// transcript and comments were fetched; the caller supplies pre-fetched text.
type VideoInput struct {
	VideoId             string   `json:"video_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Channel             string   `json:"channel"`
	Tags                []string `json:"tags"`
	TranscriptText      string   `json:"transcript_text"`
	TranscriptAvailable bool     `json:"transcript_available"`

	// Community feedback, pre-analyzed by the caller. CommentScore is 0-100
	// with 100 meaning no safety concerns in comments.
	CommentWarnings  []CommentWarning `json:"comment_warnings"`
	CommentScore     int              `json:"comment_score"`
	CommentsAnalyzed int              `json:"comments_analyzed"`
	WarningComments  int              `json:"warning_comments"`
	TopConcerns      []string         `json:"top_concerns"`
}

// CommentWarning - A warning derived from community comments by the caller.
type CommentWarning struct {
	Category string             `json:"category"`
	Severity signature.Severity `json:"severity"`
	Message  string             `json:"message"`
}

// AICommentCategory - The category callers use for generated-content warnings
// derived from comments. Trusted channels have these filtered out.
const AICommentCategory = "AI Content"

// Warning - One user-facing warning in the final result.
type Warning struct {
	Category        string               `json:"category"`
	Severity        signature.Severity   `json:"severity"`
	Message         string               `json:"message"`
	SafeAlternative string               `json:"safe_alternative,omitempty"`
	Source          string               `json:"source,omitempty"`
	Evidence        []match.EvidenceItem `json:"evidence,omitempty"`
}

// Result - The complete analysis outcome. Always fully populated for a
// well-formed input; partial upstream failures degrade scores and warnings but
// never produce an error response.
type Result struct {
	VideoId     string    `json:"video_id"`
	SafetyScore int       `json:"safety_score"`
	Warnings    []Warning `json:"warnings"`

	Categories map[string]scoring.CategoryResult `json:"categories"`
	Summary    string                            `json:"summary"`

	TranscriptAvailable bool   `json:"transcript_available"`
	CommentsAnalyzed    int    `json:"comments_analyzed"`
	WarningComments     int    `json:"comment_warnings"`
	Channel             string `json:"channel"`
	IsTrustedChannel    bool   `json:"is_trusted_channel"`

	// HasAIContent is a flat boolean with no per-detection confidence or
	// reasons: it is sourced from the impossible-content heuristic and
	// community warnings, and anything finer-grained would need frame-level
	// analysis, which this engine does not do. The heuristic's reason surfaces
	// as a warning entry instead.
	HasAIContent bool `json:"has_ai_content"`
	IsDebunking  bool `json:"is_debunking"`

	// MatchedCategories are the raw category ids that produced retained
	// matches; DebunkSearches collects the matched metadata signatures'
	// suggested counter-content queries.
	MatchedCategories []string `json:"matched_categories"`
	DebunkSearches    []string `json:"debunk_searches,omitempty"`

	// Arbitration holds the per-category context-review outcome for every
	// flagged metadata category, including suppressed ones.
	Arbitration map[string]*review.Result `json:"arbitration,omitempty"`

	DeepAnalysis *review.DeepResult `json:"deep_analysis,omitempty"`
}
