package analysis

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	goSet "github.com/deckarep/golang-set"
	"github.com/ryanuber/go-glob"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/heuristic"
	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/review"
	"github.com/beautifulplanet/safetyserv/scoring"
	"github.com/beautifulplanet/safetyserv/signature"
)

const maxCommentWarnings = 5

// Engine - One analysis pipeline bound to a signature store. The engine itself
// is stateless and safe for concurrent use; the only suspend point is the
// optional context-review model call.
type Engine struct {
	cnf         *config.InstanceConfig
	set         *match.Set
	classifiers *heuristic.Classifiers
	reviewer    *review.Reviewer
	deep        *review.DeepAnalyzer
}

func NewEngine(cnf *config.InstanceConfig, store *signature.Store) (*Engine, error) {
	set, err := match.NewSet(&match.SetConfig{
		Store:          store,
		InstanceConfig: cnf,
	})
	if err != nil {
		return nil, errors.Join(errors.New("error creating detector set"), err)
	}
	return &Engine{
		cnf:         cnf,
		set:         set,
		classifiers: heuristic.NewClassifiers(cnf),
		reviewer:    review.NewReviewer(cnf),
		deep:        review.NewDeepAnalyzer(cnf),
	}, nil
}

// NewEngineWithReviewer - For tests that need a deterministic arbitrator.
func NewEngineWithReviewer(cnf *config.InstanceConfig, store *signature.Store, reviewer *review.Reviewer) (*Engine, error) {
	engine, err := NewEngine(cnf, store)
	if err != nil {
		return nil, err
	}
	engine.reviewer = reviewer
	return engine, nil
}

func (e *Engine) Store() *signature.Store {
	return e.set.Store()
}

// Analyze - Runs the full pipeline. Never fails for a well-formed input: every
// degraded path (missing transcript, model failure, broken signature) lowers
// confidence in the output rather than erroring.
func (e *Engine) Analyze(ctx context.Context, input *VideoInput) *Result {
	trusted := e.isTrustedChannel(input.Channel)
	if trusted {
		log.Printf("[%s] Trusted channel: %s - skipping AI-content warnings", input.VideoId, input.Channel)
	}

	// Community AI-content warnings, plus our own heuristic detection. Trusted
	// channels are exempt from both.
	commentWarnings := input.CommentWarnings
	hasAIContent := false
	aiWarnings := make([]Warning, 0, 1)
	if trusted {
		kept := make([]CommentWarning, 0, len(commentWarnings))
		for _, w := range commentWarnings {
			if w.Category != AICommentCategory {
				kept = append(kept, w)
			}
		}
		commentWarnings = kept
	} else {
		for _, w := range commentWarnings {
			if w.Category == AICommentCategory {
				hasAIContent = true
				break
			}
		}
		if input.Title != "" {
			if reason, ok := e.classifiers.DetectImpossibleContent(input.Title, input.Description, input.Channel, input.Tags); ok {
				log.Printf("[%s] Impossible-content heuristic triggered: %s", input.VideoId, reason)
				hasAIContent = true
				aiWarnings = append(aiWarnings, Warning{
					Category: AICommentCategory,
					Severity: signature.SeverityHigh,
					Message:  "Heuristic: " + reason,
				})
			}
		}
	}

	animalReason, animalNearChild := e.classifiers.DetectDangerousAnimalNearChild(input.Title, input.Description, input.Tags)
	titleFlags := e.classifiers.DetectTitleRedFlags(input.Title)

	records := e.set.CheckVideo(ctx, &match.Input{
		VideoId:     input.VideoId,
		Title:       input.Title,
		Description: input.Description,
		Channel:     input.Channel,
		Tags:        input.Tags,
		Transcript:  input.TranscriptText,
		ConcernText: strings.Join(input.TopConcerns, " "),
	})

	records, arbitration, isDebunking := e.arbitrate(ctx, input, records)

	categories := scoring.AnalyzeCategories(e.set.Store(), records)

	commentScore := input.CommentScore
	if input.CommentsAnalyzed == 0 {
		commentScore = 100
	}
	score := scoring.ComputeSafetyScore(input.VideoId, &scoring.Inputs{
		Matches:             records,
		Categories:          categories,
		CommentScore:        commentScore,
		TranscriptAvailable: input.TranscriptAvailable,
		HasComments:         input.CommentsAnalyzed > 0,
		TrustedChannel:      trusted,
		AIContent:           hasAIContent,
		AnimalNearChild:     animalNearChild,
		TitleFlags:          titleFlags,
	})

	warnings := e.assembleWarnings(records, titleFlags, animalReason, animalNearChild, aiWarnings, commentWarnings)

	deepResult := e.deep.AnalyzeTranscript(ctx, input.VideoId, input.Title, input.Description, input.Channel, input.TranscriptText)
	for _, concern := range deepResult.Concerns {
		warnings = append(warnings, Warning{
			Category: concern.Category,
			Severity: concern.Severity,
			Message:  concern.Description,
			Source:   "deep analysis",
		})
	}

	result := &Result{
		VideoId:             input.VideoId,
		SafetyScore:         score,
		Warnings:            warnings,
		Categories:          categories,
		TranscriptAvailable: input.TranscriptAvailable,
		CommentsAnalyzed:    input.CommentsAnalyzed,
		WarningComments:     input.WarningComments,
		Channel:             input.Channel,
		IsTrustedChannel:    trusted,
		HasAIContent:        hasAIContent,
		IsDebunking:         isDebunking,
		MatchedCategories:   matchedCategories(records),
		DebunkSearches:      debunkSearches(records),
		Arbitration:         arbitration,
		DeepAnalysis:        deepResult,
	}
	result.Summary = generateSummary(input, records, categories)
	return result
}

// arbitrate - Runs the context arbitrator once per flagged metadata category
// and drops the metadata matches of suppressed categories. Trigger and danger
// matches are never suppressed here; debunking a theory does not make a
// dangerous instruction safe.
func (e *Engine) arbitrate(ctx context.Context, input *VideoInput, records []*match.Record) ([]*match.Record, map[string]*review.Result, bool) {
	flagged := make(map[string]*signature.MetadataSignature)
	for _, r := range records {
		if r.Type == match.TypeMetadata && r.Metadata != nil {
			if _, ok := flagged[r.Category]; !ok {
				flagged[r.Category] = r.Metadata
			}
		}
	}
	if len(flagged) == 0 {
		return records, nil, false
	}

	arbitration := make(map[string]*review.Result, len(flagged))
	suppressed := goSet.NewSet()
	isDebunking := false
	for category, sig := range flagged {
		t := metrics.StartArbitrationTimer("review")
		outcome := e.reviewer.ReviewFlagged(ctx, &review.Subject{
			VideoId:             input.VideoId,
			Title:               input.Title,
			Description:         input.Description,
			Channel:             input.Channel,
			Transcript:          input.TranscriptText,
			Category:            category,
			CategoryDescription: sig.Description,
		})
		t.ObserveDuration()
		arbitration[category] = outcome
		metrics.RecordArbitrationOutcome(string(outcome.Verdict), outcome.Method, outcome.ShouldSuppress)
		if outcome.ShouldSuppress {
			log.Printf("[%s | %s] Suppressing metadata match: verdict=%s confidence=%.2f method=%s",
				input.VideoId, category, outcome.Verdict, outcome.Confidence, outcome.Method)
			suppressed.Add(category)
			if outcome.Verdict == review.VerdictDebunking {
				isDebunking = true
			}
		}
	}

	kept := make([]*match.Record, 0, len(records))
	for _, r := range records {
		if r.Type == match.TypeMetadata && suppressed.Contains(r.Category) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, arbitration, isDebunking
}

// assembleWarnings - Converts everything into the ordered user-facing warning
// list: signature matches sorted by severity, then title flags, then the
// heuristic and community warnings. Duplicate category:severity:message
// entries are dropped.
func (e *Engine) assembleWarnings(records []*match.Record, titleFlags []heuristic.Flag, animalReason string, animalNearChild bool, aiWarnings []Warning, commentWarnings []CommentWarning) []Warning {
	sorted := make([]*match.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
	})

	warnings := make([]Warning, 0, len(sorted)+len(titleFlags)+len(aiWarnings)+maxCommentWarnings)
	seen := goSet.NewSet()
	add := func(w Warning) {
		key := w.Category + ":" + string(w.Severity) + ":" + w.Message
		if seen.Contains(key) {
			return
		}
		seen.Add(key)
		warnings = append(warnings, w)
	}

	for _, r := range sorted {
		message := r.WarningMessage
		if message == "" {
			message = "Potential safety concern detected"
		}
		add(Warning{
			Category:        e.set.Store().CategoryName(r.Category),
			Severity:        r.Severity,
			Message:         message,
			SafeAlternative: r.SafeAlternative,
			Source:          r.Source,
			Evidence:        r.Evidence,
		})
	}

	for _, flag := range titleFlags {
		add(Warning{
			Category: e.set.Store().CategoryName(flag.Category),
			Severity: flag.Severity,
			Message:  flag.Message,
		})
	}

	if animalNearChild {
		add(Warning{
			Category: e.set.Store().CategoryName("childcare"),
			Severity: signature.SeverityHigh,
			Message:  animalReason,
		})
	}

	for _, w := range aiWarnings {
		add(w)
	}

	count := 0
	for _, cw := range commentWarnings {
		if count >= maxCommentWarnings {
			break
		}
		count++
		add(Warning{
			Category: cw.Category,
			Severity: signature.ParseSeverity(string(cw.Severity), signature.SeverityLow),
			Message:  cw.Message,
			Source:   "community comments",
		})
	}

	return warnings
}

func (e *Engine) isTrustedChannel(channel string) bool {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel == "" {
		return false
	}
	for _, pattern := range e.cnf.TrustedChannels {
		if glob.Glob(strings.ToLower(pattern), channel) {
			return true
		}
	}
	return false
}

func matchedCategories(records []*match.Record) []string {
	set := goSet.NewSet()
	ordered := make([]string, 0)
	for _, r := range records {
		if !set.Contains(r.Category) {
			set.Add(r.Category)
			ordered = append(ordered, r.Category)
		}
	}
	return ordered
}

func debunkSearches(records []*match.Record) []string {
	set := goSet.NewSet()
	searches := make([]string, 0)
	for _, r := range records {
		if r.Type != match.TypeMetadata || r.Metadata == nil {
			continue
		}
		for _, q := range r.Metadata.DebunkSearches {
			if !set.Contains(q) {
				set.Add(q)
				searches = append(searches, q)
			}
		}
	}
	return searches
}
