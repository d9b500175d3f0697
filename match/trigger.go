package match

import (
	"context"
	"strings"

	"github.com/beautifulplanet/safetyserv/signature"
)

const TriggerDetectorName = "TriggerSignatures"

func init() {
	mustRegister(TriggerDetectorName, &TriggerDetector{})
}

// TriggerDetector - The legacy text-trigger matcher. Scans transcript-derived
// text against the store's trigger signatures and danger patterns. Metadata
// signatures are the MetadataDetector's responsibility and are never touched
// here, to avoid double-counting.
type TriggerDetector struct {
}

func (t *TriggerDetector) MakeFor(set *Set) (Instanced, error) {
	return &InstancedTriggerDetector{
		set:     set,
		maxText: set.instanceConfig.MaxAnalysisTextLength,
	}, nil
}

type InstancedTriggerDetector struct {
	set     *Set
	maxText int
}

func (d *InstancedTriggerDetector) Name() string {
	return TriggerDetectorName
}

func (d *InstancedTriggerDetector) CheckVideo(ctx context.Context, input *Input) ([]*Record, error) {
	return d.CheckText(ctx, input.AnalysisText(d.maxText))
}

func (d *InstancedTriggerDetector) CheckText(ctx context.Context, text string) ([]*Record, error) {
	records := make([]*Record, 0)
	if text == "" {
		return records, nil
	}

	// Danger patterns: every pattern is tested independently and every hit is
	// its own match. No short-circuit.
	for _, dp := range d.set.store.DangerPatterns() {
		if dp.Pattern.MatchString(text) {
			records = append(records, &Record{
				SignatureId:    dp.Id,
				Category:       dp.Category,
				Severity:       dp.Severity,
				WarningMessage: dp.WarningMessage,
				Source:         dp.Source,
				Type:           TypeRegex,
				MatchedTrigger: dp.PatternSource,
			})
		}
	}

	// Trigger signatures: triggers are tried in order and the first hit wins.
	for _, sig := range d.set.store.TriggerSignatures() {
		rec := d.firstTriggerHit(sig, text)
		if rec == nil {
			continue
		}
		// One-shot exclusion veto. Note: an exclusion phrase appearing anywhere
		// in the input suppresses the match, even when it is nowhere near the
		// trigger. This over-suppresses "never do X" safety advice followed by
		// actual instructions elsewhere in the same video; the behavior is
		// intentionally preserved pending review with the signature authors.
		if d.excluded(sig, text) {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (d *InstancedTriggerDetector) firstTriggerHit(sig *signature.TriggerSignature, text string) *Record {
	for i, trigger := range sig.Triggers {
		var hit bool
		matchType := TypePhrase
		if sig.IsRegex {
			matchType = TypeRegex
			hit = sig.CompiledTriggers[i] != nil && sig.CompiledTriggers[i].MatchString(text)
		} else {
			hit = strings.Contains(text, strings.ToLower(trigger))
		}
		if hit {
			return &Record{
				SignatureId:     sig.Id,
				Category:        sig.Category,
				Severity:        sig.Severity,
				WarningMessage:  sig.WarningMessage,
				SafeAlternative: sig.SafeAlternative,
				Source:          sig.Source,
				Type:            matchType,
				MatchedTrigger:  trigger,
			}
		}
	}
	return nil
}

func (d *InstancedTriggerDetector) excluded(sig *signature.TriggerSignature, text string) bool {
	for _, exclusion := range sig.Exclusions {
		if strings.Contains(text, strings.ToLower(exclusion)) {
			return true
		}
	}
	return false
}
