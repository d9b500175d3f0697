package match

import (
	"context"
	"fmt"
	"strings"

	goSet "github.com/deckarep/golang-set"
	"github.com/ryanuber/go-glob"

	"github.com/beautifulplanet/safetyserv/signature"
)

const MetadataDetectorName = "MetadataSignatures"

// Signal weights and the match threshold. Each signal contributes at most once
// per signature; a signature only matches when the accumulated weight reaches
// the threshold. No single signal is fully evasion-proof, so detection relies
// on corroboration across independently-evadable signal types.
const (
	weightTitlePattern       = 3
	weightDescriptionPattern = 2
	weightCoOccurrence       = 4
	weightKnownBadChannel    = 5
	weightKnownBadHashtag    = 3
	weightScriptEvasion      = 3

	// MatchWeightThreshold - One real signal (the weakest being a description
	// phrase at +2) is enough; incidental overlap below that never fires.
	MatchWeightThreshold = 2

	maxCoOccurrenceEvidence = 3
)

func init() {
	mustRegister(MetadataDetectorName, &MetadataDetector{})
}

// MetadataDetector - The multi-signal metadata matcher. For every metadata
// signature it accumulates an integer weight from independent signals over
// title/description/channel/tags/transcript and emits a match when the weight
// reaches MatchWeightThreshold.
type MetadataDetector struct {
}

func (m *MetadataDetector) MakeFor(set *Set) (Instanced, error) {
	return &InstancedMetadataDetector{
		set:      set,
		evasion:  newEvasionScanner(set.instanceConfig),
		maxText:  set.instanceConfig.MaxAnalysisTextLength,
		maxTitle: set.instanceConfig.MaxTitleLength,
		maxDesc:  set.instanceConfig.MaxDescriptionLength,
	}, nil
}

type InstancedMetadataDetector struct {
	set      *Set
	evasion  *evasionScanner
	maxText  int
	maxTitle int
	maxDesc  int
}

func (d *InstancedMetadataDetector) Name() string {
	return MetadataDetectorName
}

func (d *InstancedMetadataDetector) CheckVideo(ctx context.Context, input *Input) ([]*Record, error) {
	title := Truncate(strings.ToLower(input.Title), d.maxTitle)
	description := Truncate(strings.ToLower(input.Description), d.maxDesc)
	channel := strings.ToLower(strings.TrimSpace(input.Channel))
	cooccurrence := input.CoOccurrenceText(d.maxText)
	combined := input.CombinedText(d.maxText)

	records := make([]*Record, 0)
	for _, sig := range d.set.store.MetadataSignatures() {
		rec := d.checkSignature(sig, title, description, channel, cooccurrence, combined)
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (d *InstancedMetadataDetector) checkSignature(sig *signature.MetadataSignature, title string, description string, channel string, cooccurrence string, combined string) *Record {
	weight := 0
	reasons := make([]string, 0)
	evidence := make([]EvidenceItem, 0)

	// 1. Title patterns: first hit wins, then stop scanning title patterns.
	for _, p := range sig.TitlePatterns {
		if p.Regex.MatchString(title) {
			weight += weightTitlePattern
			reasons = append(reasons, fmt.Sprintf("title pattern '%s'", p.Source))
			evidence = append(evidence, EvidenceItem{Type: EvidenceTitle, Label: "Title pattern", Value: p.Source})
			break
		}
	}

	// 2. Description patterns: first hit wins. Regex or literal is decided at
	// load time.
	for _, p := range sig.DescriptionPatterns {
		if p.MatchString(description) {
			weight += weightDescriptionPattern
			reasons = append(reasons, fmt.Sprintf("description pattern '%s'", p.Source))
			evidence = append(evidence, EvidenceItem{Type: EvidenceDescription, Label: "Description pattern", Value: p.Source})
			break
		}
	}

	// 3. Co-occurrence: hits in two or more distinct term groups are required.
	// A single ambiguous keyword group never satisfies this on its own.
	groupsHit := goSet.NewSet()
	coEvidence := make([]EvidenceItem, 0, maxCoOccurrenceEvidence)
	for name, terms := range sig.WeightedCoOccurrenceGroups() {
		for _, term := range terms {
			if strings.Contains(cooccurrence, term) {
				groupsHit.Add(name)
				if len(coEvidence) < maxCoOccurrenceEvidence {
					coEvidence = append(coEvidence, EvidenceItem{
						Type:  EvidenceCoOccurrence,
						Label: name,
						Value: term,
					})
				}
				break
			}
		}
	}
	if groupsHit.Cardinality() >= 2 {
		weight += weightCoOccurrence
		reasons = append(reasons, fmt.Sprintf("co-occurrence across %d term groups", groupsHit.Cardinality()))
		evidence = append(evidence, coEvidence...)
	}

	// 4. Known-bad channel: case-insensitive exact match.
	for _, bad := range sig.KnownBadChannels {
		if channel != "" && channel == bad {
			weight += weightKnownBadChannel
			reasons = append(reasons, fmt.Sprintf("known-bad channel '%s'", bad))
			evidence = append(evidence, EvidenceItem{Type: EvidenceChannel, Label: "Known channel", Value: bad})
			break
		}
	}

	// 5. Known-bad hashtag: substring (or glob) against the combined text.
	for _, tag := range sig.KnownBadHashtags {
		hit := strings.Contains(combined, tag)
		if !hit && strings.Contains(tag, "*") {
			hit = glob.Glob("*"+tag+"*", combined)
		}
		if hit {
			weight += weightKnownBadHashtag
			reasons = append(reasons, fmt.Sprintf("hashtag '%s'", tag))
			evidence = append(evidence, EvidenceItem{Type: EvidenceHashtag, Label: "Hashtag", Value: tag})
			break
		}
	}

	// 6. Script-evasion fallback: only when the signature opts in and nothing
	// above produced a real signal.
	if sig.ScriptEvasion && weight < MatchWeightThreshold {
		if hint, ok := d.evasion.Scan(title, description, sig); ok {
			weight += weightScriptEvasion
			reasons = append(reasons, fmt.Sprintf("script-evasion hint '%s'", hint))
			evidence = append(evidence, EvidenceItem{Type: EvidenceOther, Label: "Script evasion", Value: hint})
		}
	}

	if weight < MatchWeightThreshold {
		return nil
	}

	return &Record{
		SignatureId:    sig.Category,
		Category:       sig.Category,
		Severity:       sig.Severity,
		WarningMessage: sig.Description,
		Type:           TypeMetadata,
		MatchedTrigger: strings.Join(reasons, "; "),
		MatchedReasons: reasons,
		Weight:         weight,
		Evidence:       evidence,
		Metadata:       sig,
	}
}
