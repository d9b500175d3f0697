package signature

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawSignature - The on-disk shape of any signature. The three historical forms
// ("triggers", "danger_signatures", metadata) share one document type and are
// resolved into concrete types exactly once at load time, so matching never has
// to sniff shapes.
type rawSignature struct {
	Id              string   `json:"id" yaml:"id"`
	Category        string   `json:"category" yaml:"category"`
	Severity        string   `json:"severity" yaml:"severity"`
	Triggers        []string `json:"triggers" yaml:"triggers"`
	IsRegex         bool     `json:"is_regex" yaml:"is_regex"`
	Exclusions      []string `json:"exclusions" yaml:"exclusions"`
	WarningMessage  string   `json:"warning_message" yaml:"warning_message"`
	SafeAlternative string   `json:"safe_alternative" yaml:"safe_alternative"`
	Source          string   `json:"source" yaml:"source"`

	DangerSignatures []rawDangerEntry `json:"danger_signatures" yaml:"danger_signatures"`

	Name                string              `json:"name" yaml:"name"`
	Description         string              `json:"description" yaml:"description"`
	TitlePatterns       []string            `json:"title_patterns" yaml:"title_patterns"`
	DescriptionPatterns []string            `json:"description_patterns" yaml:"description_patterns"`
	CoOccurrence        map[string][]string `json:"co_occurrence_signals" yaml:"co_occurrence_signals"`
	ChannelSignals      rawChannelSignals   `json:"channel_signals" yaml:"channel_signals"`
	ScriptEvasion       bool                `json:"script_evasion" yaml:"script_evasion"`
	References          []string            `json:"references" yaml:"references"`
	DebunkSearches      []string            `json:"debunk_searches" yaml:"debunk_searches"`
}

type rawDangerEntry struct {
	Id           string `json:"id" yaml:"id"`
	Severity     string `json:"severity" yaml:"severity"`
	Pattern      string `json:"pattern" yaml:"pattern"`
	Message      string `json:"message" yaml:"message"`
	OshaStandard string `json:"osha_standard" yaml:"osha_standard"`
	Law          string `json:"law" yaml:"law"`
	Source       string `json:"source" yaml:"source"`
}

type rawChannelSignals struct {
	KnownBadChannels []string `json:"known_bad_channels" yaml:"known_bad_channels"`
	KnownBadHashtags []string `json:"known_bad_hashtags" yaml:"known_bad_hashtags"`
}

func decodeSignatureFile(name string, b []byte) ([]rawSignature, error) {
	isYaml := strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")

	// Files may hold a single signature document or a list of them.
	many := make([]rawSignature, 0)
	var listErr error
	if isYaml {
		listErr = yaml.Unmarshal(b, &many)
	} else {
		listErr = json.Unmarshal(b, &many)
	}
	if listErr == nil {
		return many, nil
	}

	one := rawSignature{}
	var oneErr error
	if isYaml {
		oneErr = yaml.Unmarshal(b, &one)
	} else {
		oneErr = json.Unmarshal(b, &one)
	}
	if oneErr != nil {
		return nil, fmt.Errorf("%s: not a signature list (%s) or single signature (%s)", name, listErr, oneErr)
	}
	return []rawSignature{one}, nil
}

// compilePattern - Compiles a case-insensitive regex. All matching in the engine
// happens over lowercased text, but (?i) keeps signatures that use uppercase
// literals working too.
func compilePattern(src string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + src)
}

var regexMetachars = `\.+*?()|[]{}^$`

// resolve - Turns a raw signature into exactly one of the concrete forms. An
// invalid regex skips the affected signature (or danger entry) with a logged
// warning rather than failing the load - a broken rule must never take the
// whole database down with it.
func (r *rawSignature) resolve(into *Store) {
	if len(r.DangerSignatures) > 0 {
		for _, entry := range r.DangerSignatures {
			if entry.Pattern == "" {
				continue
			}
			re, err := compilePattern(entry.Pattern)
			if err != nil {
				log.Printf("[signatures] Skipping danger pattern %s (category %s): %s", entry.Id, r.Category, err)
				continue
			}
			source := entry.OshaStandard
			if source == "" {
				source = entry.Law
			}
			if source == "" {
				source = entry.Source
			}
			into.dangerPatterns = append(into.dangerPatterns, &DangerPattern{
				Id:             entry.Id,
				Category:       r.Category,
				Severity:       ParseSeverity(entry.Severity, SeverityMedium),
				PatternSource:  entry.Pattern,
				Pattern:        re,
				WarningMessage: entry.Message,
				Source:         source,
			})
		}
		return
	}

	if len(r.TitlePatterns) > 0 || len(r.DescriptionPatterns) > 0 || len(r.CoOccurrence) > 0 ||
		len(r.ChannelSignals.KnownBadChannels) > 0 || len(r.ChannelSignals.KnownBadHashtags) > 0 {
		meta := &MetadataSignature{
			Category:       r.Category,
			Severity:       ParseSeverity(r.Severity, SeverityMedium),
			Name:           r.Name,
			Description:    r.Description,
			CoOccurrence:   lowerGroups(r.CoOccurrence),
			ScriptEvasion:  r.ScriptEvasion,
			References:     r.References,
			DebunkSearches: r.DebunkSearches,
		}
		for _, src := range r.TitlePatterns {
			re, err := compilePattern(src)
			if err != nil {
				log.Printf("[signatures] Skipping metadata signature %s: bad title pattern '%s': %s", r.Category, src, err)
				return
			}
			meta.TitlePatterns = append(meta.TitlePatterns, Pattern{Source: src, Regex: re})
		}
		for _, src := range r.DescriptionPatterns {
			if !strings.ContainsAny(src, regexMetachars) {
				meta.DescriptionPatterns = append(meta.DescriptionPatterns, Pattern{Source: src})
				continue
			}
			re, err := compilePattern(src)
			if err != nil {
				log.Printf("[signatures] Skipping metadata signature %s: bad description pattern '%s': %s", r.Category, src, err)
				return
			}
			meta.DescriptionPatterns = append(meta.DescriptionPatterns, Pattern{Source: src, Regex: re})
		}
		for _, ch := range r.ChannelSignals.KnownBadChannels {
			meta.KnownBadChannels = append(meta.KnownBadChannels, strings.ToLower(ch))
		}
		for _, tag := range r.ChannelSignals.KnownBadHashtags {
			meta.KnownBadHashtags = append(meta.KnownBadHashtags, strings.ToLower(tag))
		}
		into.metadata = append(into.metadata, meta)
		return
	}

	sig := &TriggerSignature{
		Id:              r.Id,
		Category:        r.Category,
		Severity:        ParseSeverity(r.Severity, SeverityLow),
		Triggers:        r.Triggers,
		IsRegex:         r.IsRegex,
		Exclusions:      r.Exclusions,
		WarningMessage:  r.WarningMessage,
		SafeAlternative: r.SafeAlternative,
		Source:          r.Source,
	}
	if sig.IsRegex {
		sig.CompiledTriggers = make([]*regexp.Regexp, len(sig.Triggers))
		for i, src := range sig.Triggers {
			re, err := compilePattern(src)
			if err != nil {
				log.Printf("[signatures] Skipping trigger signature %s: bad regex '%s': %s", sig.Id, src, err)
				return
			}
			sig.CompiledTriggers[i] = re
		}
	}
	into.triggers = append(into.triggers, sig)
}

func lowerGroups(groups map[string][]string) map[string][]string {
	if groups == nil {
		return nil
	}
	lowered := make(map[string][]string, len(groups))
	for name, terms := range groups {
		lt := make([]string, 0, len(terms))
		for _, term := range terms {
			lt = append(lt, strings.ToLower(term))
		}
		lowered[name] = lt
	}
	return lowered
}
