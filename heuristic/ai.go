package heuristic

import (
	"regexp"
	"strings"

	"github.com/beautifulplanet/safetyserv/match"
)

type reasonPattern struct {
	pattern *regexp.Regexp
	reason  string
}

// Titles describing animals doing things animals cannot do. Generated video
// almost always advertises itself this way, so the patterns target the trope
// vocabulary rather than trying to detect synthesis artifacts.
var impossiblePatterns = []reasonPattern{
	{regexp.MustCompile(`\b(parrot|bird|cat|dog|monkey|ape|gorilla|chimp|elephant|lion|tiger|bear|fox|raccoon|squirrel|rabbit|hamster|horse|cow|pig|chicken|duck|goose|owl|crow|raven|fish|shark|whale|dolphin|seal|penguin|frog|turtle|snake|lizard|gecko|iguana|crocodile|alligator)\b.{0,40}\b(talk|talking|speaks|speaking|says|said|conversation|chat|chatting|argue|arguing|debate|interview|podcast|answer|respond|tells|told|ask|asking|wants|demanded|yells|screaming|complain|rant|confess|admit|explain|announce|declare|insist|refuse|agree|disagree)\b`),
		"Animal appearing to communicate like a human"},
	{regexp.MustCompile(`\b(talk|talking|speaks|speaking|says|said|conversation|chat|chatting|argue|arguing|debate|interview|podcast|answer|respond|tells|told|ask|asking|wants|demanded|yells|screaming|complain|rant|confess|admit|explain|announce|declare|insist|refuse|agree|disagree)\b.{0,40}\b(parrot|bird|cat|dog|monkey|ape|gorilla|chimp|elephant|lion|tiger|bear|fox|raccoon|squirrel|rabbit|hamster|horse|cow|pig|chicken|duck|goose|owl|crow|raven|fish|shark|whale|dolphin|seal|penguin|frog|turtle|snake|lizard|gecko|iguana|crocodile|alligator)\b`),
		"Animal appearing to communicate like a human"},
	{regexp.MustCompile(`\b(parrot|bird|cat|dog|monkey|gorilla|raccoon|fox|bear|elephant|lion|tiger)\b.{0,20}\b(wants|needs|demands|orders|requests|insists|refuses|complains)\b.{0,20}\b(fbi|police|911|lawyer|manager|refund|divorce|custody|money|revenge)\b`),
		"Animal demanding human services"},
	{regexp.MustCompile(`\b(cat|dog|bird|parrot|monkey|bear|lion|tiger|elephant|gorilla|raccoon|fox|squirrel|rabbit|fish|penguin|owl)\b.{0,30}\b(drive|driving|drove|cook|cooking|cooked|play piano|playing piano|type|typing|typed|text|texting|texted|email|emailing|read|reading|write|writing|wrote|paint|painting|painted|sing|singing|sang|dance|dancing|danced|ballet|opera|graduate|graduating|married|wedding|divorce|court|sue|lawsuit)\b`),
		"Animal performing impossible human activity"},
	{regexp.MustCompile(`\b(cat|dog|bird|parrot|raccoon|monkey|bear)\b.{0,20}\b(lawyer|doctor|chef|pilot|driver|ceo|manager|employee|boss|judge|cop|officer|agent|detective)\b`),
		"Animal with human profession"},
	{regexp.MustCompile(`\b(cat|dog|bird|mouse|rabbit|hamster|fish|parrot)\b.{0,30}\b(save|saves|saved|rescue|rescues|rescued|hero|call 911|calls 911|called 911|call police|calls police|ambulance|fire department)\b`),
		"Animal performing heroic human actions"},
	{regexp.MustCompile(`\b(animal|cat|dog|bird|parrot)\b.{0,20}\b(facetime|video call|zoom|teams call|skype)\b`),
		"Animal on video call"},
	{regexp.MustCompile(`\b(cat|dog|parrot|bird)\b.{0,20}\b(order|ordering|ordered|uber|doordash|pizza|food delivery|amazon|online shopping)\b`),
		"Animal ordering services"},
	{regexp.MustCompile(`\b(cat|dog|parrot|bird|raccoon|monkey)\b.{0,30}\b(court|trial|testif|lawyer|sue|custody|arrested|jail|prison|fbi|cia|police|detective|investigate)`),
		"Animal in legal or dramatic situation"},
	{regexp.MustCompile(`\b(cat|dog|parrot|bird|raccoon)\b.{0,20}\b(breakup|broke up|cheating|cheated|divorce|married|wedding|pregnant|baby daddy|custody battle)\b`),
		"Animal in human relationship drama"},
}

// Hashtags that routinely accompany generated animal content. One alone is too
// weak (real bird channels use #talkingbird), two distinct ones are enough.
var aiHashtagDenylist = []string{
	"#aigenerated", "#aivideo", "#aianimals", "#aiart", "#sora",
	"#midjourney", "#talkingbird", "#talkinganimals", "#talkingdog",
	"#talkingcat", "#animalvoiceover",
}

var suspiciousChannelPattern = regexp.MustCompile(`\b(talk(ing)?\s+(with|to)|ai\s+(animals?|pets?|generated)|voiceover)\b`)

// Tags the uploader sets themselves; an explicit denylist hit flags outright.
var aiTagDenylist = []string{
	"talking parrot", "talking animal", "talking dog", "talking cat",
	"ai generated", "ai video", "animal voiceover", "sora",
}

// DetectImpossibleContent - Flags titles and metadata that describe generated
// animal content. Returns the human-readable reason and true on a hit.
func (c *Classifiers) DetectImpossibleContent(title string, description string, channel string, tags []string) (string, bool) {
	title = match.Truncate(strings.ToLower(title), c.maxTitle)
	description = match.Truncate(strings.ToLower(description), c.maxDesc)
	channel = strings.ToLower(channel)

	for _, p := range impossiblePatterns {
		if p.pattern.MatchString(title) {
			return p.reason, true
		}
	}

	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, bad := range aiTagDenylist {
			if strings.Contains(lowered, bad) {
				return "Video tag associated with generated animal content", true
			}
		}
	}

	hashtagHits := 0
	haystack := title + " " + description
	for _, tag := range aiHashtagDenylist {
		if strings.Contains(haystack, tag) {
			hashtagHits++
		}
	}
	if hashtagHits >= 2 {
		return "Multiple hashtags associated with generated content", true
	}
	if hashtagHits == 1 && suspiciousChannelPattern.MatchString(channel) {
		return "Generated-content hashtag on a suspicious channel", true
	}

	return "", false
}
