package heuristic

import (
	"regexp"
	"strings"

	"github.com/beautifulplanet/safetyserv/match"
	"github.com/beautifulplanet/safetyserv/signature"
)

type titleFlagPattern struct {
	pattern  *regexp.Regexp
	category string
	severity signature.Severity
	message  string
}

var titleFlagPatterns = []titleFlagPattern{
	// Medical misinformation
	{regexp.MustCompile(`\b(cure[sd]?|heal[sed]*|reverse[sd]?)\b.{0,40}\b(cancer|diabetes|autism|aids|alzheimer|arthritis)\b`),
		"medical", signature.SeverityHigh,
		"Title claims to cure a serious disease"},
	{regexp.MustCompile(`\b(doctors?|big pharma)\b.{0,30}\b(hate|hiding|hides|don'?t want)\b`),
		"medical", signature.SeverityMedium,
		"Title uses medical-establishment conspiracy framing"},
	{regexp.MustCompile(`\b(skip|stop|quit)\b.{0,20}\b(insulin|chemo|chemotherapy|medication|vaccines?)\b`),
		"medical", signature.SeverityHigh,
		"Title encourages stopping prescribed medical treatment"},

	// Chemical hazards
	{regexp.MustCompile(`\bmix(ing|ed)?\b.{0,30}\bbleach\b.{0,30}\b(ammonia|vinegar|acid|cleaner)`),
		"chemical", signature.SeverityHigh,
		"Title describes mixing bleach with reactive chemicals"},
	{regexp.MustCompile(`\bbleach (and|with) (ammonia|vinegar)\b`),
		"chemical", signature.SeverityHigh,
		"Title describes mixing bleach with reactive chemicals"},

	// DIY weapons and fire
	{regexp.MustCompile(`\b(homemade|diy|build(ing)? (a|your own)|make (a|your own))\b.{0,30}\b(flamethrower|taser|stun gun|explosive|thermite|napalm|firework)`),
		"diy", signature.SeverityHigh,
		"Title describes building a weapon or incendiary device"},
	{regexp.MustCompile(`\b(bonfire|burn(ing)?|fireworks?)\b.{0,30}\b(indoors|inside|living room|bedroom)\b`),
		"diy", signature.SeverityMedium,
		"Title describes open flame in an enclosed space"},

	// Dangerous driving, both word orders
	{regexp.MustCompile(`\b(rac(e|ing)|drift(ing)?|speed(ing)?|\d{2,3} ?mph)\b.{0,40}\b(public|highway|street|downtown|traffic|freeway)\b`),
		"driving", signature.SeverityHigh,
		"Title describes dangerous driving on public roads"},
	{regexp.MustCompile(`\b(street|highway|freeway|public road)\b.{0,20}\b(rac(e|ing)|drift(ing)?|speed(ing)?)\b`),
		"driving", signature.SeverityHigh,
		"Title describes dangerous driving on public roads"},

	// Financial scams
	{regexp.MustCompile(`\b(send|give)\b.{0,30}\b(bitcoin|crypto|eth(ereum)?)\b.{0,40}\b(double|back|returns?)\b`),
		"financial", signature.SeverityHigh,
		"Title describes a crypto doubling scam"},
	{regexp.MustCompile(`\bguaranteed\b.{0,20}\b(profit|returns?|income)\b`),
		"financial", signature.SeverityMedium,
		"Title promises guaranteed investment returns"},

	// Unsafe cooking
	{regexp.MustCompile(`\bdeep.?fr(y(ing)?|ied)\b.{0,30}\b(frozen|ice)\b`),
		"cooking", signature.SeverityHigh,
		"Title describes deep frying frozen items, an explosion risk"},
	{regexp.MustCompile(`\b(raw|undercooked)\b.{0,20}\b(chicken|pork|poultry)\b.{0,20}\b(safe|fine|ok)\b`),
		"cooking", signature.SeverityMedium,
		"Title endorses eating undercooked meat"},
}

// DetectTitleRedFlags - Scans a title against the red-flag table. Each
// category+severity pair contributes at most one flag so overlapping patterns
// cannot spam duplicate warnings.
func (c *Classifiers) DetectTitleRedFlags(title string) []Flag {
	title = match.Truncate(strings.ToLower(title), c.maxTitle)

	flags := make([]Flag, 0)
	seen := make(map[string]bool)
	for _, p := range titleFlagPatterns {
		if !p.pattern.MatchString(title) {
			continue
		}
		key := p.category + ":" + string(p.severity)
		if seen[key] {
			continue
		}
		seen[key] = true
		flags = append(flags, Flag{
			Category: p.category,
			Severity: p.severity,
			Message:  p.message,
		})
	}
	return flags
}
