package signature

// The embedded default signature database. These mirror the curated signature
// files shipped alongside the server and are used whenever no signature
// directory is available, so a bare deployment still detects the well-known
// dangerous-advice patterns.

func defaultCategories() map[string]Category {
	return map[string]Category{
		"fitness":    {Name: "Fitness", Emoji: "🏋️", Description: "Exercise and workout safety"},
		"diy":        {Name: "DIY", Emoji: "🔧", Description: "Do-it-yourself project safety"},
		"cooking":    {Name: "Cooking", Emoji: "🍳", Description: "Food preparation and kitchen safety"},
		"electrical": {Name: "Electrical", Emoji: "⚡", Description: "Electrical work and fire safety"},
		"medical":    {Name: "Medical", Emoji: "💊", Description: "Health and medical information"},
		"chemical":   {Name: "Chemical", Emoji: "🧪", Description: "Chemical handling and mixing"},
		"automotive": {Name: "Automotive", Emoji: "🚗", Description: "Vehicle repair and maintenance"},
		"childcare":  {Name: "Childcare", Emoji: "👶", Description: "Child safety and parenting"},
		"conspiracy": {Name: "Misinformation", Emoji: "🌀", Description: "Conspiracy theories and pseudohistory"},
		"financial":  {Name: "Financial", Emoji: "💸", Description: "Scams and risky financial advice"},
	}
}

var defaultSignatures = []rawSignature{
	// ============ Fitness ============
	{
		Id: "fitness-001", Category: "fitness", Severity: "high",
		Triggers:        []string{"lock your knees", "fully extend and lock", "keep knees locked"},
		Exclusions:      []string{"don't lock", "never lock", "avoid locking"},
		WarningMessage:  "Locking knees during exercises can cause hyperextension injuries and joint damage",
		SafeAlternative: "Keep a slight bend in your knees to protect the joint",
		Source:          "ACSM Guidelines",
	},
	{
		Id: "fitness-002", Category: "fitness", Severity: "high",
		Triggers:        []string{"bounce at the bottom", "use momentum to bounce", "bouncing helps lift more"},
		WarningMessage:  "Bouncing during lifts can cause muscle tears and joint injuries",
		SafeAlternative: "Use controlled movements with a pause at the bottom",
		Source:          "NSCA Strength Training Guidelines",
	},
	{
		Id: "fitness-003", Category: "fitness", Severity: "high",
		Triggers:        []string{"arch your back as much as possible", "extreme back arch", "hyperextend your spine"},
		Exclusions:      []string{"slight arch", "natural arch", "neutral spine"},
		WarningMessage:  "Excessive back arching during exercises can cause spinal injuries",
		SafeAlternative: "Maintain a neutral spine with natural curvature",
		Source:          "Physical Therapy Guidelines",
	},
	{
		Id: "fitness-004", Category: "fitness", Severity: "medium",
		Triggers:        []string{"no warm up needed", "skip the warmup", "warming up is a waste"},
		WarningMessage:  "Skipping warmup increases risk of muscle strains and injuries",
		SafeAlternative: "Always warm up for 5-10 minutes before intense exercise",
		Source:          "ACSM Guidelines",
	},
	{
		Id: "fitness-005", Category: "fitness", Severity: "high",
		Triggers:        []string{"behind the neck press", "behind neck pulldown", "pull behind your head"},
		WarningMessage:  "Behind-the-neck movements put extreme stress on shoulder joints and rotator cuffs",
		SafeAlternative: "Perform presses and pulldowns in front of the body",
		Source:          "NSCA Position Statement",
	},

	// ============ DIY ============
	{
		Id: "diy-001", Category: "diy", Severity: "high",
		Triggers:        []string{"galvanized pipe for bbq", "galvanized steel grill", "zinc coated for cooking"},
		WarningMessage:  "DANGER: Heating galvanized metal releases toxic zinc fumes causing metal fume fever",
		SafeAlternative: "Use food-grade stainless steel or plain steel for cooking surfaces",
		Source:          "OSHA Safety Guidelines",
	},
	{
		Id: "diy-002", Category: "diy", Severity: "high",
		Triggers:        []string{"pvc pipe for compressed air", "pvc air compressor line", "plastic pipe pressurized"},
		WarningMessage:  "DANGER: PVC can shatter under pressure, sending shrapnel. Never use for compressed air",
		SafeAlternative: "Use copper, steel, or rated air hose for compressed air systems",
		Source:          "OSHA Compressed Air Safety",
	},
	{
		Id: "diy-003", Category: "diy", Severity: "high",
		Triggers:        []string{"aluminum wiring is fine", "connect aluminum to copper directly", "aluminum wire safe"},
		WarningMessage:  "Improper aluminum wiring connections are a major fire hazard",
		SafeAlternative: "Use proper AL/CU rated connectors or consult a licensed electrician",
		Source:          "NEC Electrical Code",
	},
	{
		Id: "diy-004", Category: "diy", Severity: "medium",
		Triggers:        []string{"pressure treated wood fire", "burn treated lumber", "pressure treated firewood"},
		WarningMessage:  "Burning pressure-treated wood releases toxic chemicals including arsenic",
		SafeAlternative: "Only burn untreated, natural wood",
		Source:          "EPA Guidelines",
	},
	{
		Id: "diy-005", Category: "diy", Severity: "high",
		Triggers:        []string{"mix concrete in plastic bucket", "5 gallon bucket concrete mixer"},
		Exclusions:      []string{"don't mix", "heavy duty", "mixing rated"},
		WarningMessage:  "Standard buckets can fail during mixing, causing injury. Concrete is caustic to skin",
		SafeAlternative: "Use a wheelbarrow or concrete mixing tub with proper PPE",
		Source:          "Construction Safety Guidelines",
	},

	// ============ Cooking ============
	{
		Id: "cooking-001", Category: "cooking", Severity: "high",
		Triggers:        []string{"add water to hot oil", "pour water in grease", "water into frying oil"},
		Exclusions:      []string{"never add water", "don't add water"},
		WarningMessage:  "DANGER: Water in hot oil causes explosive splattering and severe burns",
		SafeAlternative: "Smother oil fires with a lid or baking soda, never water",
		Source:          "Fire Safety Guidelines",
	},
	{
		Id: "cooking-002", Category: "cooking", Severity: "high",
		Triggers:        []string{"raw chicken safe to taste", "pink chicken is fine", "undercooked poultry ok"},
		WarningMessage:  "Undercooked chicken can contain Salmonella and Campylobacter",
		SafeAlternative: "Cook chicken to internal temperature of 165°F (74°C)",
		Source:          "USDA Food Safety",
	},
	{
		Id: "cooking-003", Category: "cooking", Severity: "medium",
		Triggers:        []string{"leave rice out overnight", "room temperature rice safe", "rice doesn't need refrigeration"},
		WarningMessage:  "Cooked rice left at room temperature can grow Bacillus cereus bacteria",
		SafeAlternative: "Refrigerate rice within 1 hour of cooking",
		Source:          "FDA Food Safety Guidelines",
	},
	{
		Id: "cooking-004", Category: "cooking", Severity: "high",
		Triggers:        []string{"thaw meat on counter", "defrost at room temperature", "leave meat out to thaw"},
		WarningMessage:  "Room temperature thawing allows bacteria to multiply rapidly",
		SafeAlternative: "Thaw in refrigerator, cold water, or microwave",
		Source:          "USDA Food Safety",
	},

	// ============ Electrical ============
	{
		Id: "electrical-001", Category: "electrical", Severity: "high",
		Triggers:        []string{"penny in fuse box", "bypass the fuse", "wire around breaker"},
		WarningMessage:  "DANGER: Bypassing electrical protection causes fires and electrocution",
		SafeAlternative: "Replace fuses with correct amperage, call electrician for breaker issues",
		Source:          "NEC Electrical Code",
	},
	{
		Id: "electrical-002", Category: "electrical", Severity: "high",
		Triggers:        []string{"daisy chain power strips", "extension cord to extension cord", "plug strip into strip"},
		WarningMessage:  "Daisy-chaining power strips causes overheating and fires",
		SafeAlternative: "Use a single, properly rated power strip or install more outlets",
		Source:          "NFPA Fire Safety",
	},
	{
		Id: "electrical-003", Category: "electrical", Severity: "high",
		Triggers:        []string{"wire gauge doesn't matter", "any wire will work", "use thinner wire to save money"},
		WarningMessage:  "Undersized wire overheats and causes fires",
		SafeAlternative: "Always use properly rated wire gauge for the amperage",
		Source:          "NEC Electrical Code",
	},

	// ============ Medical ============
	{
		Id: "medical-001", Category: "medical", Severity: "high",
		Triggers:        []string{"drink bleach to detox", "mms miracle mineral", "chlorine dioxide cure"},
		WarningMessage:  "DANGER: Ingesting bleach or chlorine dioxide is toxic and potentially fatal",
		SafeAlternative: "Consult a licensed healthcare provider for detox advice",
		Source:          "FDA Warning",
	},
	{
		Id: "medical-002", Category: "medical", Severity: "high",
		Triggers:        []string{"essential oils cure cancer", "oils replace vaccines", "essential oil antibiotic"},
		WarningMessage:  "Essential oils are not proven treatments for serious diseases",
		SafeAlternative: "Consult healthcare providers for medical treatment",
		Source:          "FDA/FTC Guidelines",
	},
	{
		Id: "medical-003", Category: "medical", Severity: "medium",
		Triggers:        []string{"put butter on burn", "ice directly on burn", "toothpaste on burn"},
		WarningMessage:  "These burn treatments trap heat and can cause infection",
		SafeAlternative: "Run cool (not cold) water over burn, seek medical help for serious burns",
		Source:          "American Red Cross",
	},
	{
		Id: "medical-004", Category: "medical", Severity: "high",
		Triggers:        []string{"tourniquet for any bleeding", "always use tourniquet", "tie off the limb"},
		Exclusions:      []string{"life-threatening", "arterial", "last resort"},
		WarningMessage:  "Improper tourniquet use can cause tissue death and amputation",
		SafeAlternative: "Apply direct pressure first, tourniquet only for life-threatening arterial bleeding",
		Source:          "Stop the Bleed Guidelines",
	},

	// ============ Chemical ============
	{
		Id: "chemical-001", Category: "chemical", Severity: "high",
		Triggers:        []string{"mix bleach and ammonia", "bleach with vinegar", "combine cleaning products"},
		Exclusions:      []string{"never mix", "don't mix", "dangerous to mix"},
		WarningMessage:  "DANGER: Mixing bleach with ammonia or acids creates toxic chlorine gas",
		SafeAlternative: "Never mix cleaning products, use one at a time with ventilation",
		Source:          "CDC Chemical Safety",
	},
	{
		Id: "chemical-002", Category: "chemical", Severity: "high",
		Triggers:        []string{"add water to acid", "pour water into acid"},
		Exclusions:      []string{"never add water to acid", "add acid to water"},
		WarningMessage:  "Adding water to concentrated acid causes violent exothermic reaction",
		SafeAlternative: "Always add acid to water slowly, never the reverse",
		Source:          "OSHA Chemical Safety",
	},

	// ============ Childcare ============
	{
		Id: "childcare-001", Category: "childcare", Severity: "high",
		Triggers:        []string{"baby sleep with blanket", "pillows in crib safe", "bumper pads safe"},
		WarningMessage:  "Soft bedding in cribs increases SIDS and suffocation risk",
		SafeAlternative: "Bare crib with fitted sheet only, no loose bedding",
		Source:          "AAP Safe Sleep Guidelines",
	},
	{
		Id: "childcare-002", Category: "childcare", Severity: "high",
		Triggers:        []string{"honey for infant", "honey safe for babies", "give baby honey"},
		Exclusions:      []string{"no honey under 1", "avoid honey for infants"},
		WarningMessage:  "Honey can cause infant botulism in babies under 12 months",
		SafeAlternative: "No honey for children under 1 year old",
		Source:          "CDC Infant Botulism Prevention",
	},
	{
		Id: "childcare-003", Category: "childcare", Severity: "high",
		Triggers:        []string{"forward facing before 2", "turn car seat around early", "forward facing is fine for infant"},
		WarningMessage:  "Rear-facing car seats provide critical head and neck protection",
		SafeAlternative: "Keep children rear-facing until at least age 2 or max seat weight",
		Source:          "AAP Car Seat Guidelines",
	},

	// ============ Metadata signatures ============
	{
		Category: "conspiracy", Severity: "medium",
		Name:        "Tartaria / mudflood pseudohistory",
		Description: "Claims of a suppressed global empire, mudflood resets, and free-energy architecture",
		TitlePatterns: []string{
			`\btartaria(n)?\b`,
			`\bmud\s?flood\b`,
			`\bhidden history\b.{0,30}\b(empire|reset|civilization)\b`,
		},
		DescriptionPatterns: []string{
			"old world buildings",
			"they don't want you to know",
			`\bfree energy\b.{0,30}\b(architecture|cathedral|building)\b`,
		},
		CoOccurrence: map[string][]string{
			"empire_terms":    {"tartaria", "tartarian", "great tartary"},
			"reset_terms":     {"mudflood", "mud flood", "reset", "melted buildings"},
			"narrative_terms": {"hidden history", "suppressed", "they don't want", "erased from history"},
			"debunk_terms":    {"tartaria conspiracy", "mudflood theory"},
		},
		ChannelSignals: rawChannelSignals{
			KnownBadHashtags: []string{"#tartaria", "#mudflood", "#oldworld", "#hiddenhistory"},
		},
		ScriptEvasion:  true,
		References:     []string{"https://en.wikipedia.org/wiki/Tartary"},
		DebunkSearches: []string{"tartaria debunked", "mudflood explained architecture historian"},
	},
	{
		Category: "medical", Severity: "high",
		Name:        "Miracle cure promotion",
		Description: "Promotion of unproven substances as cures for serious diseases",
		TitlePatterns: []string{
			`\b(cure[sd]?|heal[sed]*)\b.{0,30}\b(cancer|diabetes|autism|aids)\b`,
			`\bdoctors (hate|don't want)\b`,
			`\bbig pharma\b.{0,30}\b(hiding|suppress)`,
		},
		DescriptionPatterns: []string{
			"miracle cure",
			"what doctors won't tell you",
			`\bnatural\b.{0,20}\bcure\b`,
		},
		CoOccurrence: map[string][]string{
			"substance_terms": {"mms", "chlorine dioxide", "colloidal silver", "ivermectin", "turpentine", "borax"},
			"disease_terms":   {"cancer", "diabetes", "autism", "arthritis", "alzheimer"},
			"claim_terms":     {"cure", "heals", "reverses", "eliminates", "detox"},
			"debunk_terms":    {"miracle cure claims"},
		},
		ChannelSignals: rawChannelSignals{
			KnownBadHashtags: []string{"#miraclecure", "#bigpharmalies", "#naturalcure"},
		},
		ScriptEvasion:  true,
		DebunkSearches: []string{"miracle cure scam explained", "fake cancer cures doctor reacts"},
	},
	{
		Category: "financial", Severity: "high",
		Name:        "Get-rich-quick scheme",
		Description: "Guaranteed-return investment schemes and recovery scams",
		TitlePatterns: []string{
			`\bguaranteed\b.{0,20}\b(profit|returns?|income)\b`,
			`\b(double|triple|10x)\b.{0,20}\byour (money|crypto|investment)\b`,
			`\bpassive income\b.{0,30}\bovernight\b`,
		},
		DescriptionPatterns: []string{
			"risk free investment",
			"send crypto to",
			"dm me to invest",
		},
		CoOccurrence: map[string][]string{
			"scheme_terms":  {"guaranteed", "risk free", "no risk", "can't lose"},
			"asset_terms":   {"crypto", "bitcoin", "forex", "binary options", "nft"},
			"urgency_terms": {"act now", "limited spots", "before it's too late", "last chance"},
		},
		ChannelSignals: rawChannelSignals{
			KnownBadHashtags: []string{"#guaranteedprofit", "#riskfree", "#cryptogiveaway"},
		},
		DebunkSearches: []string{"crypto giveaway scam explained", "guaranteed returns scam"},
	},

	// ============ Danger patterns (regulatory form) ============
	{
		Category: "automotive",
		DangerSignatures: []rawDangerEntry{
			{
				Id: "auto-001", Severity: "high",
				Pattern:      `\b(jack|lift)\b.{0,30}\bcinder ?block`,
				Message:      "Cinder blocks can crush without warning and must never support a vehicle",
				OshaStandard: "OSHA 1910.244",
			},
			{
				Id: "auto-002", Severity: "high",
				Pattern: `\bdisable\b.{0,20}\b(abs|airbag|seat ?belt)`,
				Message: "Disabling safety systems is illegal in most jurisdictions and life-threatening",
				Law:     "FMVSS 208",
			},
			{
				Id: "auto-003", Severity: "medium",
				Pattern: `\brun(ning)? (the )?engine\b.{0,30}\b(closed|garage|indoors)\b`,
				Message: "Running an engine in an enclosed space causes carbon monoxide poisoning",
				Source:  "CDC Carbon Monoxide Guidelines",
			},
		},
	},
}
