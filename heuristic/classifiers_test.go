package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

func testClassifiers() *Classifiers {
	return NewClassifiers(&config.InstanceConfig{
		MaxTitleLength:       500,
		MaxDescriptionLength: 5000,
	})
}

func TestImpossibleContentTalkingAnimal(t *testing.T) {
	c := testClassifiers()
	reason, ok := c.DetectImpossibleContent("Parrot says hello to owner", "", "", nil)
	assert.True(t, ok)
	assert.NotEmpty(t, reason)
}

func TestImpossibleContentRealBehaviorNotFlagged(t *testing.T) {
	c := testClassifiers()
	_, ok := c.DetectImpossibleContent("Parrot mimics doorbell sound", "", "", nil)
	assert.False(t, ok, "mimicking is real parrot behavior")

	_, ok = c.DetectImpossibleContent("Training my dog to shake hands", "", "", nil)
	assert.False(t, ok)
}

func TestImpossibleContentAiTropes(t *testing.T) {
	c := testClassifiers()
	for _, title := range []string{
		"My cat answered the facetime call",
		"Dog ordering pizza on doordash",
		"Cat goes to court for custody battle",
	} {
		_, ok := c.DetectImpossibleContent(title, "", "", nil)
		assert.True(t, ok, title)
	}
}

func TestImpossibleContentHashtagThreshold(t *testing.T) {
	c := testClassifiers()
	_, ok := c.DetectImpossibleContent("Cute bird video", "#talkingbird", "", nil)
	assert.False(t, ok, "a single hashtag is too weak on its own")

	reason, ok := c.DetectImpossibleContent("Cute bird video", "#talkingbird #aigenerated", "", nil)
	assert.True(t, ok)
	assert.Contains(t, reason, "hashtags")
}

func TestImpossibleContentHashtagPlusSuspiciousChannel(t *testing.T) {
	c := testClassifiers()
	_, ok := c.DetectImpossibleContent("Cute birds", "#talkingbird", "Talk With Rico", nil)
	assert.True(t, ok)
}

func TestImpossibleContentTagDenylist(t *testing.T) {
	c := testClassifiers()
	_, ok := c.DetectImpossibleContent("Bird video", "", "", []string{"talking parrot", "funny"})
	assert.True(t, ok)
}

func TestAnimalNearChildBothWordOrders(t *testing.T) {
	c := testClassifiers()
	for _, title := range []string{
		"My toddler playing with our 10ft python",
		"Wolf plays gently with our toddler",
		"Pitbull guards sleeping baby",
	} {
		_, ok := c.DetectDangerousAnimalNearChild(title, "", nil)
		assert.True(t, ok, title)
	}
}

func TestAnimalNearChildSuffocationRisk(t *testing.T) {
	c := testClassifiers()
	reason, ok := c.DetectDangerousAnimalNearChild("Our cat sleeps next to our newborn's face every night", "", nil)
	assert.True(t, ok)
	assert.Contains(t, reason, "suffocation")

	_, ok = c.DetectDangerousAnimalNearChild("Our macaw sits on the baby's crib", "", nil)
	assert.True(t, ok)
}

func TestAnimalNearChildSafeContent(t *testing.T) {
	c := testClassifiers()
	for _, title := range []string{
		"Kids feeding ducks at the park",
		"My 8 year old loves his pet hamster",
	} {
		_, ok := c.DetectDangerousAnimalNearChild(title, "", nil)
		assert.False(t, ok, title)
	}
}

func TestTitleRedFlagsCategories(t *testing.T) {
	c := testClassifiers()
	cases := []struct {
		title    string
		category string
		severity signature.Severity
	}{
		{"How to cure cancer naturally with herbs", "medical", signature.SeverityHigh},
		{"What happens when you mix bleach and ammonia", "chemical", signature.SeverityHigh},
		{"How to make a homemade flamethrower", "diy", signature.SeverityHigh},
		{"Racing on public highway at 120mph", "driving", signature.SeverityHigh},
		{"Street racing through downtown at 120mph", "driving", signature.SeverityHigh},
		{"Deep frying a frozen turkey", "cooking", signature.SeverityHigh},
	}
	for _, tc := range cases {
		flags := c.DetectTitleRedFlags(tc.title)
		assert.NotEmpty(t, flags, tc.title)
		assert.Equal(t, tc.category, flags[0].Category, tc.title)
		assert.Equal(t, tc.severity, flags[0].Severity, tc.title)
	}
}

func TestTitleRedFlagsBoundedGap(t *testing.T) {
	c := testClassifiers()
	flags := c.DetectTitleRedFlags("How to cure your boredom on a rainy day by fixing things around the house cancer awareness")
	assert.Empty(t, flags, "keywords more than 40 characters apart must not match")
}

func TestTitleRedFlagsDedupByCategorySeverity(t *testing.T) {
	// Both driving word-order patterns match here, but only one flag may be
	// emitted for the shared category:severity key.
	c := testClassifiers()
	flags := c.DetectTitleRedFlags("Street racing through downtown traffic at 120mph")
	driving := 0
	for _, f := range flags {
		if f.Category == "driving" {
			driving++
		}
	}
	assert.Equal(t, 1, driving)
}

func TestTitleRedFlagsSafeTitle(t *testing.T) {
	c := testClassifiers()
	assert.Empty(t, c.DetectTitleRedFlags("How to change a tire step by step"))
}
