package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

func testConfig() *config.InstanceConfig {
	return &config.InstanceConfig{
		MaxAnalysisTextLength:  50000,
		MaxTitleLength:         500,
		MaxDescriptionLength:   5000,
		ScriptEvasionThreshold: 0.5,
		ScriptEvasionSymbols:   []string{"♈", "♉", "🔮"},
		ScriptEvasionHints:     []string{"tartaria", "nibiru", "zodiac"},
	}
}

func newTestSet(t *testing.T, store *signature.Store) *Set {
	if store == nil {
		store = signature.NewDefaultStore()
	}
	set, err := NewSet(&SetConfig{
		Store:          store,
		InstanceConfig: testConfig(),
	})
	assert.NoError(t, err)
	return set
}

func triggerDetector(t *testing.T, set *Set) *InstancedTriggerDetector {
	for _, d := range set.detectors {
		if td, ok := d.(*InstancedTriggerDetector); ok {
			return td
		}
	}
	t.Fatal("trigger detector not in default pipeline")
	return nil
}

func TestTriggerFirstHitWins(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	records, err := d.CheckText(context.Background(), "today we learn why you should Lock Your Knees and keep knees locked")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "fitness-001", records[0].SignatureId)
	assert.Equal(t, "lock your knees", records[0].MatchedTrigger)
	assert.Equal(t, TypePhrase, records[0].Type)
}

func TestTriggerExclusionVeto(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	records, err := d.CheckText(context.Background(), "never lock your knees during squats")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestTriggerExclusionVetoAppliesToWholeText(t *testing.T) {
	// The exclusion phrase vetoes the signature even when it appears far from the
	// trigger. Documented suppression behavior.
	d := triggerDetector(t, newTestSet(t, nil))
	text := "lock your knees at the top of the lift. also, never lock your car with the engine running"
	records, err := d.CheckText(context.Background(), text)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestDangerPatternsEveryHitRecorded(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	text := "jack the car up on a cinder block, then disable the abs to drift better"
	records, err := d.CheckText(context.Background(), text)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "auto-001", records[0].SignatureId)
	assert.Equal(t, TypeRegex, records[0].Type)
	assert.Equal(t, "auto-002", records[1].SignatureId)
}

func TestDangerPatternCarriesRegulatorySource(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	records, err := d.CheckText(context.Background(), "lift the truck onto a cinder block")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, signature.SeverityHigh, records[0].Severity)
	assert.NotEmpty(t, records[0].Source)
}

func TestTriggerEmptyText(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	records, err := d.CheckText(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestTriggerCaseInsensitive(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	input := &Input{VideoId: "vid1", Transcript: "MIX BLEACH AND AMMONIA for a stronger cleaner"}
	records, err := d.CheckVideo(context.Background(), input)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "chemical-001", records[0].SignatureId)
}

func TestConcernTextScanned(t *testing.T) {
	d := triggerDetector(t, newTestSet(t, nil))
	input := &Input{
		VideoId:     "vid1",
		Transcript:  "a perfectly normal cooking video",
		ConcernText: "commenters warn he says to add water to hot oil",
	}
	records, err := d.CheckVideo(context.Background(), input)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "cooking-001", records[0].SignatureId)
}

func TestSetRunsAllDetectors(t *testing.T) {
	set := newTestSet(t, nil)
	input := &Input{
		VideoId:    "vid1",
		Title:      "The hidden Tartarian empire they erased",
		Transcript: "lock your knees for maximum gains",
	}
	records := set.CheckVideo(context.Background(), input)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.SignatureId)
	}
	assert.Contains(t, ids, "fitness-001")
	assert.Contains(t, ids, "conspiracy")
}
