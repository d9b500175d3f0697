package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/review"
	"github.com/beautifulplanet/safetyserv/signature"
	"github.com/beautifulplanet/safetyserv/storage"
	"github.com/beautifulplanet/safetyserv/test"
)

func testPool(t *testing.T, db storage.PersistentStorage) (*Pool, *analysis.Engine) {
	cnf := &config.InstanceConfig{
		MaxAnalysisTextLength:  50000,
		MaxTitleLength:         500,
		MaxDescriptionLength:   5000,
		ScriptEvasionThreshold: 0.5,
	}
	engine, err := analysis.NewEngineWithReviewer(cnf, signature.NewDefaultStore(), review.NewReviewerWithProvider(nil))
	assert.NoError(t, err)

	pool, err := NewPool(&PoolConfig{
		ConcurrentPools: 1,
		SizePerPool:     5,
		AnalysisTimeout: 10 * time.Second,
	}, engine, db)
	assert.NoError(t, err)
	assert.NotNil(t, pool)
	return pool, engine
}

func TestPoolAnalyzesAndPersists(t *testing.T) {
	db := test.NewMemoryStorage(t)
	defer db.Close()

	pool, engine := testPool(t, db)
	defer pool.Release()

	ch := make(chan *PoolResult, 1)
	err := pool.Submit(context.Background(), &analysis.VideoInput{
		VideoId:             "vid1",
		Title:               "How to tie a tie",
		TranscriptText:      "start with the wide end",
		TranscriptAvailable: true,
	}, ch)
	assert.NoError(t, err)

	res := <-ch
	assert.NoError(t, res.Err)
	assert.NotNil(t, res.Result)
	assert.Equal(t, "vid1", res.Result.VideoId)

	stored, err := db.GetAnalysis(context.Background(), "vid1")
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, engine.Store().Revision(), stored.SignatureRevision)

	decoded := &analysis.Result{}
	assert.NoError(t, json.Unmarshal(stored.Result, decoded))
	assert.Equal(t, res.Result.SafetyScore, decoded.SafetyScore)
}

func TestPoolReturnsCachedResult(t *testing.T) {
	db := test.NewMemoryStorage(t)
	defer db.Close()

	pool, engine := testPool(t, db)
	defer pool.Release()

	// Seed a stored result under the current revision; the engine must not run.
	canned, err := json.Marshal(&analysis.Result{VideoId: "vid1", SafetyScore: 42})
	assert.NoError(t, err)
	err = db.UpsertAnalysis(context.Background(), &storage.StoredAnalysis{
		VideoId:           "vid1",
		Result:            canned,
		UpdatedAtMillis:   time.Now().UnixMilli(),
		SignatureRevision: engine.Store().Revision(),
	})
	assert.NoError(t, err)

	ch := make(chan *PoolResult, 1)
	err = pool.Submit(context.Background(), &analysis.VideoInput{
		VideoId: "vid1",
		Title:   "Mix bleach and ammonia for cleaning",
	}, ch)
	assert.NoError(t, err)

	res := <-ch
	assert.NoError(t, res.Err)
	assert.Equal(t, 42, res.Result.SafetyScore)
}

func TestPoolStaleRevisionRecomputed(t *testing.T) {
	db := test.NewMemoryStorage(t)
	defer db.Close()

	pool, _ := testPool(t, db)
	defer pool.Release()

	canned, err := json.Marshal(&analysis.Result{VideoId: "vid1", SafetyScore: 42})
	assert.NoError(t, err)
	err = db.UpsertAnalysis(context.Background(), &storage.StoredAnalysis{
		VideoId:           "vid1",
		Result:            canned,
		UpdatedAtMillis:   time.Now().UnixMilli(),
		SignatureRevision: "outdated",
	})
	assert.NoError(t, err)

	ch := make(chan *PoolResult, 1)
	err = pool.Submit(context.Background(), &analysis.VideoInput{
		VideoId:             "vid1",
		Title:               "How to tie a tie",
		TranscriptText:      "start with the wide end",
		TranscriptAvailable: true,
	}, ch)
	assert.NoError(t, err)

	res := <-ch
	assert.NoError(t, res.Err)
	assert.NotEqual(t, 42, res.Result.SafetyScore)
}

func TestPoolStorageError(t *testing.T) {
	db := test.NewMemoryStorage(t)
	defer db.Close()

	pool, _ := testPool(t, db)
	defer pool.Release()

	ch := make(chan *PoolResult, 1)
	err := pool.Submit(context.Background(), &analysis.VideoInput{
		VideoId: test.ErrorVideoId,
		Title:   "A video",
	}, ch)
	assert.NoError(t, err)

	res := <-ch
	assert.ErrorIs(t, res.Err, test.SimulatedError)
	assert.Nil(t, res.Result)
}
