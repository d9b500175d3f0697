package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	typedsf "github.com/t2bot/go-typed-singleflight"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/storage"
)

type PoolResult struct {
	// Nil if there was an error.
	Result *analysis.Result

	// The error processing the video, if any.
	Err error
}

type sfResult struct {
	firstTimeSeen bool
	result        *analysis.Result
}

type PoolConfig struct {
	ConcurrentPools int
	SizePerPool     int
	// How long one analysis may run once picked up by a worker
	AnalysisTimeout time.Duration
}

type Pool struct {
	config  *PoolConfig
	engine  *analysis.Engine
	storage storage.PersistentStorage

	internal *ants.MultiPool
	sf       *typedsf.Group[*sfResult] // keyed by video ID
}

func NewPool(config *PoolConfig, engine *analysis.Engine, storage storage.PersistentStorage) (*Pool, error) {
	internal, err := ants.NewMultiPool(config.ConcurrentPools, config.SizePerPool, ants.RoundRobin, ants.WithOptions(ants.Options{
		ExpiryDuration:   1 * time.Minute,
		PreAlloc:         false,
		MaxBlockingTasks: 0, // no limit on submissions
		Nonblocking:      false,
		// If we don't supply a panic handler then ants will print a stack trace for us
		Logger:       log.Default(),
		DisablePurge: false,
	}))
	if err != nil {
		return nil, err
	}
	return &Pool{
		config:   config,
		engine:   engine,
		storage:  storage,
		internal: internal,
		sf:       new(typedsf.Group[*sfResult]),
	}, nil
}

func (p *Pool) Release() {
	p.internal.ReleaseTimeout(5 * time.Second)
}

// Submit asks the queue to analyze the given video. If `waitCh` is non-nil, it will be
// called with the result upon completion or error. The `waitCh` is not called if there was a submission
// error - that is instead returned from Submit.
func (p *Pool) Submit(ctx context.Context, input *analysis.VideoInput, waitCh chan<- *PoolResult) error {
	jobId := storage.NextId()
	t := metrics.StartQueueTimer()

	// Note: waitCh might be nil or unbuffered, so we spawn this in a goroutine later on.
	notifyResult := func(result *analysis.Result, err error) {
		if err == nil {
			t.ObserveDurationWithExemplar(prometheus.Labels{"waitedUntil": "result"})
		} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			t.ObserveDurationWithExemplar(prometheus.Labels{"waitedUntil": "timeout"})
		} else {
			t.ObserveDurationWithExemplar(prometheus.Labels{"waitedUntil": "error"})
		}

		if waitCh != nil {
			res := &PoolResult{
				Result: result,
				Err:    err,
			}

			// First, check to see if the channel is likely going to be closed already
			if err := ctx.Err(); err != nil {
				log.Printf("[%s | %s] Result channel closed, not sending result: %s", jobId, input.VideoId, err)
				return
			}

			select {
			case waitCh <- res:
			case <-ctx.Done():
				log.Printf("[%s | %s] Result channel closed, not sending result: %s", jobId, input.VideoId, ctx.Err())
			}
		}
	}

	workFn := func() {
		// If the context is cancelled, save CPU and don't bother checking
		if err := ctx.Err(); err != nil {
			go notifyResult(nil, err)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				log.Printf("[%s | %s] Not analyzing because context was cancelled/timed out", jobId, input.VideoId)
				return
			}
		}

		// Ask the singleflight to do the work (deduplicating concurrent requests for the same video)
		res, err, _ := p.sf.Do(input.VideoId, func() (*sfResult, error) {
			// We create a new context for two reasons:
			// 1. The singleflight might span multiple requests, and we don't want to tie results for all
			//    requests to the first (maybe failed) request.
			// 2. We want to ensure that we continue processing this stuff in the background, even if the
			//    request times out or is cancelled.
			timeout := p.config.AnalysisTimeout
			if timeout <= 0 {
				timeout = 1 * time.Minute
			}
			analysisCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			res, err := p.doAnalyze(analysisCtx, input)

			// We do the metrics response within the singleflight so we don't count `firstTimeSeen` multiple times.
			if err == nil {
				defer metrics.RecordAnalysisRequest(res.firstTimeSeen)
			}
			return res, err
		})
		if res == nil {
			if err == nil {
				// "should never happen"
				err = errors.New("nil result")
			}
			log.Printf("[%s | %s] Analysis failed: %s", jobId, input.VideoId, err)
			go notifyResult(nil, err)
		} else {
			go notifyResult(res.result, err)
		}
	}

	return p.internal.Submit(workFn)
}

func (p *Pool) doAnalyze(ctx context.Context, input *analysis.VideoInput) (*sfResult, error) {
	revision := p.engine.Store().Revision()

	// First, have we already analyzed this video with the current signatures?
	stored, err := p.storage.GetAnalysis(ctx, input.VideoId)
	if err != nil {
		return nil, err
	}
	if stored != nil && stored.SignatureRevision == revision {
		result := &analysis.Result{}
		if err = json.Unmarshal(stored.Result, result); err == nil {
			return &sfResult{
				firstTimeSeen: false,
				result:        result,
			}, nil
		}
		// Undecodable stored result: fall through and recompute
		log.Printf("[%s] Error decoding stored analysis result, recomputing: %s", input.VideoId, err)
	}

	result := p.engine.Analyze(ctx, input)

	// Persist the result. A persistence failure is non-fatal; the analysis
	// still happened and the caller gets their result.
	encoded, err := json.Marshal(result)
	if err != nil {
		log.Printf("[%s] Error encoding analysis result: %s", input.VideoId, err)
	} else if err = p.storage.UpsertAnalysis(ctx, &storage.StoredAnalysis{
		VideoId:           input.VideoId,
		Result:            encoded,
		UpdatedAtMillis:   time.Now().UnixMilli(),
		SignatureRevision: revision,
	}); err != nil {
		log.Printf("[%s] Error persisting analysis result: %s", input.VideoId, err)
	}

	return &sfResult{
		firstTimeSeen: true,
		result:        result,
	}, nil
}
