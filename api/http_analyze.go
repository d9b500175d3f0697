package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/queue"
)

type analyzeRequest struct {
	analysis.VideoInput

	// QuotaUnits is how many upstream API units the caller spent fetching this
	// video's transcript and comments, counted against the daily budget.
	QuotaUnits int `json:"quota_units"`
}

func httpAnalyzeApi(api *Api, w http.ResponseWriter, r *http.Request) {
	metrics.RecordHttpRequest(r.Method, "httpAnalyzeApi")
	t := metrics.StartRequestTimer(r.Method, "httpAnalyzeApi")
	defer t.ObserveDuration()

	errs := newErrorResponder("httpAnalyzeApi", w, r)

	if r.Method != http.MethodPost {
		errs.text(http.StatusMethodNotAllowed, "UNRECOGNIZED", "Method not allowed")
		return
	}

	req := &analyzeRequest{}
	if err := parseJsonBody(req, r.Body); err != nil {
		errs.err(http.StatusBadRequest, "BAD_JSON", err)
		return
	}
	if req.VideoId == "" {
		errs.text(http.StatusBadRequest, "MISSING_PARAM", "'video_id' is required")
		return
	}

	if req.QuotaUnits > 0 {
		// Quota accounting is advisory; never fail the analysis over it.
		if _, err := api.quota.Add(r.Context(), req.QuotaUnits); err != nil {
			log.Printf("[%s] Error recording quota usage: %s", req.VideoId, err)
		}
	}

	ch := make(chan *queue.PoolResult, 1)
	if err := api.pool.Submit(r.Context(), &req.VideoInput, ch); err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
		return
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, context.DeadlineExceeded) || errors.Is(res.Err, context.Canceled) {
				errs.err(http.StatusGatewayTimeout, "TIMEOUT", res.Err)
			} else {
				errs.err(http.StatusInternalServerError, "UNKNOWN", res.Err)
			}
			return
		}
		if err := respondJson("httpAnalyzeApi", r, w, res.Result); err != nil {
			errs.err(http.StatusInternalServerError, "UNKNOWN", err)
		}
	case <-r.Context().Done():
		errs.err(http.StatusGatewayTimeout, "TIMEOUT", r.Context().Err())
	}
}

func httpGetAnalysisApi(api *Api, w http.ResponseWriter, r *http.Request) {
	metrics.RecordHttpRequest(r.Method, "httpGetAnalysisApi")
	t := metrics.StartRequestTimer(r.Method, "httpGetAnalysisApi")
	defer t.ObserveDuration()

	errs := newErrorResponder("httpGetAnalysisApi", w, r)

	if r.Method != http.MethodGet {
		errs.text(http.StatusMethodNotAllowed, "UNRECOGNIZED", "Method not allowed")
		return
	}

	videoId := r.PathValue("videoId")
	if videoId == "" {
		errs.text(http.StatusBadRequest, "MISSING_PARAM", "'videoId' is required")
		return
	}

	stored, err := api.storage.GetAnalysis(r.Context(), videoId)
	if err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
		return
	}
	if stored == nil {
		errs.text(http.StatusNotFound, "NOT_FOUND", "No analysis for that video")
		return
	}

	if err = respondJson("httpGetAnalysisApi", r, w, stored); err != nil {
		errs.err(http.StatusInternalServerError, "UNKNOWN", err)
	}
}
