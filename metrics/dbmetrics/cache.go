package dbmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AnalysisCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetyserv_analysis_cache_requests",
	Help: "The total number of analysis result cache requests",
}, []string{"isHit"})

func RecordAnalysisCacheRequest(isHit bool) {
	AnalysisCacheRequests.With(prometheus.Labels{
		"isHit": strconv.FormatBool(isHit),
	}).Inc()
}
