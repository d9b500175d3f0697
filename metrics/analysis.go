package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AnalysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetyserv_analysis_requests",
	Help: "The total number of analysis requests",
}, []string{"isFirstTime"})

var DetectorMatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetyserv_detector_matches",
	Help: "The total number of signature matches produced by detectors",
}, []string{"detectorName", "category", "severity"})

var ScoreCapsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetyserv_score_caps_applied",
	Help: "The total number of safety score caps applied",
}, []string{"cap"})

var ArbitrationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetyserv_arbitration_outcomes",
	Help: "The total number of context arbitration outcomes",
}, []string{"verdict", "method", "suppressed"})

func RecordAnalysisRequest(isFirstTime bool) {
	AnalysisRequests.With(prometheus.Labels{
		"isFirstTime": strconv.FormatBool(isFirstTime),
	}).Inc()
}

func RecordDetectorMatch(detectorName string, category string, severity string) {
	DetectorMatches.With(prometheus.Labels{
		"detectorName": detectorName,
		"category":     category,
		"severity":     severity,
	}).Inc()
}

func RecordScoreCap(capName string) {
	ScoreCapsApplied.With(prometheus.Labels{
		"cap": capName,
	}).Inc()
}

func RecordArbitrationOutcome(verdict string, method string, suppressed bool) {
	ArbitrationOutcomes.With(prometheus.Labels{
		"verdict":    verdict,
		"method":     method,
		"suppressed": strconv.FormatBool(suppressed),
	}).Inc()
}
