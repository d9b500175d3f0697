package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DetectorTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "safetyserv_detector_time_seconds",
	Help: "The time spent in each detector",
}, []string{"detectorName"})

var RequestTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "safetyserv_request_time_seconds",
	Help: "The time spent in each request",
}, []string{"method", "action"})

var QueueWaitTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "safetyserv_queue_wait_time_seconds",
	Help: "The time spent waiting in the analysis queue",
}, []string{"waitedUntil"})

var ArbitrationTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "safetyserv_arbitration_time_seconds",
	Help: "The time spent arbitrating flagged categories",
}, []string{"method"})

func StartDetectorTimer(detectorName string) *prometheus.Timer {
	return prometheus.NewTimer(DetectorTime.With(prometheus.Labels{
		"detectorName": detectorName,
	}))
}

func StartRequestTimer(method string, action string) *prometheus.Timer {
	return prometheus.NewTimer(RequestTime.With(prometheus.Labels{
		"method": method,
		"action": action,
	}))
}

func StartQueueTimer() *prometheus.Timer {
	return prometheus.NewTimer(QueueWaitTime.With(prometheus.Labels{
		"waitedUntil": "UNSET",
	}))
}

func StartArbitrationTimer(method string) *prometheus.Timer {
	return prometheus.NewTimer(ArbitrationTime.With(prometheus.Labels{
		"method": method,
	}))
}
