package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesComputed = promauto.NewCounter(prometheus.CounterOpts{Namespace: "agent_assist", Name: "quotes_computed_total", Help: "Total price quotes computed"})
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "agent_assist", Name: "sessions_active", Help: "Booking sessions currently in progress"})

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agent_assist", Name: "submissions_total", Help: "Order submissions by result"},
		[]string{"result"},
	)
	SubmissionLatency = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: "agent_assist", Name: "submission_latency_seconds", Help: "Submission transport latency seconds"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agent_assist", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agent_assist",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
