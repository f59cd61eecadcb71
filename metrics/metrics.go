package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	// Remote API call latency (seconds)
	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Remote API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"service", "method", "outcome"},
	)

	// Submission outcomes
	SubmissionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_count",
			Help: "Total number of form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: succeeded, failed, coalesced
	)

	// Milestone status transitions
	MilestoneTransitionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milestone_transition_count",
			Help: "Total number of milestone status changes by target status",
		},
		[]string{"status"},
	)

	// Service order invoice estimates
	ServiceOrderInvoice = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "service_order_estimated_invoice",
			Help:    "Estimated invoice of created service orders",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 12),
		},
	)
)

func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordUpstreamCall(service, method, outcome string, duration time.Duration) {
	UpstreamCallDuration.WithLabelValues(service, method, outcome).Observe(duration.Seconds())
}

func IncrementSubmission(kind, outcome string) {
	SubmissionCount.WithLabelValues(kind, outcome).Inc()
}

func IncrementMilestoneTransition(status string) {
	MilestoneTransitionCount.WithLabelValues(status).Inc()
}

func ObserveServiceOrderInvoice(amount float64) {
	ServiceOrderInvoice.Observe(amount)
}
