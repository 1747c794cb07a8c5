package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_backend_requests_total",
			Help: "Requests sent to the garage backend.",
		},
		[]string{"resource", "method", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_backend_request_duration_seconds",
			Help:    "Garage backend request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	ChangeEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_change_events_published_total",
			Help: "Change events handed to the broker.",
		},
		[]string{"entity", "action", "result"},
	)

	ChangeEventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_change_events_consumed_total",
			Help: "Change events read by the watch daemon.",
		},
		[]string{"entity", "action"},
	)
)
