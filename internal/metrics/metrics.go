package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendCalls counts calls to the REST backend by route template and status.
	// Status "0" means the backend was unreachable.
	BackendCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worknest_backend_calls_total",
			Help: "Total number of calls made to the WorkNest backend",
		},
		[]string{"method", "route", "status"},
	)
	// BackendLatency is the latency of backend calls.
	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worknest_backend_call_duration_seconds",
			Help:    "Backend call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// RequestTotal counts console HTTP requests.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worknest_http_requests_total",
			Help: "Total number of console HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// StaleResponses counts screen loads discarded because a newer load started.
	StaleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worknest_stale_screen_loads_total",
			Help: "Screen loads discarded because a newer load superseded them",
		},
		[]string{"view"},
	)
)

// ObserveBackendCall records one backend round trip.
func ObserveBackendCall(method, route string, status int, elapsed time.Duration) {
	BackendCalls.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	BackendLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
