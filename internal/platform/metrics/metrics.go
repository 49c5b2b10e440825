package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	AuthFailures       prometheus.Counter
	ValidationFailures prometheus.Counter
	ScoreCacheHits     prometheus.Counter
	ScoreCacheMisses   prometheus.Counter
	DispatchLatency    prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scoregate_requests_total",
			Help: "Total number of dispatched requests, labeled by response code",
		}, []string{"code"}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scoregate_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scoregate_validation_failures_total",
			Help: "Total number of requests rejected by field validation",
		}),
		ScoreCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scoregate_score_cache_hits_total",
			Help: "Total number of score computations served from the cache",
		}),
		ScoreCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scoregate_score_cache_misses_total",
			Help: "Total number of score cache misses",
		}),
		DispatchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoregate_dispatch_latency_seconds",
			Help:    "Latency of method dispatch in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementRequests increments the request counter for a response code.
func (m *Metrics) IncrementRequests(code string) {
	m.RequestsTotal.WithLabelValues(code).Inc()
}

// IncrementAuthFailures increments the auth failure counter by 1.
func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

// IncrementValidationFailures increments the validation failure counter by 1.
func (m *Metrics) IncrementValidationFailures() {
	m.ValidationFailures.Inc()
}

// IncrementCacheHits increments the score cache hit counter by 1.
func (m *Metrics) IncrementCacheHits() {
	m.ScoreCacheHits.Inc()
}

// IncrementCacheMisses increments the score cache miss counter by 1.
func (m *Metrics) IncrementCacheMisses() {
	m.ScoreCacheMisses.Inc()
}

// ObserveDispatchLatency records the latency of one dispatch.
func (m *Metrics) ObserveDispatchLatency(durationSeconds float64) {
	m.DispatchLatency.Observe(durationSeconds)
}
