package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Recommendation engine metrics
	RecommendationCacheHits   prometheus.CounterVec
	RecommendationCacheMisses prometheus.CounterVec
	RecommendationComputeTime prometheus.HistogramVec
	RecommendationResultSize  prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitExceededTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			RecommendationCacheHits: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendation_cache_hits_total",
					Help: "Recommendation requests served from a fresh cache row",
				},
				[]string{"result"},
			),
			RecommendationCacheMisses: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendation_cache_misses_total",
					Help: "Recommendation requests that triggered a recompute",
				},
				[]string{"reason"},
			),
			RecommendationComputeTime: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_compute_duration_seconds",
					Help:    "Time spent recomputing recommendations",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
				},
				[]string{"source"},
			),
			RecommendationResultSize: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_result_size",
					Help:    "Number of tracks returned per recommendation request",
					Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
				},
				[]string{"source"},
			),
			RateLimitExceededTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Requests rejected by the rate limiter",
				},
				[]string{"endpoint"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it if necessary
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
