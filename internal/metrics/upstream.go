package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream and pipeline Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arttinder",
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to upstream services",
		},
		[]string{"service", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arttinder",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"service"},
	)

	UpstreamTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arttinder",
			Name:      "upstream_tokens_total",
			Help:      "Total language-model tokens consumed",
		},
		[]string{"service", "type"},
	)

	CandidateGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arttinder",
			Name:      "candidate_generations_total",
			Help:      "Candidate generator runs by outcome",
		},
		[]string{"generator", "status"}, // "produced" / "empty" / "unavailable"
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arttinder",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "arttinder",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arttinder",
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

var registerOnce sync.Once

// RegisterUpstreamMetrics registers upstream and pipeline metrics. Called from main.
func RegisterUpstreamMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UpstreamRequestsTotal,
			UpstreamRequestDuration,
			UpstreamTokensTotal,
			CandidateGenerationsTotal,
			EmbeddingCacheTotal,
			CircuitBreakerState,
			CircuitBreakerTransitions,
		)
	})
}

// ObserveUpstream records one upstream call outcome.
func ObserveUpstream(service string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(service, status).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(seconds)
}
