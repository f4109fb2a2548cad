package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundex",
			Name:      "search_cache_ops_total",
			Help:      "Result cache lookups by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	searchLayerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fundex",
			Name:      "search_layer_duration_seconds",
			Help:      "Match layer duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"layer"},
	)

	searchLayerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundex",
			Name:      "search_layer_failures_total",
			Help:      "Match layer failures (layer omitted from the merge)",
		},
		[]string{"layer"},
	)
)

// RegisterSearchMetrics registers engine metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(searchCacheOps)
	prometheus.MustRegister(searchLayerDuration)
	prometheus.MustRegister(searchLayerFailures)
}

// CacheHit records a result cache hit for op ("search" or "suggest").
func CacheHit(op string) {
	searchCacheOps.WithLabelValues(op, "hit").Inc()
}

// CacheMiss records a result cache miss for op.
func CacheMiss(op string) {
	searchCacheOps.WithLabelValues(op, "miss").Inc()
}

// ObserveLayer records a completed match layer invocation.
func ObserveLayer(layer string, d time.Duration) {
	searchLayerDuration.WithLabelValues(layer).Observe(d.Seconds())
}

// LayerFailed records a match layer failure.
func LayerFailed(layer string) {
	searchLayerFailures.WithLabelValues(layer).Inc()
}
