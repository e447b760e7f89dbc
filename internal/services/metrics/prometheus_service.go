package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// cache round trips are sub-millisecond on a healthy redis
var cacheBuckets = prometheus.ExponentialBuckets(0.0005, 2, 10)

// PromCollector records latency and results of the weather card cache.
type PromCollector struct {
	latency *prometheus.HistogramVec
	results *prometheus.CounterVec
}

func NewPromCollector(reg prometheus.Registerer, namespace string) *PromCollector {
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operation_duration_seconds",
			Help:      "Latency of weather card cache operations",
			Buckets:   cacheBuckets,
		},
		[]string{"operation"},
	)
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Weather card cache operations by result",
		},
		[]string{"operation", "result"},
	)
	reg.MustRegister(latency, results)
	return &PromCollector{latency: latency, results: results}
}

func (p *PromCollector) ObserveLatency(op string, d time.Duration) {
	p.latency.WithLabelValues(op).Observe(d.Seconds())
}

// IncrementCounter counts one operation; labels holds the result.
func (p *PromCollector) IncrementCounter(op string, labels ...string) {
	p.results.WithLabelValues(append([]string{op}, labels...)...).Inc()
}
