package metrics

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	grpc_prom "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

const divisor = 100

// Metrics holds Prometheus metric vectors for the widget service.
type Metrics struct {
	registry  *prometheus.Registry
	namespace string

	// HTTP server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// gRPC server metrics
	GRPC *grpc_prom.ServerMetrics

	// Domain metrics
	SearchesTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all widget-service metrics on a private registry.
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry:  reg,
		namespace: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		GRPC: grpc_prom.NewServerMetrics(),

		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "widget_searches_total",
				Help:      "Widget searches by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.GRPC.EnableHandlingTimeHistogram()

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GRPC,
		m.SearchesTotal,
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/sched/latencies:seconds")},
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registerer exposes the private registry for collectors built elsewhere.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}

// Namespace is the prefix shared by every metric of the service.
func (m *Metrics) Namespace() string {
	return m.namespace
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSearch counts a finished widget search.
func (m *Metrics) ObserveSearch(outcome string) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     endpoint,
			"status_class": getStatusClass(c.Writer.Status()),
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": endpoint,
		}).Observe(d.Seconds())
	}
}

// UnaryInterceptor returns a gRPC UnaryServerInterceptor for metrics.
func (m *Metrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return m.GRPC.UnaryServerInterceptor()
}

// StreamInterceptor returns a gRPC StreamServerInterceptor for metrics.
func (m *Metrics) StreamInterceptor() grpc.StreamServerInterceptor {
	return m.GRPC.StreamServerInterceptor()
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
