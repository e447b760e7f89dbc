package grpc

import (
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// UpstreamService is the health service name that follows the upstream breaker.
const UpstreamService = "weather.OpenWeatherMap"

// HealthReporter publishes upstream availability over grpc.health.v1.
type HealthReporter struct {
	server *health.Server
	logger zerolog.Logger
}

func NewHealthReporter(logger zerolog.Logger) *HealthReporter {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	srv.SetServingStatus(UpstreamService, healthpb.HealthCheckResponse_SERVING)
	return &HealthReporter{server: srv, logger: logger}
}

func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// OnBreakerStateChange matches gobreaker.Settings.OnStateChange. The
// upstream is NOT_SERVING only while its breaker is open.
func (h *HealthReporter) OnBreakerStateChange(name string, from, to gobreaker.State) {
	status := healthpb.HealthCheckResponse_SERVING
	if to == gobreaker.StateOpen {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.logger.Warn().
		Str("breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Str("health", status.String()).
		Msg("circuit breaker state changed")

	h.server.SetServingStatus(UpstreamService, status)
}

// Shutdown flips every service to NOT_SERVING before the server stops.
func (h *HealthReporter) Shutdown() {
	h.server.Shutdown()
}
