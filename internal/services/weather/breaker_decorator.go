package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32

	// OnStateChange is optional.
	OnStateChange func(name string, from, to gobreaker.State)
}

type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful:  countsAsHealthy,
		OnStateChange: cfg.OnStateChange,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

// countsAsHealthy keeps answers about the request itself (unknown city, bad
// key) from tripping the breaker. Rate limiting still counts as a failure.
func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusBadRequest &&
			apiErr.StatusCode < http.StatusInternalServerError &&
			apiErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

func (b *BreakerClient) Name() string {
	return b.name
}

func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerClient) Fetch(ctx context.Context, city string) (models.WeatherDisplay, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, city)
	})
	if err != nil {
		return models.WeatherDisplay{},
			fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	res, ok := result.(models.WeatherDisplay)
	if !ok {
		return models.WeatherDisplay{},
			fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}
