package weather

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type client interface {
	Fetch(ctx context.Context, city string) (models.WeatherDisplay, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service resolves a city to its current conditions card.
type Service struct {
	logger zerolog.Logger
	client client
}

func NewService(logger zerolog.Logger, c client) *Service {
	return &Service{client: c, logger: logger}
}

func (s *Service) GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error) {
	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Msg("calling Fetch")

	data, err := s.client.Fetch(ctx, city)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Err(err).
			Msg("fetch failed")
		return models.WeatherDisplay{}, err
	}

	return data, nil
}
