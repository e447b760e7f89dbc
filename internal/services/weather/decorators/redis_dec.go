package decorators

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type weatherGetterService interface {
	GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedService answers repeated lookups for a city from the cache.
// Failed lookups are never cached.
type CachedService struct {
	inner  weatherGetterService
	cache  cacheClient[models.WeatherDisplay]
	logger zerolog.Logger
}

func NewCachedService(
	inner weatherGetterService,
	cache cacheClient[models.WeatherDisplay],
	logger zerolog.Logger,
) *CachedService {
	return &CachedService{inner: inner, cache: cache, logger: logger}
}

func cacheKey(city string) string {
	return fmt.Sprintf("weather:%s", city)
}

func (s *CachedService) GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error) {
	key := cacheKey(city)

	weather, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Debug().
			Ctx(ctx).
			Str("city", city).
			Str("key", key).
			Msg("cache hit")
		return weather, nil
	}
	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Str("key", key).
		Err(err).
		Msg("cache miss")

	weather, err = s.inner.GetByCity(ctx, city)
	if err != nil {
		return models.WeatherDisplay{}, err
	}

	if err := s.cache.Set(ctx, key, weather); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}

	return weather, nil
}
