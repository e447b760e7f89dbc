package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

var errEmptyConditions = errors.New("OpenWeatherMap response has no weather conditions")

// APIError is returned when OpenWeatherMap answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("OpenWeatherMap error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("OpenWeatherMap error: status %d: %s", e.StatusCode, e.Message)
}

type apiResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Icon string `json:"icon"`
	} `json:"weather"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

// ClientOpenWeatherMap fetches current conditions from the OpenWeatherMap API.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

func (s *ClientOpenWeatherMap) requestURL(city string) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", "metric")
	values.Set("appid", s.APIKey)

	return s.apiURL + "?" + values.Encode()
}

// Fetch issues a single GET for the city and maps the answer to a display card.
func (s *ClientOpenWeatherMap) Fetch(ctx context.Context, city string) (models.WeatherDisplay, error) {
	start := time.Now()

	s.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(city), nil)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Msg("failed to create HTTP request")
		return models.WeatherDisplay{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Msg("error sending HTTP request to OpenWeatherMap")
		return models.WeatherDisplay{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Str("city", city).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var body apiErrorResponse
		// The message only feeds the log, a broken error body is not worth failing on.
		_ = json.NewDecoder(resp.Body).Decode(&body)

		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Int("status_code", resp.StatusCode).
			Str("message", body.Message).
			Msg("OpenWeatherMap API returned non-2xx status")
		return models.WeatherDisplay{}, &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", city).
			Msg("failed to decode OpenWeatherMap response")
		return models.WeatherDisplay{}, fmt.Errorf("decode OpenWeatherMap response: %w", err)
	}

	if len(raw.Weather) == 0 {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Msg("no weather conditions in OpenWeatherMap response")
		return models.WeatherDisplay{}, errEmptyConditions
	}

	code := raw.Weather[0].Icon
	icon, known := LookupIcon(code)
	if !known {
		s.logger.Warn().
			Ctx(ctx).
			Str("city", city).
			Str("condition_code", code).
			Msg("unmapped condition code, using clear icon")
	}

	data := models.WeatherDisplay{
		Temperature: int(math.Floor(raw.Main.Temp)),
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		Location:    raw.Name,
		Icon:        icon,
	}

	s.logger.Info().
		Ctx(ctx).
		Str("city", city).
		Str("location", data.Location).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")

	return data, nil
}
