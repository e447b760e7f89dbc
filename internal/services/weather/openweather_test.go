package weather_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/weather"
)

const (
	testAPIURL = "https://api.openweathermap.org/data/2.5/weather"
	testAPIKey = "1234567890"

	newYorkBody = `{
		"weather": [{"icon": "01d", "main": "Clear"}],
		"main": {"humidity": 60, "temp": 21.7},
		"wind": {"speed": 5.4},
		"name": "New York"
	}`
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(m *mockHTTPClient) *weather.ClientOpenWeatherMap {
	return weather.NewClientOpenWeatherMap(testAPIKey, testAPIURL, m, zerolog.Nop())
}

func Test_OpenWeather_Fetch_Success(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		q := req.URL.Query()
		return req.Method == http.MethodGet &&
			req.URL.Host == "api.openweathermap.org" &&
			req.URL.Path == "/data/2.5/weather" &&
			q.Get("q") == "New York" &&
			q.Get("units") == "metric" &&
			q.Get("appid") == testAPIKey
	})).Return(jsonResponse(http.StatusOK, newYorkBody), nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	data, err := newTestClient(m).Fetch(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, models.WeatherDisplay{
		Temperature: 21,
		Humidity:    60,
		WindSpeed:   5.4,
		Location:    "New York",
		Icon:        models.IconClear,
	}, data)
}

func Test_OpenWeather_Fetch_FloorsTemperature(t *testing.T) {
	testCases := []struct {
		temp string
		want int
	}{
		{temp: "21.7", want: 21},
		{temp: "21.0", want: 21},
		{temp: "-0.5", want: -1},
		{temp: "-12.2", want: -13},
		{temp: "0.99", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.temp, func(t *testing.T) {
			m := &mockHTTPClient{}
			body := `{"weather":[{"icon":"13n"}],"main":{"humidity":90,"temp":` + tc.temp +
				`},"wind":{"speed":1},"name":"Oslo"}`
			m.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, body), nil).Once()

			data, err := newTestClient(m).Fetch(context.Background(), "Oslo")
			require.NoError(t, err)
			assert.Equal(t, tc.want, data.Temperature)
			assert.Equal(t, models.IconSnow, data.Icon)
		})
	}
}

func Test_OpenWeather_Fetch_CanonicalLocationAndUnknownIcon(t *testing.T) {
	m := &mockHTTPClient{}
	body := `{"weather":[{"icon":"11d"}],"main":{"humidity":75,"temp":18.2},"wind":{"speed":9.1},"name":"Kyiv"}`
	m.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, body), nil).Once()

	data, err := newTestClient(m).Fetch(context.Background(), "kiev")
	require.NoError(t, err)
	assert.Equal(t, "Kyiv", data.Location)
	assert.Equal(t, models.IconClear, data.Icon)
}

func Test_OpenWeather_Fetch_CityNotFound(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(
		jsonResponse(http.StatusNotFound, `{"cod":"404","message":"city not found"}`), nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	data, err := newTestClient(m).Fetch(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Equal(t, models.WeatherDisplay{}, data)

	var apiErr *weather.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "city not found", apiErr.Message)
}

func Test_OpenWeather_Fetch_NonJSONErrorBody(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(
		jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil).Once()

	_, err := newTestClient(m).Fetch(context.Background(), "London")

	var apiErr *weather.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func Test_OpenWeather_Fetch_InvalidAPIKey(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(
		jsonResponse(http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`), nil).Once()

	data, err := newTestClient(m).Fetch(context.Background(), "London")
	assert.Error(t, err)
	assert.Equal(t, models.WeatherDisplay{}, data)
}

func Test_OpenWeather_Fetch_TransportError(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	data, err := newTestClient(m).Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, models.WeatherDisplay{}, data)
}

func Test_OpenWeather_Fetch_MalformedJSON(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `{"main": {`), nil).Once()

	data, err := newTestClient(m).Fetch(context.Background(), "London")
	assert.Error(t, err)
	assert.Equal(t, models.WeatherDisplay{}, data)
}

func Test_OpenWeather_Fetch_NoConditions(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(
		jsonResponse(http.StatusOK, `{"weather":[],"main":{"humidity":1,"temp":1},"wind":{"speed":1},"name":"X"}`),
		nil).Once()

	data, err := newTestClient(m).Fetch(context.Background(), "X")
	assert.Error(t, err)
	assert.Equal(t, models.WeatherDisplay{}, data)
}
