package weather_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok {
		return nil, args.Error(1)
	}
	return resp, args.Error(1)
}

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(ctx context.Context, city string) (models.WeatherDisplay, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.WeatherDisplay)
	if !ok {
		return models.WeatherDisplay{}, args.Error(1)
	}
	return data, args.Error(1)
}
