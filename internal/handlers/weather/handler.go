package weather

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

const (
	timeoutDuration = 10 * time.Second

	msgEmptyCity = "Please enter a city name"
	msgNoData    = "No weather data available"
)

type weatherGetterService interface {
	GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error)
}

type Handler struct {
	service weatherGetterService
}

func NewHandler(svc weatherGetterService) *Handler {
	return &Handler{service: svc}
}

// GetWeather returns the display card for a city without touching any
// session state. Every failure kind gets the same answer.
// @Summary Get current weather
// @Description Returns the current weather card for a city
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} models.WeatherDisplay
// @Failure 400 {object} map[string]string "Please enter a city name"
// @Failure 502 {object} map[string]string "No weather data available"
// @Router /weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyCity})
		return
	}
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	data, err := h.service.GetByCity(ctxWithTimeout, city)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": msgNoData})
		return
	}

	c.JSON(http.StatusOK, data)
}
