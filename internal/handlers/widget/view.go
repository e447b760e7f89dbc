package widget

import (
	"embed"
	"html/template"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

const pageTemplate = "weather.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

type page struct {
	Display *models.WeatherDisplay
	Alert   string

	SearchIcon   string
	HumidityIcon string
	WindIcon     string
}

func newPage(display *models.WeatherDisplay, alert string) page {
	return page{
		Display:      display,
		Alert:        alert,
		SearchIcon:   models.SearchAsset,
		HumidityIcon: models.HumidityAsset,
		WindIcon:     models.WindAsset,
	}
}
