package models

import (
	"fmt"
	"strconv"
)

const assetsPrefix = "/static/"

// Icon names one of the bundled condition images.
type Icon string

const (
	IconClear   Icon = "clear"
	IconCloud   Icon = "cloud"
	IconDrizzle Icon = "drizzle"
	IconRain    Icon = "rain"
	IconSnow    Icon = "snow"
)

// Asset returns the path the static handler serves the icon image from.
func (i Icon) Asset() string {
	return assetsPrefix + string(i) + ".png"
}

// Decorative images rendered next to the search field and data rows.
const (
	SearchAsset   = assetsPrefix + "search.png"
	HumidityAsset = assetsPrefix + "humidity.png"
	WindAsset     = assetsPrefix + "wind.png"
)

// WeatherDisplay is the current conditions card. A widget either holds a
// fully populated value or nothing at all.
type WeatherDisplay struct {
	Temperature int     `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Location    string  `json:"location"`
	Icon        Icon    `json:"icon"`
}

func (w WeatherDisplay) TemperatureLabel() string {
	return fmt.Sprintf("%d°C", w.Temperature)
}

func (w WeatherDisplay) HumidityLabel() string {
	return fmt.Sprintf("%d%%", w.Humidity)
}

func (w WeatherDisplay) WindSpeedLabel() string {
	return strconv.FormatFloat(w.WindSpeed, 'f', -1, 64) + " Km/h"
}
