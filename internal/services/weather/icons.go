package weather

import "github.com/Nazarious-ucu/weather-widget/internal/models"

// OpenWeatherMap condition codes: the two digits name the sky state, the
// suffix is day (d) or night (n).
var conditionIcons = map[string]models.Icon{
	"01d": models.IconClear,
	"01n": models.IconClear,
	"02d": models.IconCloud,
	"02n": models.IconCloud,
	"03d": models.IconCloud,
	"03n": models.IconCloud,
	"04d": models.IconDrizzle,
	"04n": models.IconDrizzle,
	"09d": models.IconRain,
	"09n": models.IconRain,
	"10d": models.IconRain,
	"10n": models.IconRain,
	"13d": models.IconSnow,
	"13n": models.IconSnow,
}

// LookupIcon reports the icon for a condition code and whether the code is
// one of the mapped ones. Unmapped codes get the clear-sky icon.
func LookupIcon(code string) (models.Icon, bool) {
	icon, ok := conditionIcons[code]
	if !ok {
		return models.IconClear, false
	}
	return icon, true
}

func IconForCode(code string) models.Icon {
	icon, _ := LookupIcon(code)
	return icon
}
