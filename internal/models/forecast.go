package models

import "fmt"

// GoodWeatherPrecipCutoff is the precipitation probability (percent) at or
// above which a day fails the good-weather dependency.
const GoodWeatherPrecipCutoff = 60

// DayForecast holds one day of weather data, immutable once fetched.
// Condition codes follow the Open-Meteo weather code table.
type DayForecast struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation int     `json:"precipitation"` // probability, 0-100
	Sunrise       string  `json:"sunrise"`       // HH:MM
	Sunset        string  `json:"sunset"`        // HH:MM
	Code          int     `json:"code"`
}

var severeCodes = map[int]bool{
	// thunderstorm
	95: true, 96: true, 99: true,
	// freezing drizzle / freezing rain
	56: true, 57: true, 66: true, 67: true,
	// snow and snow showers
	71: true, 73: true, 75: true, 77: true, 85: true, 86: true,
}

// Severe reports whether the condition code denotes weather that rules out
// outdoor activity regardless of precipitation probability.
func (f DayForecast) Severe() bool {
	return severeCodes[f.Code]
}

// SuitsGoodWeather reports whether the day satisfies the good-weather
// dependency tag.
func (f DayForecast) SuitsGoodWeather() bool {
	return f.Precipitation < GoodWeatherPrecipCutoff && !f.Severe()
}

// Summary renders a short display line, e.g. "18.5°C, 30% rain".
func (f DayForecast) Summary(unit string) string {
	if unit == "" {
		unit = "C"
	}
	return fmt.Sprintf("%.1f°%s, %d%% rain", f.TempMax, unit, f.Precipitation)
}
