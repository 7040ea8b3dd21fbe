package openweather

import "context"

// CurrentWeather is the normalised current observation at a coordinate.
type CurrentWeather struct {
	Condition   string  // lowercase main condition, e.g. "rain"
	Description string
	TempC       float64
	Humidity    int
	WindKmh     float64
}

// WeatherAPI defines the interface for interacting with the OpenWeather API
type WeatherAPI interface {
	GetCurrentWeather(ctx context.Context, lat, lng float64) (*CurrentWeather, error)
}
