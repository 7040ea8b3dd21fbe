package models

import "time"

// WeatherSnapshot is the cached current weather for one temple.
type WeatherSnapshot struct {
	TempleID    string    `json:"templeId"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	TempC       float64   `json:"temp"`
	Humidity    int       `json:"humidity"`
	WindKmh     float64   `json:"windSpeed"`
	Multiplier  float64   `json:"multiplier"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
