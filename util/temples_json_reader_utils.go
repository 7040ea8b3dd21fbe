package util

import (
	"encoding/json"
	"fmt"
	"os"

	"tp-server/models"
	"tp-server/models/openweather"
)

// ReadTemplesFromJSON loads the seed catalog from JSON on disk.
func ReadTemplesFromJSON(filePath string) ([]models.Temple, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var temples []models.Temple
	if err := json.Unmarshal(data, &temples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal temples: %w", err)
	}
	for i, t := range temples {
		if t.ID == "" {
			return nil, fmt.Errorf("temple at index %d has no id", i)
		}
	}
	return temples, nil
}

// ReadCurrentWeatherResponseFromJSON loads a canned OpenWeather response.
func ReadCurrentWeatherResponseFromJSON(filePath string) (*openweather.CurrentWeatherResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp openweather.CurrentWeatherResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CurrentWeatherResponse: %w", err)
	}
	return &resp, nil
}
