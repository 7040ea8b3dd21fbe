package openweather

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tp-server/api"
	models "tp-server/models/openweather"
)

// ErrEmptyConditions is returned when the response carries no weather entry.
var ErrEmptyConditions = errors.New("openweather: response has no weather conditions")

// OpenWeatherApiClient embeds the common HTTPClient
type OpenWeatherApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewOpenWeatherApiClient creates a client for the 2.5 REST API.
func NewOpenWeatherApiClient(httpClient *api.HTTPClient, apiKey string) *OpenWeatherApiClient {
	return &OpenWeatherApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

// GetCurrentWeather fetches GET /weather in metric units.
func (c *OpenWeatherApiClient) GetCurrentWeather(ctx context.Context, lat, lng float64) (*CurrentWeather, error) {
	query := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', 4, 64)},
		"lon":   {strconv.FormatFloat(lng, 'f', 4, 64)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}

	var response models.CurrentWeatherResponse
	if err := c.RequestContext(ctx, http.MethodGet, "/weather", query, nil, nil, &response); err != nil {
		return nil, err
	}
	return FromResponse(&response)
}

// FromResponse normalises a raw response. Wind is converted from m/s to km/h.
func FromResponse(r *models.CurrentWeatherResponse) (*CurrentWeather, error) {
	if len(r.Weather) == 0 {
		return nil, ErrEmptyConditions
	}
	return &CurrentWeather{
		Condition:   strings.ToLower(r.Weather[0].Main),
		Description: r.Weather[0].Description,
		TempC:       r.Main.Temp,
		Humidity:    r.Main.Humidity,
		WindKmh:     math.Round(r.Wind.Speed * 3.6),
	}, nil
}
