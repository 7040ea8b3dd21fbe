package openweather

import (
	"context"
	"sync"

	"tp-server/util"
)

// OpenWeatherApiClientMock serves a canned response from disk.
type OpenWeatherApiClientMock struct {
	responsePath string

	mu    sync.Mutex
	calls int
}

// NewOpenWeatherApiClientMock creates a mock reading responsePath on every call.
func NewOpenWeatherApiClientMock(responsePath string) *OpenWeatherApiClientMock {
	return &OpenWeatherApiClientMock{responsePath: responsePath}
}

func (c *OpenWeatherApiClientMock) GetCurrentWeather(ctx context.Context, lat, lng float64) (*CurrentWeather, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	response, err := util.ReadCurrentWeatherResponseFromJSON(c.responsePath)
	if err != nil {
		return nil, err
	}
	return FromResponse(response)
}

// Calls is the number of GetCurrentWeather invocations so far.
func (c *OpenWeatherApiClientMock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
