package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"tp-server/api/openweather"
	"tp-server/dao/redis"
	"tp-server/logger"
	"tp-server/models"
)

// NeutralWeatherMultiplier leaves the crowd estimate unchanged.
const NeutralWeatherMultiplier = 1.0

const hotTemperatureC = 38

// WeatherMultiplier maps a lowercase condition and temperature to a crowd
// factor. Conditions are checked in order, so "thunderstorm with rain" is a
// thunderstorm.
func WeatherMultiplier(condition string, tempC float64) float64 {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "thunder"):
		return 0.4
	case strings.Contains(c, "rain"), strings.Contains(c, "drizzle"):
		return 0.6
	case strings.Contains(c, "snow"):
		return 0.5
	case strings.Contains(c, "clear"):
		return 1.1
	case strings.Contains(c, "clouds"):
		return 1.0
	case tempC > hotTemperatureC:
		return 0.7
	}
	return NeutralWeatherMultiplier
}

// WeatherService resolves the weather factor for a temple through an
// in-process LRU, then the Redis snapshot, then the live API.
type WeatherService struct {
	templeDao  *redis.RedisTempleDAO
	weatherAPI openweather.WeatherAPI
	cache      gcache.Cache
	ttl        time.Duration
	now        func() time.Time
}

// NewWeatherService wires the cache layers. weatherAPI may be nil, in which
// case only cached snapshots are used.
func NewWeatherService(templeDao *redis.RedisTempleDAO, weatherAPI openweather.WeatherAPI, cacheSize int, ttl time.Duration) *WeatherService {
	return &WeatherService{
		templeDao:  templeDao,
		weatherAPI: weatherAPI,
		cache:      gcache.New(cacheSize).LRU().Expiration(ttl).Build(),
		ttl:        ttl,
		now:        time.Now,
	}
}

// MultiplierFor never fails: any lookup error degrades to the neutral factor.
func (ws *WeatherService) MultiplierFor(ctx context.Context, t models.Temple) float64 {
	if !t.HasCoordinates() {
		return NeutralWeatherMultiplier
	}

	if v, err := ws.cache.Get(t.ID); err == nil {
		if snap, ok := v.(*models.WeatherSnapshot); ok {
			return snap.Multiplier
		}
	}

	snap, err := ws.templeDao.GetWeather(t.ID)
	if err != nil {
		logger.Warn("[WeatherService] Failed reading cached weather", "temple", t.ID, "error", err)
	}
	if snap == nil {
		snap, err = ws.Refresh(ctx, t)
		if err != nil {
			logger.Warn("[WeatherService] Weather unavailable, using neutral multiplier", "temple", t.ID, "error", err)
			return NeutralWeatherMultiplier
		}
		return snap.Multiplier
	}

	ws.remember(snap)
	return snap.Multiplier
}

// Refresh fetches live weather for a temple and stores it in both caches.
func (ws *WeatherService) Refresh(ctx context.Context, t models.Temple) (*models.WeatherSnapshot, error) {
	if ws.weatherAPI == nil {
		return nil, errors.New("no weather API configured")
	}
	if !t.HasCoordinates() {
		return nil, errors.New("temple has no coordinates")
	}

	current, err := ws.weatherAPI.GetCurrentWeather(ctx, *t.Lat, *t.Lng)
	if err != nil {
		return nil, err
	}

	snap := &models.WeatherSnapshot{
		TempleID:    t.ID,
		Condition:   current.Condition,
		Description: current.Description,
		TempC:       current.TempC,
		Humidity:    current.Humidity,
		WindKmh:     current.WindKmh,
		Multiplier:  WeatherMultiplier(current.Condition, current.TempC),
		FetchedAt:   ws.now(),
	}
	if err := ws.templeDao.SetWeather(*snap, ws.ttl); err != nil {
		logger.Warn("[WeatherService] Failed caching weather in redis", "temple", t.ID, "error", err)
	}
	ws.remember(snap)
	return snap, nil
}

func (ws *WeatherService) remember(snap *models.WeatherSnapshot) {
	if err := ws.cache.Set(snap.TempleID, snap); err != nil {
		logger.Debug("[WeatherService] Failed caching weather in memory", "temple", snap.TempleID, "error", err)
	}
}
