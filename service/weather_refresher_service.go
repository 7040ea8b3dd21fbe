package services

import (
	"context"
	"time"

	"tp-server/dao/redis"
	"tp-server/logger"
)

// WeatherRefresherService periodically refreshes weather for every stored
// temple with coordinates.
type WeatherRefresherService struct {
	templeDao      *redis.RedisTempleDAO
	weatherService *WeatherService
}

// NewWeatherRefresherService constructs a new refresher with dependencies.
func NewWeatherRefresherService(templeDao *redis.RedisTempleDAO, weatherService *WeatherService) *WeatherRefresherService {
	return &WeatherRefresherService{
		templeDao:      templeDao,
		weatherService: weatherService,
	}
}

// StartPeriodicJob launches the background loop at the given interval. The
// loop exits when ctx is cancelled.
func (wr *WeatherRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go wr.startPeriodicJob(ctx, interval)
}

func (wr *WeatherRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[WeatherRefresherService] Stopping periodic weather refresher job.")
			return
		case <-ticker.C:
			logger.Info("[WeatherRefresherService] Running periodic weather refresher job.")
			refreshed, err := wr.RefreshAll(ctx)
			if err != nil {
				logger.Error("[WeatherRefresherService] RefreshAll returned error", "error", err)
				continue
			}
			logger.Info("[WeatherRefresherService] RefreshAll completed", "refreshed", refreshed)
		}
	}
}

// RefreshAll refreshes every temple with coordinates and reports how many
// succeeded. Individual failures are logged and skipped.
func (wr *WeatherRefresherService) RefreshAll(ctx context.Context) (int, error) {
	temples, err := wr.templeDao.ListTemples()
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, t := range temples {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		if !t.HasCoordinates() {
			continue
		}
		if _, err := wr.weatherService.Refresh(ctx, t); err != nil {
			logger.Warn("[WeatherRefresherService] Refresh failed", "temple", t.ID, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
