package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tp-server/calendar"
	"tp-server/config"
	"tp-server/crowd"
	"tp-server/dao/redis"
	"tp-server/logger"
	"tp-server/models"
	"tp-server/planner"
)

// WeatherSource supplies the weather factor for a temple.
type WeatherSource interface {
	MultiplierFor(ctx context.Context, t models.Temple) float64
}

type neutralWeather struct{}

func (neutralWeather) MultiplierFor(context.Context, models.Temple) float64 {
	return NeutralWeatherMultiplier
}

// TempleService answers catalog and crowd questions about temples.
type TempleService struct {
	templeDao *redis.RedisTempleDAO
	weather   WeatherSource
	predictor *crowd.Predictor
	festivals *calendar.Calendar
}

// NewTempleService constructs a TempleService. A nil weather source means
// weather is ignored.
func NewTempleService(
	templeDao *redis.RedisTempleDAO,
	weather WeatherSource,
	predictor *crowd.Predictor,
	festivals *calendar.Calendar) *TempleService {

	if weather == nil {
		weather = neutralWeather{}
	}
	return &TempleService{
		templeDao: templeDao,
		weather:   weather,
		predictor: predictor,
		festivals: festivals,
	}
}

// CurrentCrowd estimates the crowd at a temple at instant at, adjusted for
// the current weather.
func (ts *TempleService) CurrentCrowd(ctx context.Context, t models.Temple, at time.Time) (crowd.Estimate, error) {
	multiplier := ts.weather.MultiplierFor(ctx, t)
	est, err := ts.predictor.PredictAdjusted(t.ToVenue(), at, multiplier)
	if err != nil {
		return crowd.Estimate{}, fmt.Errorf("temple %s: %w", t.ID, err)
	}
	return est, nil
}

// ListTemples returns every temple with its current crowd, sorted by name.
func (ts *TempleService) ListTemples(ctx context.Context, at time.Time) ([]models.TempleWithCrowd, error) {
	temples, err := ts.templeDao.ListTemples()
	if err != nil {
		return nil, err
	}
	return ts.decorate(ctx, temples, at)
}

func (ts *TempleService) decorate(ctx context.Context, temples []models.Temple, at time.Time) ([]models.TempleWithCrowd, error) {
	out := make([]models.TempleWithCrowd, 0, len(temples))
	for _, t := range temples {
		est, err := ts.CurrentCrowd(ctx, t, at)
		if err != nil {
			return nil, err
		}
		out = append(out, models.TempleWithCrowd{Temple: t, Crowd: est})
	}
	return out, nil
}

// GetTemple returns one temple with its current crowd and today's hourly
// forecast.
func (ts *TempleService) GetTemple(ctx context.Context, id string, now time.Time) (*models.TempleDetail, error) {
	t, err := ts.templeDao.GetTemple(id)
	if err != nil {
		return nil, err
	}
	est, err := ts.CurrentCrowd(ctx, *t, now)
	if err != nil {
		return nil, err
	}
	hourly, err := ts.predictor.Forecast(t.ToVenue(), now, now)
	if err != nil {
		return nil, err
	}
	return &models.TempleDetail{
		TempleWithCrowd: models.TempleWithCrowd{Temple: *t, Crowd: est},
		HourlyForecast:  hourly,
	}, nil
}

// Forecast returns the 24-hour curve for a temple on date's civil day.
func (ts *TempleService) Forecast(ctx context.Context, id string, date, now time.Time) (*models.TempleForecast, error) {
	t, err := ts.templeDao.GetTemple(id)
	if err != nil {
		return nil, err
	}
	hourly, err := ts.predictor.Forecast(t.ToVenue(), date, now)
	if err != nil {
		return nil, err
	}
	return &models.TempleForecast{
		TempleID:   t.ID,
		TempleName: t.Name,
		Date:       calendar.DateKey(date),
		Forecast:   hourly,
	}, nil
}

// CalendarForecast compares up to MAX_CALENDAR_TEMPLES temples over a date
// range. Extra ids are dropped and unknown ids are skipped; if none of the
// ids exist the result is ErrTempleNotFound.
func (ts *TempleService) CalendarForecast(ctx context.Context, ids []string, start, end, now time.Time) (*crowd.CalendarForecast, error) {
	if len(ids) == 0 {
		return nil, crowd.InvalidInputf("at least one temple id is required")
	}
	if len(ids) > config.MAX_CALENDAR_TEMPLES {
		ids = ids[:config.MAX_CALENDAR_TEMPLES]
	}

	temples, missing, err := ts.templeDao.GetTemplesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		logger.Warn("[TempleService] Calendar requested unknown temples", "missing", missing)
	}
	if len(temples) == 0 {
		return nil, fmt.Errorf("%w: none of %v", redis.ErrTempleNotFound, ids)
	}

	venues := make([]crowd.Venue, len(temples))
	for i := range temples {
		venues[i] = temples[i].ToVenue()
	}
	return ts.predictor.CalendarForecast(venues, start, end, now)
}

// NearbyTemples finds temples within radiusKm of a point, quietest first.
func (ts *TempleService) NearbyTemples(ctx context.Context, lat, lng, radiusKm float64, at time.Time) ([]models.TempleWithCrowd, error) {
	if err := (planner.Point{Lat: lat, Lng: lng}).Validate(); err != nil {
		return nil, err
	}
	if !(radiusKm > 0) {
		return nil, crowd.InvalidInputf("radius %v must be positive", radiusKm)
	}

	temples, err := ts.templeDao.GetNearbyTemples(lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	out, err := ts.decorate(ctx, temples, at)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Crowd.Percentage < out[j].Crowd.Percentage
	})
	return out, nil
}

// UpcomingFestivals lists the next festivals from today's date.
func (ts *TempleService) UpcomingFestivals(today time.Time) []calendar.Festival {
	return ts.festivals.Upcoming(today, config.UPCOMING_FESTIVALS_LIMIT)
}
