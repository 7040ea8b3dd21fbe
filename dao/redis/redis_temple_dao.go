package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tp-server/config"
	"tp-server/db"
	"tp-server/logger"
	"tp-server/models"
)

// ErrTempleNotFound is returned when no temple is stored under an id.
var ErrTempleNotFound = errors.New("temple not found")

// RedisTempleDAO handles temple and weather storage using Redis.
type RedisTempleDAO struct {
	client db.RedisClient
}

// NewRedisTempleDAO initializes a RedisTempleDAO with the Redis client.
func NewRedisTempleDAO(client db.RedisClient) *RedisTempleDAO {
	return &RedisTempleDAO{client: client}
}

func templeKey(id string) string {
	return fmt.Sprintf(config.TEMPLES_GEO_PLACE_MEMBER_FORMAT_V1, id)
}

func weatherKey(id string) string {
	return fmt.Sprintf(config.WEATHER_KEY_FORMAT_V1, id)
}

// UpsertTemple stores the temple JSON. Temples with coordinates are also
// added to the geo index.
func (dao *RedisTempleDAO) UpsertTemple(t models.Temple) error {
	if t.ID == "" {
		return errors.New("[RedisTempleDAO] temple id is required")
	}
	key := templeKey(t.ID)
	if t.HasCoordinates() {
		ctx := dao.client.GetContext()
		if err := dao.client.AddLocationWithJSON(ctx, config.TEMPLES_GEO_KEY_V1, key, *t.Lat, *t.Lng, t); err != nil {
			return fmt.Errorf("[RedisTempleDAO] failed to upsert temple %s: %w", t.ID, err)
		}
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("[RedisTempleDAO] failed to marshal temple %s: %w", t.ID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("[RedisTempleDAO] failed to upsert temple %s: %w", t.ID, err)
	}
	return nil
}

// GetTemple returns the temple stored under id, or ErrTempleNotFound.
func (dao *RedisTempleDAO) GetTemple(id string) (*models.Temple, error) {
	str, err := dao.client.Get(templeKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTempleNotFound, id)
		}
		return nil, fmt.Errorf("[RedisTempleDAO] failed to get temple %s: %w", id, err)
	}
	var t models.Temple
	if err := json.Unmarshal([]byte(str), &t); err != nil {
		return nil, fmt.Errorf("[RedisTempleDAO] failed to unmarshal temple %s: %w", id, err)
	}
	return &t, nil
}

// ListTempleIDs returns every stored temple id, sorted.
func (dao *RedisTempleDAO) ListTempleIDs() ([]string, error) {
	keys, err := dao.client.Keys(templeKey("*"))
	if err != nil {
		return nil, fmt.Errorf("[RedisTempleDAO] failed to list temple keys: %w", err)
	}
	prefix := templeKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	sort.Strings(ids)
	return ids, nil
}

// ListTemples returns every stored temple sorted by name.
func (dao *RedisTempleDAO) ListTemples() ([]models.Temple, error) {
	ids, err := dao.ListTempleIDs()
	if err != nil {
		return nil, err
	}
	temples, _, err := dao.GetTemplesByIDs(ids)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(temples, func(i, j int) bool {
		return temples[i].Name < temples[j].Name
	})
	return temples, nil
}

// GetTemplesByIDs fetches temples in input order. Ids with no stored temple
// are skipped and returned as missing.
func (dao *RedisTempleDAO) GetTemplesByIDs(ids []string) ([]models.Temple, []string, error) {
	temples := make([]models.Temple, 0, len(ids))
	var missing []string
	for _, id := range ids {
		t, err := dao.GetTemple(id)
		if errors.Is(err, ErrTempleNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		temples = append(temples, *t)
	}
	return temples, missing, nil
}

// GetNearbyTemples retrieves temples within radiusKm, nearest first.
func (dao *RedisTempleDAO) GetNearbyTemples(lat, lng, radiusKm float64) ([]models.Temple, error) {
	templesJSON, err := dao.client.GetLocationsWithinRadius(config.TEMPLES_GEO_KEY_V1, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisTempleDAO] failed to get nearby temples: %w", err)
	}

	temples := make([]models.Temple, len(templesJSON))
	for i, templeJSON := range templesJSON {
		if err := json.Unmarshal([]byte(templeJSON), &temples[i]); err != nil {
			return nil, fmt.Errorf("[RedisTempleDAO] failed to unmarshal temple JSON: %w", err)
		}
	}
	logger.Debug("[RedisTempleDAO] Nearby temples", "lat", lat, "lng", lng, "radiusKm", radiusKm, "count", len(temples))
	return temples, nil
}

// SetWeather caches a weather snapshot for ttl.
func (dao *RedisTempleDAO) SetWeather(w models.WeatherSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("[RedisTempleDAO] failed to marshal weather for temple %s: %w", w.TempleID, err)
	}
	if err := dao.client.SetWithTTL(weatherKey(w.TempleID), string(data), ttl); err != nil {
		return fmt.Errorf("[RedisTempleDAO] failed to set weather in redis: %w", err)
	}
	return nil
}

// GetWeather returns the cached snapshot, or nil on a cache miss.
func (dao *RedisTempleDAO) GetWeather(templeID string) (*models.WeatherSnapshot, error) {
	str, err := dao.client.Get(weatherKey(templeID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("[RedisTempleDAO] failed to get weather from redis: %w", err)
	}
	var w models.WeatherSnapshot
	if err := json.Unmarshal([]byte(str), &w); err != nil {
		return nil, fmt.Errorf("[RedisTempleDAO] failed to unmarshal weather JSON: %w", err)
	}
	return &w, nil
}

// DeleteWeather drops the cached snapshot for a temple.
func (dao *RedisTempleDAO) DeleteWeather(templeID string) error {
	if err := dao.client.Del(weatherKey(templeID)); err != nil {
		return fmt.Errorf("[RedisTempleDAO] failed to delete weather key for %s: %w", templeID, err)
	}
	return nil
}
