package db_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/db"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get("missing")
			assert.ErrorIs(t, err, db.ErrKeyNotFound)
		})
	}
}

func TestMockRedisClient_TTL(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	client := db.NewMockRedisClient(context.Background()).WithClock(func() time.Time { return now })

	require.NoError(t, client.SetWithTTL("weather_v1:kashi", "{}", time.Hour))

	_, err := client.Get("weather_v1:kashi")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = client.Get("weather_v1:kashi")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)

	keys, err := client.Keys("weather_v1:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisClient_AddLocationWithJSONAndGetLocationsWithinRadius(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	// Varanasi and Sarnath are ~10 km apart, Delhi is ~680 km away.
	require.NoError(t, client.AddLocationWithJSON(ctx, "temples", "kashi", 25.3109, 83.0107, map[string]string{"id": "kashi"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "temples", "sarnath", 25.3811, 83.0214, map[string]string{"id": "sarnath"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "temples", "akshardham", 28.6127, 77.2773, map[string]string{"id": "akshardham"}))

	tests := []struct {
		name   string
		radius float64
		want   []string
	}{
		{"tiny radius", 1, []string{"kashi"}},
		{"city radius", 20, []string{"kashi", "sarnath"}},
		{"country radius", 2000, []string{"kashi", "sarnath", "akshardham"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results, err := client.GetLocationsWithinRadius("temples", 25.3109, 83.0107, tc.radius)
			require.NoError(t, err)

			var got []string
			for _, r := range results {
				var v map[string]string
				require.NoError(t, json.Unmarshal([]byte(r), &v))
				got = append(got, v["id"])
			}
			assert.Equal(t, tc.want, got)
		})
	}

	results, err := client.GetLocationsWithinRadius("unknown", 0, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMockRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("temples_geo_place_v1:b", "{}"))
	require.NoError(t, client.Set("temples_geo_place_v1:a", "{}"))
	require.NoError(t, client.Set("weather_v1:a", "{}"))

	keys, err := client.Keys("temples_geo_place_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"temples_geo_place_v1:a", "temples_geo_place_v1:b"}, keys)

	require.NoError(t, client.Del("temples_geo_place_v1:a"))
	keys, err = client.Keys("temples_geo_place_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"temples_geo_place_v1:b"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient(context.Background()).Ping())
}
