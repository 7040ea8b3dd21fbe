package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/crowd"
)

func ptr[T any](v T) *T { return &v }

func venueAt(id string, lat, lng float64) crowd.Venue {
	return crowd.Venue{ID: id, Name: id, Lat: ptr(lat), Lng: ptr(lng), OpenHour: 5, CloseHour: 22}
}

func ids(it *Itinerary) []string {
	out := make([]string, len(it.Stops))
	for i, s := range it.Stops {
		out[i] = s.Venue.ID
	}
	return out
}

func TestOptimize_CrowdOrder(t *testing.T) {
	stops := []Stop{
		{Venue: crowd.Venue{ID: "a"}, CrowdPercentage: ptr(80)},
		{Venue: crowd.Venue{ID: "b"}, CrowdPercentage: ptr(20)},
		{Venue: crowd.Venue{ID: "c"}, CrowdPercentage: ptr(90)},
	}

	it, err := Optimize("Delhi", stops, PreferCrowd)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "c"}, ids(it))
	assert.Equal(t, 20, *it.Stops[0].CrowdPercentage)
	for _, s := range it.Stops {
		assert.Nil(t, s.TransportTo)
	}
	assert.Equal(t, Stats{Source: "Delhi"}, it.Stats)
	assert.Equal(t, "a", stops[0].Venue.ID, "input must not be reordered")
}

func TestOptimize_CrowdUnknownRanksAsFifty(t *testing.T) {
	stops := []Stop{
		{Venue: crowd.Venue{ID: "unknown"}},
		{Venue: crowd.Venue{ID: "busy"}, CrowdPercentage: ptr(60)},
		{Venue: crowd.Venue{ID: "fifty"}, CrowdPercentage: ptr(50)},
		{Venue: crowd.Venue{ID: "quiet"}, CrowdPercentage: ptr(10)},
	}

	it, err := Optimize("mumbai", stops, PreferCrowd)
	require.NoError(t, err)
	assert.Equal(t, []string{"quiet", "unknown", "fifty", "busy"}, ids(it))
}

func TestOptimize_NearestNeighbour(t *testing.T) {
	stops := []Stop{
		{Venue: venueAt("varanasi", 25.3109, 83.0107)},
		{Venue: venueAt("mathura", 27.5046, 77.6700)},
		{Venue: crowd.Venue{ID: "nowhere", Name: "nowhere"}},
		{Venue: venueAt("haridwar", 29.9457, 78.1642)},
	}

	it, err := Optimize("New Delhi", stops, PreferCheapest)
	require.NoError(t, err)
	require.Len(t, it.Stops, 4)

	assert.Equal(t, []string{"mathura", "haridwar", "varanasi", "nowhere"}, ids(it))

	first := it.Stops[0].TransportTo
	require.NotNil(t, first)
	assert.Equal(t, "New Delhi", first.From)
	assert.Equal(t, ModeBus, first.Mode, "bus undercuts train below 150 km")
	assert.Equal(t, "mathura", it.Stops[1].TransportTo.From)
	assert.Nil(t, it.Stops[3].TransportTo)

	sumDistance, sumCost := 0, 0
	for _, s := range it.Stops[:3] {
		sumDistance += s.TransportTo.DistanceKm
		sumCost += s.TransportTo.Cost
	}
	assert.InDelta(t, sumDistance, it.Stats.TotalDistanceKm, 2)
	assert.Equal(t, sumCost, it.Stats.TotalCostEstimate)
	assert.Equal(t, "New Delhi", it.Stats.Source)
}

func TestOptimize_FastestPicksFlightForLongLegs(t *testing.T) {
	stops := []Stop{{Venue: venueAt("rameswaram", 9.2881, 79.3174)}}

	it, err := Optimize("delhi", stops, PreferFastest)
	require.NoError(t, err)
	assert.Equal(t, ModeFlight, it.Stops[0].TransportTo.Mode)

	it, err = Optimize("delhi", stops, PreferCheapest)
	require.NoError(t, err)
	assert.Equal(t, ModeTrain, it.Stops[0].TransportTo.Mode)
}

func TestOptimize_TieGoesToInputOrder(t *testing.T) {
	stops := []Stop{
		{Venue: venueAt("first", 28.0, 77.0)},
		{Venue: venueAt("second", 28.0, 77.0)},
	}
	it, err := Optimize("delhi", stops, PreferCheapest)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids(it))
	assert.Equal(t, 0, it.Stops[1].TransportTo.DistanceKm)
}

func TestOptimize_NeverDropsStops(t *testing.T) {
	stops := []Stop{
		{Venue: crowd.Venue{ID: "x"}},
		{Venue: venueAt("y", 19.0, 73.0)},
		{Venue: crowd.Venue{ID: "z"}},
	}
	for _, pref := range []Preference{PreferCrowd, PreferCheapest, PreferFastest} {
		it, err := Optimize("Pune", stops, pref)
		require.NoError(t, err)
		assert.Len(t, it.Stops, len(stops), string(pref))
	}

	it, err := Optimize("Pune", nil, PreferFastest)
	require.NoError(t, err)
	assert.Empty(t, it.Stops)
	assert.Zero(t, it.Stats.TotalDistanceKm)
}

func TestOptimize_Errors(t *testing.T) {
	_, err := Optimize("Atlantis", []Stop{{Venue: crowd.Venue{ID: "x"}}}, PreferCrowd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSource))
	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Atlantis", unknown.Source)

	_, err = Optimize("delhi", nil, "scenic")
	assert.ErrorIs(t, err, crowd.ErrInvalidInput)

	_, err = Optimize("delhi", []Stop{{Venue: venueAt("bad", 95, 0)}}, PreferCheapest)
	assert.ErrorIs(t, err, crowd.ErrInvalidInput)
}

func TestParsePreference(t *testing.T) {
	p, err := ParsePreference(" Cheapest ")
	require.NoError(t, err)
	assert.Equal(t, PreferCheapest, p)

	_, err = ParsePreference("")
	assert.ErrorIs(t, err, crowd.ErrInvalidInput)
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"delhi", "Delhi"},
		{"  MUMBAI ", "Mumbai"},
		{"New Delhi", "Delhi"},
		{"Bangalore Urban", "Bangalore"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ResolveSource(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Name)
		})
	}

	_, err := ResolveSource("")
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Len(t, MajorCities(), 17)
}
