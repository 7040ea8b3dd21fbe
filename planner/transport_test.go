package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/crowd"
)

func modes(options []TransportOption) []Mode {
	out := make([]Mode, len(options))
	for i, o := range options {
		out[i] = o.Mode
	}
	return out
}

func TestEstimateTransport_Viability(t *testing.T) {
	tests := []struct {
		distance float64
		want     []Mode
	}{
		{0, []Mode{ModeTrain, ModeBus, ModeTaxi}},
		{100, []Mode{ModeTrain, ModeBus, ModeTaxi}},
		{250, []Mode{ModeTrain, ModeBus, ModeTaxi}},
		{300, []Mode{ModeFlight, ModeTrain, ModeBus, ModeTaxi}},
		{400, []Mode{ModeFlight, ModeTrain, ModeBus}},
		{800, []Mode{ModeFlight, ModeTrain}},
		{1500, []Mode{ModeFlight, ModeTrain}},
	}
	for _, tc := range tests {
		options, err := EstimateTransport(tc.distance)
		require.NoError(t, err)
		assert.Equal(t, tc.want, modes(options), "distance %v", tc.distance)
	}
}

func TestEstimateTransport_Formulas(t *testing.T) {
	options, err := EstimateTransport(300)
	require.NoError(t, err)
	require.Len(t, options, 4)

	assert.Equal(t, TransportOption{Mode: ModeFlight, Cost: 4500, DurationMinutes: 143, Duration: "2h 23m", Icon: "Plane"}, options[0])
	assert.Equal(t, TransportOption{Mode: ModeTrain, Cost: 600, DurationMinutes: 360, Duration: "6h 0m", Icon: "Train"}, options[1])
	assert.Equal(t, TransportOption{Mode: ModeBus, Cost: 750, DurationMinutes: 450, Duration: "7h 30m", Icon: "Bus"}, options[2])
	assert.Equal(t, TransportOption{Mode: ModeTaxi, Cost: 3600, DurationMinutes: 300, Duration: "5h 0m", Icon: "Car"}, options[3])

	cheapest, ok := Cheapest(options)
	require.True(t, ok)
	assert.Equal(t, ModeTrain, cheapest.Mode)

	fastest, ok := Fastest(options)
	require.True(t, ok)
	assert.Equal(t, ModeFlight, fastest.Mode)
}

func TestEstimateTransport_InvalidDistance(t *testing.T) {
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := EstimateTransport(d)
		assert.ErrorIs(t, err, crowd.ErrInvalidInput)
	}
}

func TestPick_TiesKeepEarlierOption(t *testing.T) {
	options := []TransportOption{
		{Mode: ModeTrain, Cost: 100, DurationMinutes: 60},
		{Mode: ModeBus, Cost: 100, DurationMinutes: 60},
	}
	best, _ := Cheapest(options)
	assert.Equal(t, ModeTrain, best.Mode)
	best, _ = Fastest(options)
	assert.Equal(t, ModeTrain, best.Mode)

	_, ok := Cheapest(nil)
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "0h 45m", FormatDuration(45))
	assert.Equal(t, "25h 5m", FormatDuration(1505))
}
