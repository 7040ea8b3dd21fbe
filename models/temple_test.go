package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/crowd"
)

func TestTemple_ToVenueAppliesDefaults(t *testing.T) {
	var temple Temple
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "somnath",
		"name": "Somnath Temple",
		"lat": 20.888,
		"lng": 70.4012,
		"crowdPattern": {"type": "pilgrimage"},
		"peakMonths": [1, 10]
	}`), &temple))

	v := temple.ToVenue()
	assert.Equal(t, DefaultOpenHour, v.OpenHour)
	assert.Equal(t, DefaultCloseHour, v.CloseHour)
	assert.Equal(t, crowd.DefaultBaseWaitTime, v.BaseWaitTime)
	assert.Equal(t, crowd.CategoryPilgrimage, v.Category)
	assert.Equal(t, []int{1, 10}, v.PeakMonths)
	assert.True(t, v.HasCoordinates())
	assert.NoError(t, v.Validate())
}

func TestTemple_ToVenueKeepsExplicitZeroHours(t *testing.T) {
	zero, late := 0, 23
	temple := Temple{ID: "x", OpenHour: &zero, CloseHour: &late}

	v := temple.ToVenue()
	assert.Equal(t, 0, v.OpenHour)
	assert.Equal(t, 23, v.CloseHour)
	assert.False(t, v.HasCoordinates())
}
