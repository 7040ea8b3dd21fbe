// Package planner orders a set of venues into a visiting itinerary from a
// major Indian city and estimates the travel cost of each leg.
package planner

import (
	"math"

	"tp-server/crowd"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate rejects non-finite and out-of-range coordinates.
func (p Point) Validate() error {
	if !finite(p.Lat) || !finite(p.Lng) {
		return crowd.InvalidInputf("coordinate (%v, %v) is not a finite number", p.Lat, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return crowd.InvalidInputf("latitude %v out of range -90..90", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return crowd.InvalidInputf("longitude %v out of range -180..180", p.Lng)
	}
	return nil
}

// DistanceKm is the great-circle distance between a and b.
func DistanceKm(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng), nil
}

// Haversine computes the great-circle distance in km without validating its
// inputs.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
