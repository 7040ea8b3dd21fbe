package planner

import (
	"math"
	"sort"
	"strings"

	"tp-server/crowd"
)

// Preference selects how the itinerary is ordered.
type Preference string

const (
	PreferCrowd    Preference = "crowd"
	PreferCheapest Preference = "cheapest"
	PreferFastest  Preference = "fastest"
)

// defaultCrowdPercentage ranks stops whose crowd is unknown.
const defaultCrowdPercentage = 50

// ParsePreference accepts the three preference names, case-insensitively.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case PreferCrowd, PreferCheapest, PreferFastest:
		return p, nil
	}
	return "", crowd.InvalidInputf("unknown preference %q", s)
}

// Stop is a venue to visit, with its current crowd when known.
type Stop struct {
	Venue           crowd.Venue
	CrowdPercentage *int
}

// Leg describes how a stop is reached from the previous one.
type Leg struct {
	From       string `json:"from"`
	DistanceKm int    `json:"distance"`
	TransportOption
}

// ItineraryStop is one stop in visiting order. TransportTo is nil for the
// crowd preference and for stops without coordinates.
type ItineraryStop struct {
	Venue           crowd.Venue `json:"temple"`
	CrowdPercentage *int        `json:"crowdPercentage,omitempty"`
	TransportTo     *Leg        `json:"transportTo,omitempty"`
}

// Stats are the trip totals.
type Stats struct {
	TotalDistanceKm   int    `json:"totalDistance"`
	TotalCostEstimate int    `json:"totalCostEstimate"`
	Source            string `json:"source"`
}

// Itinerary is an ordered plan. It contains every input stop exactly once.
type Itinerary struct {
	Stops []ItineraryStop `json:"route"`
	Stats Stats           `json:"globalStats"`
}

// Optimize orders stops for a trip starting at source. The input slice is not
// modified.
func Optimize(source string, stops []Stop, pref Preference) (*Itinerary, error) {
	city, err := ResolveSource(source)
	if err != nil {
		return nil, err
	}

	switch pref {
	case PreferCrowd:
		return byCrowd(source, stops), nil
	case PreferCheapest:
		return nearestNeighbour(source, city.Point, stops, Cheapest)
	case PreferFastest:
		return nearestNeighbour(source, city.Point, stops, Fastest)
	}
	return nil, crowd.InvalidInputf("unknown preference %q", string(pref))
}

func byCrowd(source string, stops []Stop) *Itinerary {
	ordered := make([]Stop, len(stops))
	copy(ordered, stops)
	sort.SliceStable(ordered, func(i, j int) bool {
		return crowdOf(ordered[i]) < crowdOf(ordered[j])
	})

	it := &Itinerary{
		Stops: make([]ItineraryStop, 0, len(ordered)),
		Stats: Stats{Source: source},
	}
	for _, s := range ordered {
		it.Stops = append(it.Stops, ItineraryStop{Venue: s.Venue, CrowdPercentage: s.CrowdPercentage})
	}
	return it
}

func crowdOf(s Stop) int {
	if s.CrowdPercentage == nil {
		return defaultCrowdPercentage
	}
	return *s.CrowdPercentage
}

type chooser func([]TransportOption) (TransportOption, bool)

func nearestNeighbour(source string, origin Point, stops []Stop, choose chooser) (*Itinerary, error) {
	var routable []Stop
	var unroutable []Stop
	for _, s := range stops {
		if s.Venue.HasCoordinates() {
			routable = append(routable, s)
		} else {
			unroutable = append(unroutable, s)
		}
	}

	it := &Itinerary{
		Stops: make([]ItineraryStop, 0, len(stops)),
		Stats: Stats{Source: source},
	}

	current := origin
	from := source
	totalDistance := 0.0

	for len(routable) > 0 {
		nearest, minDist := -1, math.Inf(1)
		for i, s := range routable {
			d, err := DistanceKm(current, pointOf(s.Venue))
			if err != nil {
				return nil, err
			}
			if d < minDist {
				nearest, minDist = i, d
			}
		}

		next := routable[nearest]
		options, err := EstimateTransport(minDist)
		if err != nil {
			return nil, err
		}
		best, _ := choose(options)

		it.Stops = append(it.Stops, ItineraryStop{
			Venue:           next.Venue,
			CrowdPercentage: next.CrowdPercentage,
			TransportTo: &Leg{
				From:            from,
				DistanceKm:      int(math.Round(minDist)),
				TransportOption: best,
			},
		})
		totalDistance += minDist
		it.Stats.TotalCostEstimate += best.Cost

		current = pointOf(next.Venue)
		from = next.Venue.Name
		routable = append(routable[:nearest:nearest], routable[nearest+1:]...)
	}

	for _, s := range unroutable {
		it.Stops = append(it.Stops, ItineraryStop{Venue: s.Venue, CrowdPercentage: s.CrowdPercentage})
	}

	it.Stats.TotalDistanceKm = int(math.Round(totalDistance))
	return it, nil
}

func pointOf(v crowd.Venue) Point {
	return Point{Lat: *v.Lat, Lng: *v.Lng}
}
