package planner

import (
	"fmt"
	"math"

	"tp-server/crowd"
)

// Mode is a means of travel between two stops.
type Mode string

const (
	ModeFlight Mode = "Flight"
	ModeTrain  Mode = "Train"
	ModeBus    Mode = "Bus"
	ModeTaxi   Mode = "Taxi"
)

var modeIcons = map[Mode]string{
	ModeFlight: "Plane",
	ModeTrain:  "Train",
	ModeBus:    "Bus",
	ModeTaxi:   "Car",
}

// Viability limits in km.
const (
	flightMinKm = 250
	busMaxKm    = 800
	taxiMaxKm   = 400
)

// TransportOption is the estimated cost (INR) and duration of one mode.
type TransportOption struct {
	Mode            Mode   `json:"mode"`
	Cost            int    `json:"cost"`
	DurationMinutes int    `json:"durationMinutes"`
	Duration        string `json:"duration"`
	Icon            string `json:"icon"`
}

// EstimateTransport lists the viable modes for a distance, always in
// Flight, Train, Bus, Taxi order. Train is always present.
func EstimateTransport(distanceKm float64) ([]TransportOption, error) {
	if !finite(distanceKm) || distanceKm < 0 {
		return nil, crowd.InvalidInputf("distance %v must be a non-negative number", distanceKm)
	}

	options := make([]TransportOption, 0, 4)
	if distanceKm > flightMinKm {
		// two hours of airport overhead plus 800 km/h in the air
		options = append(options, newOption(ModeFlight, 3000+distanceKm*5, 120+distanceKm/800*60))
	}
	options = append(options, newOption(ModeTrain, 150+distanceKm*1.5, distanceKm/50*60))
	if distanceKm < busMaxKm {
		options = append(options, newOption(ModeBus, distanceKm*2.5, distanceKm/40*60))
	}
	if distanceKm < taxiMaxKm {
		options = append(options, newOption(ModeTaxi, distanceKm*12, distanceKm))
	}
	return options, nil
}

func newOption(mode Mode, cost, minutes float64) TransportOption {
	m := int(math.Round(minutes))
	return TransportOption{
		Mode:            mode,
		Cost:            int(math.Round(cost)),
		DurationMinutes: m,
		Duration:        FormatDuration(m),
		Icon:            modeIcons[mode],
	}
}

// FormatDuration renders minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Cheapest returns the lowest-cost option; ties keep the earlier option.
func Cheapest(options []TransportOption) (TransportOption, bool) {
	return pick(options, func(a, b TransportOption) bool { return a.Cost < b.Cost })
}

// Fastest returns the shortest option; ties keep the earlier option.
func Fastest(options []TransportOption) (TransportOption, bool) {
	return pick(options, func(a, b TransportOption) bool { return a.DurationMinutes < b.DurationMinutes })
}

func pick(options []TransportOption, less func(a, b TransportOption) bool) (TransportOption, bool) {
	if len(options) == 0 {
		return TransportOption{}, false
	}
	best := options[0]
	for _, o := range options[1:] {
		if less(o, best) {
			best = o
		}
	}
	return best, true
}
