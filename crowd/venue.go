package crowd

import (
	"math"
	"strings"
	"time"
)

// DefaultBaseWaitTime is used when a venue carries no base wait time.
const DefaultBaseWaitTime = 30

// SpecialDay raises or lowers the crowd on one weekday, on top of the
// day-of-week multiplier.
type SpecialDay struct {
	Day        string  `json:"day"`
	Multiplier float64 `json:"multiplier"`
}

// Venue is the read-only input of the crowd model and the route planner.
type Venue struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Lat          *float64     `json:"lat,omitempty"`
	Lng          *float64     `json:"lng,omitempty"`
	OpenHour     int          `json:"openHour"`
	CloseHour    int          `json:"closeHour"`
	Category     Category     `json:"crowdPattern"`
	BaseWaitTime int          `json:"baseWaitTime"`
	SpecialDays  []SpecialDay `json:"specialDays,omitempty"`
	PeakMonths   []int        `json:"peakMonths,omitempty"`
}

// HasCoordinates reports whether both lat and lng are set.
func (v Venue) HasCoordinates() bool {
	return v.Lat != nil && v.Lng != nil
}

// Validate checks the fields the crowd model reads. Coordinates are not
// checked here.
func (v Venue) Validate() error {
	if v.OpenHour < 0 || v.OpenHour > 23 {
		return InvalidInputf("venue %q: open hour %d out of range 0-23", v.ID, v.OpenHour)
	}
	if v.CloseHour < 0 || v.CloseHour > 23 {
		return InvalidInputf("venue %q: close hour %d out of range 0-23", v.ID, v.CloseHour)
	}
	if v.BaseWaitTime < 0 {
		return InvalidInputf("venue %q: negative base wait time %d", v.ID, v.BaseWaitTime)
	}
	if _, err := v.Category.Resolve(); err != nil {
		return err
	}
	for _, m := range v.PeakMonths {
		if m < 0 || m > 11 {
			return InvalidInputf("venue %q: peak month %d out of range 0-11", v.ID, m)
		}
	}
	for _, sd := range v.SpecialDays {
		if sd.Multiplier <= 0 || math.IsNaN(sd.Multiplier) || math.IsInf(sd.Multiplier, 0) {
			return InvalidInputf("venue %q: special day %q has invalid multiplier %v", v.ID, sd.Day, sd.Multiplier)
		}
	}
	return nil
}

// IsClosedAt reports whether the venue is closed at hour. Only an
// openHour < closeHour window can close; openHour >= closeHour (equal hours
// and overnight schedules alike) is treated as always open.
func (v Venue) IsClosedAt(hour int) bool {
	if v.OpenHour < v.CloseHour {
		return hour < v.OpenHour || hour >= v.CloseHour
	}
	return false
}

func (v Venue) baseWait() int {
	if v.BaseWaitTime == 0 {
		return DefaultBaseWaitTime
	}
	return v.BaseWaitTime
}

func (v Venue) inPeakMonth(month int) bool {
	for _, m := range v.PeakMonths {
		if m == month {
			return true
		}
	}
	return false
}

func (v Venue) specialDayFor(d time.Weekday) (SpecialDay, bool) {
	for _, sd := range v.SpecialDays {
		if strings.EqualFold(strings.TrimSpace(sd.Day), d.String()) {
			return sd, true
		}
	}
	return SpecialDay{}, false
}
