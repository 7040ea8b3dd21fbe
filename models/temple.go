package models

import (
	"fmt"

	"tp-server/crowd"
)

// Defaults applied when a stored temple omits its schedule.
const (
	DefaultOpenHour  = 5
	DefaultCloseHour = 22
)

// CrowdPattern names the hourly curve a temple follows.
type CrowdPattern struct {
	Type string `json:"type"`
}

// Temple is the stored catalog record.
type Temple struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Location     string             `json:"location"`
	State        string             `json:"state"`
	Deity        string             `json:"deity,omitempty"`
	Description  string             `json:"description,omitempty"`
	Timings      string             `json:"timings,omitempty"`
	Rating       float64            `json:"rating,omitempty"`
	Lat          *float64           `json:"lat,omitempty"`
	Lng          *float64           `json:"lng,omitempty"`
	CrowdPattern CrowdPattern       `json:"crowdPattern"`
	SpecialDays  []crowd.SpecialDay `json:"specialDays,omitempty"`
	PeakMonths   []int              `json:"peakMonths,omitempty"`
	OpenHour     *int               `json:"openHour,omitempty"`
	CloseHour    *int               `json:"closeHour,omitempty"`
	BaseWaitTime *int               `json:"baseWaitTime,omitempty"`
}

// HasCoordinates reports whether the temple can be placed on the geo index.
func (t *Temple) HasCoordinates() bool {
	return t.Lat != nil && t.Lng != nil
}

// ToVenue converts the record into the crowd model's input, filling the
// schedule defaults.
func (t *Temple) ToVenue() crowd.Venue {
	return crowd.Venue{
		ID:           t.ID,
		Name:         t.Name,
		Lat:          t.Lat,
		Lng:          t.Lng,
		OpenHour:     intOr(t.OpenHour, DefaultOpenHour),
		CloseHour:    intOr(t.CloseHour, DefaultCloseHour),
		Category:     crowd.Category(t.CrowdPattern.Type),
		BaseWaitTime: intOr(t.BaseWaitTime, crowd.DefaultBaseWaitTime),
		SpecialDays:  t.SpecialDays,
		PeakMonths:   t.PeakMonths,
	}
}

func (t *Temple) ToString() string {
	return fmt.Sprintf("Temple(id=%s, name=%s, location=%s, state=%s)", t.ID, t.Name, t.Location, t.State)
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// TempleWithCrowd is a temple decorated with its current estimate.
type TempleWithCrowd struct {
	Temple
	Crowd crowd.Estimate `json:"crowd"`
}

// TempleDetail adds today's hourly curve.
type TempleDetail struct {
	TempleWithCrowd
	HourlyForecast []crowd.HourlyEstimate `json:"hourlyForecast"`
}

// TempleForecast is the 24-hour curve of one temple on one date.
type TempleForecast struct {
	TempleID   string                 `json:"templeId"`
	TempleName string                 `json:"templeName"`
	Date       string                 `json:"date"`
	Forecast   []crowd.HourlyEstimate `json:"forecast"`
}
