package crowd

import (
	"math"
	"time"

	"tp-server/calendar"
)

// MaxCalendarDays bounds the span of a calendar forecast.
const MaxCalendarDays = 92

const calendarSnapshotHour = 12

// DayPrediction is one day of a venue's calendar: the noon snapshot plus the
// hourly curve.
type DayPrediction struct {
	CrowdPercentage int              `json:"crowdPercentage"`
	CrowdLevel      Level            `json:"crowdLevel"`
	Festival        *string          `json:"festival"`
	Hourly          []HourlyEstimate `json:"hourly"`
}

// VenueCalendar holds a venue's predictions keyed by YYYY-MM-DD.
type VenueCalendar struct {
	TempleID    string                   `json:"templeId"`
	TempleName  string                   `json:"templeName"`
	Predictions map[string]DayPrediction `json:"predictions"`
}

// DayComparison summarises all venues for one day.
type DayComparison struct {
	MaxCrowdLevel      Level    `json:"maxCrowdLevel"`
	AvgCrowdPercentage int      `json:"avgCrowdPercentage"`
	CrowdedTemples     []string `json:"crowdedTemples"`
}

// CalendarForecast compares venues across a date range.
type CalendarForecast struct {
	Temples    []VenueCalendar          `json:"temples"`
	Comparison map[string]DayComparison `json:"comparison"`
}

// CalendarForecast predicts every day from start to end inclusive (civil days
// in start's location) for each venue.
func (p *Predictor) CalendarForecast(venues []Venue, start, end, now time.Time) (*CalendarForecast, error) {
	loc := start.Location()
	sy, sm, sd := start.Date()
	ey, em, ed := end.In(loc).Date()
	first := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
	last := time.Date(ey, em, ed, 0, 0, 0, 0, loc)

	if last.Before(first) {
		return nil, InvalidInputf("start date %s is after end date %s", calendar.DateKey(first), calendar.DateKey(last))
	}
	days := int(math.Round(last.Sub(first).Hours()/24)) + 1
	if days-1 > MaxCalendarDays {
		return nil, InvalidInputf("date range cannot exceed %d days", MaxCalendarDays)
	}

	result := &CalendarForecast{
		Temples:    make([]VenueCalendar, 0, len(venues)),
		Comparison: make(map[string]DayComparison),
	}

	for _, v := range venues {
		vc := VenueCalendar{
			TempleID:    v.ID,
			TempleName:  v.Name,
			Predictions: make(map[string]DayPrediction, days),
		}
		for i := 0; i < days; i++ {
			day := time.Date(sy, sm, sd+i, 0, 0, 0, 0, loc)
			noon, err := p.PredictHour(v, day, calendarSnapshotHour)
			if err != nil {
				return nil, err
			}
			hourly, err := p.Forecast(v, day, now)
			if err != nil {
				return nil, err
			}
			vc.Predictions[calendar.DateKey(day)] = DayPrediction{
				CrowdPercentage: noon.Percentage,
				CrowdLevel:      noon.Level,
				Festival:        noon.Festival,
				Hourly:          hourly,
			}
		}
		result.Temples = append(result.Temples, vc)
	}

	if len(result.Temples) == 0 {
		return result, nil
	}
	for i := 0; i < days; i++ {
		key := calendar.DateKey(time.Date(sy, sm, sd+i, 0, 0, 0, 0, loc))
		result.Comparison[key] = compareDay(key, result.Temples)
	}
	return result, nil
}

func compareDay(key string, temples []VenueCalendar) DayComparison {
	cmp := DayComparison{MaxCrowdLevel: LevelLow, CrowdedTemples: []string{}}
	sum := 0
	for _, t := range temples {
		pred := t.Predictions[key]
		sum += pred.CrowdPercentage
		switch pred.CrowdLevel {
		case LevelHigh:
			cmp.MaxCrowdLevel = LevelHigh
			cmp.CrowdedTemples = append(cmp.CrowdedTemples, t.TempleName)
		case LevelMedium:
			if cmp.MaxCrowdLevel != LevelHigh {
				cmp.MaxCrowdLevel = LevelMedium
			}
		}
	}
	cmp.AvgCrowdPercentage = int(math.Round(float64(sum) / float64(len(temples))))
	return cmp
}
