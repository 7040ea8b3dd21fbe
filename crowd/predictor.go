// Package crowd turns time, calendar and venue attributes into crowd
// estimates. It holds no mutable state; a Predictor may be shared by any
// number of goroutines.
package crowd

import (
	"math"
	"time"

	"tp-server/calendar"
)

const (
	nearbyFestivalWindowDays = 3
	nearbyFestivalDamping    = 0.3
	peakMonthMultiplier      = 1.25
	minOpenPercentage        = 5
	maxPercentage            = 100
)

// Estimator is the swap point for alternative crowd models.
type Estimator interface {
	Predict(v Venue, at time.Time) (Estimate, error)
}

// Predictor is the rule-based crowd model.
type Predictor struct {
	festivals *calendar.Calendar
	jitter    Jitter
	now       func() time.Time
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithJitter replaces the noise source.
func WithJitter(j Jitter) Option {
	return func(p *Predictor) { p.jitter = j }
}

// WithCalendar replaces the festival table.
func WithCalendar(c *calendar.Calendar) Option {
	return func(p *Predictor) { p.festivals = c }
}

// WithClock replaces the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) { p.now = now }
}

// NewPredictor builds a Predictor over the default festival table and the
// process random source unless overridden.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		festivals: calendar.Default(),
		jitter:    DefaultJitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict estimates the crowd at venue v at instant at. The hour, weekday,
// month and festival date are all read in at's own location.
func (p *Predictor) Predict(v Venue, at time.Time) (Estimate, error) {
	return p.PredictAdjusted(v, at, 1.0)
}

// PredictHour estimates the crowd at hour on date's civil day.
func (p *Predictor) PredictHour(v Venue, date time.Time, hour int) (Estimate, error) {
	if hour < 0 || hour > 23 {
		return Estimate{}, InvalidInputf("hour %d out of range 0-23", hour)
	}
	y, m, d := date.Date()
	return p.Predict(v, time.Date(y, m, d, hour, 0, 0, 0, date.Location()))
}

// PredictAdjusted is Predict with an external weather multiplier folded in
// before the noise term. A multiplier of 1.0 is neutral.
func (p *Predictor) PredictAdjusted(v Venue, at time.Time, weatherMultiplier float64) (Estimate, error) {
	if err := v.Validate(); err != nil {
		return Estimate{}, err
	}
	if weatherMultiplier <= 0 || math.IsNaN(weatherMultiplier) || math.IsInf(weatherMultiplier, 0) {
		return Estimate{}, InvalidInputf("weather multiplier %v must be positive", weatherMultiplier)
	}
	if at.IsZero() {
		return Estimate{}, InvalidInputf("target time is not set")
	}

	pattern, _ := Pattern(v.Category)
	hour := at.Hour()
	month := int(at.Month()) - 1
	closed := v.IsClosedAt(hour)

	pct := float64(pattern[hour])
	pct *= DayMultiplier(at.Weekday())

	var festivalName *string
	if f, ok := p.festivals.Lookup(at); ok {
		pct *= f.Multiplier
		name := f.Name
		festivalName = &name
	}
	for _, f := range p.festivals.Nearby(at, nearbyFestivalWindowDays) {
		pct *= 1 + (f.Multiplier-1)*nearbyFestivalDamping
	}

	if v.inPeakMonth(month) {
		pct *= peakMonthMultiplier
	}
	if sd, ok := v.specialDayFor(at.Weekday()); ok {
		pct *= sd.Multiplier
	}

	pct *= weatherMultiplier
	pct *= p.jitter.Factor()

	percentage := 0
	if !closed {
		percentage = clamp(int(math.Round(pct)), minOpenPercentage, maxPercentage)
	}

	best := UnknownBestTime
	if h, ok := bestHour(v, pattern); ok {
		best = FormatClockHour(h)
	}

	return Estimate{
		Percentage:    percentage,
		Level:         LevelFor(percentage),
		WaitTime:      FormatWaitTime(WaitMinutes(v.baseWait(), percentage), closed),
		BestTimeToday: best,
		Trend:         trendFor(percentage, pattern),
		Festival:      festivalName,
		LastUpdated:   p.now(),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
