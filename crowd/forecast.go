package crowd

import "time"

// HourlyEstimate is one slot of a 24-hour forecast.
type HourlyEstimate struct {
	Hour        int    `json:"hour"`
	DisplayHour string `json:"displayHour"`
	IsPast      bool   `json:"isPast"`
	IsCurrent   bool   `json:"isCurrent"`
	Estimate
}

// Forecast predicts every hour of date's civil day. IsPast and IsCurrent are
// only set when date is now's calendar day (read in date's location); for any
// other day both are false.
func (p *Predictor) Forecast(v Venue, date, now time.Time) ([]HourlyEstimate, error) {
	loc := date.Location()
	y, m, d := date.Date()

	ny, nm, nd := now.In(loc).Date()
	today := y == ny && m == nm && d == nd
	currentHour := now.In(loc).Hour()

	out := make([]HourlyEstimate, 0, 24)
	for h := 0; h < 24; h++ {
		est, err := p.Predict(v, time.Date(y, m, d, h, 0, 0, 0, loc))
		if err != nil {
			return nil, err
		}
		out = append(out, HourlyEstimate{
			Hour:        h,
			DisplayHour: FormatDisplayHour(h),
			IsPast:      today && h < currentHour,
			IsCurrent:   today && h == currentHour,
			Estimate:    est,
		})
	}
	return out, nil
}
