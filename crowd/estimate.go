package crowd

import (
	"fmt"
	"math"
	"time"
)

// Level is the coarse crowd bucket shown to users.
type Level string

const (
	LevelClosed Level = "closed"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Trend compares an estimate with the venue's daily mean pattern.
type Trend string

const (
	TrendBelowAverage Trend = "below_average"
	TrendAverage      Trend = "average"
	TrendAboveAverage Trend = "above_average"
)

// UnknownBestTime is reported when a venue has no open window to scan.
const UnknownBestTime = "Check timings"

// Estimate is a crowd snapshot for one venue at one instant.
type Estimate struct {
	Percentage    int       `json:"crowdPercentage"`
	Level         Level     `json:"crowdLevel"`
	WaitTime      string    `json:"waitTime"`
	BestTimeToday string    `json:"bestTimeToday"`
	Trend         Trend     `json:"trend"`
	Festival      *string   `json:"festival"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// LevelFor buckets a percentage: 0 closed, 1-40 low, 41-70 medium, above high.
func LevelFor(percentage int) Level {
	switch {
	case percentage <= 0:
		return LevelClosed
	case percentage <= 40:
		return LevelLow
	case percentage <= 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// WaitMinutes scales the base wait so that 40% crowd equals the base.
func WaitMinutes(baseWait, percentage int) int {
	return int(math.Round(float64(baseWait) * float64(percentage) / 40))
}

// FormatWaitTime renders a wait in minutes.
func FormatWaitTime(minutes int, closed bool) string {
	switch {
	case closed:
		return "Closed"
	case minutes < 15:
		return "< 15 mins"
	case minutes < 60:
		return fmt.Sprintf("%d mins", minutes)
	}
	hours, mins := minutes/60, minutes%60
	if mins == 0 {
		return fmt.Sprintf("%d hrs", hours)
	}
	return fmt.Sprintf("%d hr %d min", hours, mins)
}

// FormatClockHour renders an hour as "5:00 AM" / "12:00 PM".
func FormatClockHour(hour int) string {
	return fmt.Sprintf("%d:00 %s", twelveHour(hour), meridiem(hour))
}

// FormatDisplayHour renders an hour as "5 AM" / "12 PM".
func FormatDisplayHour(hour int) string {
	return fmt.Sprintf("%d %s", twelveHour(hour), meridiem(hour))
}

func twelveHour(hour int) int {
	switch {
	case hour == 0:
		return 12
	case hour > 12:
		return hour - 12
	default:
		return hour
	}
}

func meridiem(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}

// bestHour scans the open window for the quietest hour of the base pattern.
func bestHour(v Venue, pattern [24]int) (int, bool) {
	best, lowest := -1, math.MaxInt
	for h := 0; h < 24; h++ {
		if h >= v.OpenHour && h < v.CloseHour && pattern[h] < lowest {
			best, lowest = h, pattern[h]
		}
	}
	return best, best >= 0
}

func trendFor(percentage int, pattern [24]int) Trend {
	mean := patternMean(pattern)
	p := float64(percentage)
	switch {
	case p < mean*0.85:
		return TrendBelowAverage
	case p > mean*1.15:
		return TrendAboveAverage
	default:
		return TrendAverage
	}
}
