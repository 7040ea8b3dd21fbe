package crowd

import "time"

// Category selects one of the fixed hourly crowd curves.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryHighTraffic Category = "high_traffic"
	CategoryPilgrimage  Category = "pilgrimage"
	CategoryTourist     Category = "tourist"
)

// Hourly base crowd percentages, index = hour of day.
var hourlyPatterns = map[Category][24]int{
	CategoryGeneral:     {10, 8, 5, 15, 35, 60, 80, 90, 85, 70, 60, 55, 50, 45, 50, 55, 65, 75, 85, 80, 65, 45, 30, 15},
	CategoryHighTraffic: {45, 35, 25, 35, 55, 80, 95, 100, 95, 85, 80, 75, 70, 65, 70, 75, 85, 95, 100, 95, 85, 70, 55, 50},
	CategoryPilgrimage:  {30, 20, 15, 40, 70, 90, 95, 100, 90, 80, 70, 65, 60, 55, 60, 70, 80, 90, 85, 75, 60, 45, 35, 30},
	CategoryTourist:     {5, 5, 5, 5, 10, 30, 50, 70, 80, 85, 90, 85, 80, 75, 80, 85, 90, 85, 75, 60, 45, 30, 15, 8},
}

// Indexed by time.Weekday (0 = Sunday).
var dayMultipliers = [7]float64{1.4, 0.85, 0.8, 0.8, 0.85, 0.95, 1.5}

// Categories lists every known category.
func Categories() []Category {
	return []Category{CategoryGeneral, CategoryHighTraffic, CategoryPilgrimage, CategoryTourist}
}

// Resolve maps the empty category to general and rejects unknown values.
func (c Category) Resolve() (Category, error) {
	if c == "" {
		return CategoryGeneral, nil
	}
	if _, ok := hourlyPatterns[c]; !ok {
		return "", InvalidInputf("unknown crowd pattern %q", string(c))
	}
	return c, nil
}

// Pattern returns a copy of the hourly curve for c.
func Pattern(c Category) ([24]int, error) {
	resolved, err := c.Resolve()
	if err != nil {
		return [24]int{}, err
	}
	return hourlyPatterns[resolved], nil
}

// DayMultiplier returns the day-of-week crowd factor.
func DayMultiplier(d time.Weekday) float64 {
	return dayMultipliers[d]
}

func patternMean(pattern [24]int) float64 {
	sum := 0
	for _, v := range pattern {
		sum += v
	}
	return float64(sum) / float64(len(pattern))
}
