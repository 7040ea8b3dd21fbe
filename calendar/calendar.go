// Package calendar holds the festival table used by the crowd model.
//
// The table is loaded from YAML and validated once. A loaded Calendar is never
// mutated, so it can be shared freely between goroutines.
package calendar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DateLayout is the ISO date format used as the festival key.
const DateLayout = "2006-01-02"

const fixedDateLayout = "01-02"

//go:embed festivals.yml
var defaultFestivalsYAML []byte

// Festival is one calendar entry.
type Festival struct {
	Name        string  `yaml:"name" json:"name" validate:"required"`
	Date        string  `yaml:"date" json:"date" validate:"required,datetime=2006-01-02"`
	FixedDate   string  `yaml:"fixedDate" json:"fixedDate,omitempty" validate:"omitempty,datetime=01-02"`
	Multiplier  float64 `yaml:"multiplier" json:"multiplier" validate:"gt=1"`
	Description string  `yaml:"description" json:"description,omitempty"`
}

type festivalFile struct {
	Festivals []Festival `yaml:"festivals" validate:"required,min=1,dive"`
}

type entry struct {
	festival Festival
	day      time.Time // civil date at UTC midnight
}

// Calendar is an immutable date -> festival table.
type Calendar struct {
	byDate  map[string]Festival
	entries []entry // sorted by date
}

var (
	defaultOnce     sync.Once
	defaultCalendar *Calendar
)

// Default returns the process-wide festival table built from the embedded
// festivals.yml. It panics if the embedded data is invalid.
func Default() *Calendar {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(defaultFestivalsYAML))
		if err != nil {
			panic(fmt.Sprintf("calendar: embedded festival table is invalid: %v", err))
		}
		defaultCalendar = c
	})
	return defaultCalendar
}

// Load parses and validates a YAML festival document.
func Load(r io.Reader) (*Calendar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read festival table: %w", err)
	}

	var file festivalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal festival table: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid festival table: %w", err)
	}

	return New(file.Festivals)
}

// New builds a Calendar from already decoded festivals.
func New(festivals []Festival) (*Calendar, error) {
	c := &Calendar{
		byDate:  make(map[string]Festival, len(festivals)),
		entries: make([]entry, 0, len(festivals)),
	}

	for _, f := range festivals {
		if f.Multiplier <= 1 {
			return nil, fmt.Errorf("festival %q: multiplier must be greater than 1, got %v", f.Name, f.Multiplier)
		}
		day, err := time.Parse(DateLayout, f.Date)
		if err != nil {
			return nil, fmt.Errorf("festival %q: invalid date %q: %w", f.Name, f.Date, err)
		}
		if _, dup := c.byDate[f.Date]; dup {
			return nil, fmt.Errorf("festival %q: duplicate date %s", f.Name, f.Date)
		}
		c.byDate[f.Date] = f
		c.entries = append(c.entries, entry{festival: f, day: day})
	}

	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].day.Before(c.entries[j].day)
	})
	return c, nil
}

// DateKey formats t's civil date (in t's own location) as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Lookup returns the festival falling exactly on t's civil date.
func (c *Calendar) Lookup(t time.Time) (Festival, bool) {
	f, ok := c.byDate[DateKey(t)]
	return f, ok
}

// Nearby returns the festivals between 1 and window calendar days away from
// t's civil date, in either direction. The festival on the day itself is not
// included.
func (c *Calendar) Nearby(t time.Time, window int) []Festival {
	day := civilDay(t)
	var out []Festival
	for _, e := range c.entries {
		diff := daysBetween(day, e.day)
		if diff < 0 {
			diff = -diff
		}
		if diff >= 1 && diff <= window {
			out = append(out, e.festival)
		}
	}
	return out
}

// All returns a copy of every festival, sorted by date.
func (c *Calendar) All() []Festival {
	out := make([]Festival, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.festival
	}
	return out
}

// Len is the number of festivals in the table.
func (c *Calendar) Len() int {
	return len(c.entries)
}

// Upcoming returns at most n festivals dated on or after today, sorted by date.
// Festivals with a fixed MM-DD date are moved to today's year, or the next
// year when that date has already passed.
func (c *Calendar) Upcoming(today time.Time, n int) []Festival {
	start := civilDay(today)

	type dated struct {
		festival Festival
		day      time.Time
	}
	var candidates []dated
	for _, e := range c.entries {
		f := e.festival
		day := e.day
		if f.FixedDate != "" {
			recurring, ok := recurringDay(f.FixedDate, start.Year())
			if !ok {
				continue
			}
			if recurring.Before(start) {
				if recurring, ok = recurringDay(f.FixedDate, start.Year()+1); !ok {
					continue
				}
			}
			day = recurring
			f.Date = day.Format(DateLayout)
		}
		if day.Before(start) {
			continue
		}
		candidates = append(candidates, dated{festival: f, day: day})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].day.Before(candidates[j].day)
	})

	if n >= 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Festival, len(candidates))
	for i, d := range candidates {
		out[i] = d.festival
	}
	return out
}

func recurringDay(fixedDate string, year int) (time.Time, bool) {
	md, err := time.Parse(fixedDateLayout, fixedDate)
	if err != nil {
		return time.Time{}, false
	}
	day := time.Date(year, md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
	// Feb 29 normalises into March on non-leap years.
	if day.Month() != md.Month() {
		return time.Time{}, false
	}
	return day, true
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
