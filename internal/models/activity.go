package models

import "time"

type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// Rank orders intensities from easiest to hardest. Unknown values rank 0.
func (i Intensity) Rank() int {
	switch i {
	case IntensityLow:
		return 1
	case IntensityMedium:
		return 2
	case IntensityHigh:
		return 3
	case IntensityVeryHigh:
		return 4
	default:
		return 0
	}
}

func (i Intensity) Valid() bool {
	return i.Rank() > 0
}

type TimeOfDay string

const (
	TimeAny       TimeOfDay = "any"
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeAny, TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return true
	default:
		return false
	}
}

// Window returns the slot's default time window as minutes from midnight.
// TimeAny maps to the afternoon window.
func (t TimeOfDay) Window() (start, end int) {
	switch t {
	case TimeMorning:
		return 6 * 60, 12 * 60
	case TimeAfternoon, TimeAny:
		return 12 * 60, 17 * 60
	case TimeEvening:
		return 17 * 60, 21 * 60
	case TimeNight:
		return 21 * 60, 24 * 60
	default:
		return 12 * 60, 17 * 60
	}
}

// DependencyGoodWeather marks an activity as requiring dry, calm conditions.
const DependencyGoodWeather = "good-weather"

// Activity is a user-defined activity the planner may schedule.
type Activity struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Location      string         `json:"location,omitempty"`
	Description   string         `json:"description,omitempty"`
	DurationMin   int            `json:"duration_min"`
	Intensity     Intensity      `json:"intensity"`
	Dependencies  []string       `json:"dependencies,omitempty"`
	PreferredTime TimeOfDay      `json:"preferred_time"`
	PreferredDays []time.Weekday `json:"preferred_days,omitempty"` // empty = any day
	CreatedAt     string         `json:"created_at"` // RFC3339 timestamp
	DeletedAt     *string        `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// RequiresGoodWeather reports whether the activity carries the good-weather dependency tag.
func (a Activity) RequiresGoodWeather() bool {
	for _, dep := range a.Dependencies {
		if dep == DependencyGoodWeather {
			return true
		}
	}
	return false
}

// AllowedOn reports whether the activity may be scheduled on the given weekday.
// An empty preferred-days set allows every day.
func (a Activity) AllowedOn(wd time.Weekday) bool {
	if len(a.PreferredDays) == 0 {
		return true
	}
	for _, d := range a.PreferredDays {
		if d == wd {
			return true
		}
	}
	return false
}
