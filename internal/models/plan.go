package models

type Verdict string

const (
	VerdictRest      Verdict = "rest"
	VerdictScheduled Verdict = "scheduled"
)

func (v Verdict) Valid() bool {
	return v == VerdictRest || v == VerdictScheduled
}

// Assignment is one activity placed on a day. Activities are referenced by
// name, which is how both planner paths and the external planner identify
// them; ID is filled in when known.
type Assignment struct {
	ActivityID   string    `json:"activity_id,omitempty"`
	ActivityName string    `json:"activity_name"`
	TimeOfDay    TimeOfDay `json:"time_of_day"`
	Rationale    string    `json:"rationale,omitempty"`
}

// DayPlan is a single day's verdict: Rest with a rationale, or Scheduled with
// an ordered list of assignments.
type DayPlan struct {
	Date           string       `json:"date"` // YYYY-MM-DD
	Verdict        Verdict      `json:"verdict"`
	Activities     []Assignment `json:"activities,omitempty"`
	Rationale      string       `json:"rationale,omitempty"`
	WeatherSummary string       `json:"weather_summary,omitempty"`
}

// WeeklyPlan is exactly seven DayPlans ordered by date.
type WeeklyPlan struct {
	WeekStart   string    `json:"week_start"` // YYYY-MM-DD
	Days        []DayPlan `json:"days"`
	GeneratedBy string    `json:"generated_by,omitempty"` // "ai" or "rules"; display only
	CreatedAt   string    `json:"created_at"` // RFC3339 timestamp
	DeletedAt   *string   `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Day returns the DayPlan for the given date, or nil if absent.
func (p *WeeklyPlan) Day(date string) *DayPlan {
	for i := range p.Days {
		if p.Days[i].Date == date {
			return &p.Days[i]
		}
	}
	return nil
}

// RestDays counts the days with a Rest verdict.
func (p *WeeklyPlan) RestDays() int {
	n := 0
	for _, d := range p.Days {
		if d.Verdict == VerdictRest {
			n++
		}
	}
	return n
}
